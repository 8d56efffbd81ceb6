// Package discovery finds social posts for a query through Gemini generateContent
// with Google Search grounding.
package discovery

import "github.com/signaldeck/signaldeck-server/internal/domain"

// Outcome classifies a discovery call.
type Outcome string

// Discovery outcomes.
const (
	OutcomeOK     Outcome = "ok"     // at least one usable post
	OutcomeEmpty  Outcome = "empty"  // the provider answered with nothing usable
	OutcomeFailed Outcome = "failed" // transport, status, timeout or parse failure
)

// Result is the outcome of one discovery call.
// Posts is never nil. Err is set only when Outcome is OutcomeFailed.
type Result struct {
	Outcome   Outcome       `json:"outcome"`
	Posts     []domain.Post `json:"posts"`
	SourceURL string        `json:"sourceUrl,omitempty"`
	Sources   []string      `json:"sources,omitempty"`
	Dropped   int           `json:"dropped,omitempty"`
	Err       error         `json:"-"`
}

// rawSignal is one item of the model's JSON array before validation.
type rawSignal struct {
	AuthorName   string   `json:"authorName" validate:"required,notblank"`
	AuthorHandle string   `json:"authorHandle" validate:"required,notblank"`
	Content      string   `json:"content" validate:"required,notblank"`
	Likes        *float64 `json:"likes" validate:"required,gte=0,lte=2147483647"`
	Replies      *float64 `json:"replies" validate:"required,gte=0,lte=2147483647"`
	Type         string   `json:"type" validate:"required,oneof=Leads Threads Links Video"`
	Timestamp    string   `json:"timestamp" validate:"required"`
}

// Wire types for the generateContent REST endpoint.

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	Tools             []tool            `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Items      *schema            `json:"items,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title,omitempty"`
	} `json:"web,omitempty"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
