package discovery

import (
	"fmt"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

const baseInstruction = `You are a high-intent signal discovery engine for X (Twitter).
Your task is to find real, current posts or discussions related to the user's query.

Format the output as a JSON array of post objects.
Each object must have:
- authorName, authorHandle (e.g. @name)
- content (the post text)
- likes, replies (realistic non-negative numbers)
- type (one of: 'Leads', 'Threads', 'Links', 'Video')
- timestamp (e.g. '2h ago')`

const (
	leadsBias    = "Focus on people asking for recommendations or expressing pain points."
	longFormBias = "Focus on industry experts sharing deep-dives or threads."
)

// signalFields are the properties every returned item must carry.
var signalFields = []string{"authorName", "authorHandle", "content", "likes", "replies", "type", "timestamp"}

// systemInstruction returns the instruction for intent. No intent or Both adds no bias.
func systemInstruction(intent domain.Intent) string {
	switch intent {
	case domain.IntentLeads:
		return baseInstruction + "\n\n" + leadsBias
	case domain.IntentLongForm:
		return baseInstruction + "\n\n" + longFormBias
	default:
		return baseInstruction
	}
}

func userPrompt(query string, intent domain.Intent) string {
	label := string(intent)
	if label == "" {
		label = "General"
	}
	return fmt.Sprintf(
		"Search for the latest activity on X (Twitter) about: %s. Intent category: %s. Return 4-5 high-quality matches.",
		query, label,
	)
}

func responseSchema() *schema {
	str := func() *schema { return &schema{Type: "STRING"} }
	num := func() *schema { return &schema{Type: "NUMBER"} }

	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"authorName":   str(),
				"authorHandle": str(),
				"content":      str(),
				"likes":        num(),
				"replies":      num(),
				"type":         str(),
				"timestamp":    str(),
			},
			Required: signalFields,
		},
	}
}

func buildRequest(query string, intent domain.Intent) generateRequest {
	return generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction(intent)}}},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: userPrompt(query, intent)}},
		}},
		Tools: []tool{{GoogleSearch: &struct{}{}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	}
}
