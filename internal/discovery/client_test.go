package discovery

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
)

const twoSignals = `[
  {"authorName":"Alex Rivers","authorHandle":"alexr","content":"Need a lean CRM","likes":42.4,"replies":5,"type":"Leads","timestamp":"2h ago"},
  {"authorName":"Sarah Chen","authorHandle":"@schen","content":"Thread on growth","likes":850,"replies":45,"type":"Threads","timestamp":"5h ago"}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, nil, opts...)

	return client, server
}

// providerResponse renders a generateContent answer carrying text and grounding URIs.
func providerResponse(t *testing.T, text string, uris ...string) []byte {
	t.Helper()

	chunks := make([]map[string]any, 0, len(uris))
	for _, u := range uris {
		chunks = append(chunks, map[string]any{"web": map[string]any{"uri": u, "title": "source"}})
	}

	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason":      "STOP",
				"groundingMetadata": map[string]any{"groundingChunks": chunks},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func respondWith(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func TestDiscover_RequestShape(t *testing.T) {
	var captured generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		_, _ = w.Write(providerResponse(t, "[]"))
	})

	client.Discover(t.Context(), "CRM tools", domain.IntentLeads)

	require.Len(t, captured.Contents, 1)
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "about: CRM tools.")
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "Intent category: Leads.")
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, leadsBias)
	require.Len(t, captured.Tools, 1)
	assert.NotNil(t, captured.Tools[0].GoogleSearch)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "ARRAY", captured.GenerationConfig.ResponseSchema.Type)
	assert.ElementsMatch(t, signalFields, captured.GenerationConfig.ResponseSchema.Items.Required)
}

func TestPrompt_IntentBias(t *testing.T) {
	assert.Contains(t, systemInstruction(domain.IntentLongForm), longFormBias)
	assert.NotContains(t, systemInstruction(domain.IntentBoth), leadsBias)
	assert.NotContains(t, systemInstruction(domain.IntentNone), longFormBias)
	assert.Contains(t, userPrompt("x", domain.IntentNone), "Intent category: General.")
}

func TestDiscover_Success(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	client, _ := newTestClient(t,
		respondWith(providerResponse(t, twoSignals, "https://x.com/a", "https://x.com/b", "https://x.com/a")),
		WithClock(func() time.Time { return now }),
	)

	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	require.Equal(t, OutcomeOK, result.Outcome)
	require.NoError(t, result.Err)
	require.Len(t, result.Posts, 2)
	assert.Equal(t, "https://x.com/a", result.SourceURL)
	assert.Equal(t, []string{"https://x.com/a", "https://x.com/b"}, result.Sources)

	first := result.Posts[0]
	assert.Equal(t, "ai-1700000000000-1-0", first.ID)
	assert.Equal(t, "@alexr", first.AuthorHandle)
	assert.Equal(t, "https://picsum.photos/seed/@alexr/100/100", first.AvatarURL)
	assert.Equal(t, 42, first.Likes)
	assert.Equal(t, domain.CategoryLeads, first.Type)
	assert.False(t, first.IsSaved)
	assert.Equal(t, "https://x.com/a", first.SourceURL)

	assert.Equal(t, "@schen", result.Posts[1].AuthorHandle)
	assert.Equal(t, "https://x.com/a", result.Posts[1].SourceURL, "source is shared by the batch")
}

func TestDiscover_IDsUniqueAcrossBatches(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	client, _ := newTestClient(t,
		respondWith(providerResponse(t, twoSignals)),
		WithClock(func() time.Time { return now }),
	)

	seen := map[string]bool{}
	for range 3 {
		for _, p := range client.DiscoverSignals(t.Context(), "CRM", domain.IntentNone) {
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 6)
}

func TestDiscover_ZeroItems(t *testing.T) {
	for _, text := range []string{"[]", "", "  "} {
		client, _ := newTestClient(t, respondWith(providerResponse(t, text)))

		result := client.Discover(t.Context(), "CRM", domain.IntentNone)

		assert.Equal(t, OutcomeEmpty, result.Outcome)
		assert.NoError(t, result.Err)
		assert.NotNil(t, result.Posts)
		assert.Empty(t, result.Posts)
	}
}

func TestDiscover_MalformedText(t *testing.T) {
	client, _ := newTestClient(t, respondWith(providerResponse(t, "Sorry, I can't help with that.")))

	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, ErrMalformed)
	assert.ErrorIs(t, result.Err, domainerrors.ErrProvider)
	assert.NotNil(t, result.Posts)
	assert.Empty(t, result.Posts)
}

func TestDiscover_FencedArray(t *testing.T) {
	client, _ := newTestClient(t, respondWith(providerResponse(t, "```json\n"+twoSignals+"\n```")))

	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.Equal(t, OutcomeOK, result.Outcome)
	assert.Len(t, result.Posts, 2)
}

func TestDiscover_DropsInvalidItems(t *testing.T) {
	text := `[
	  {"authorName":"Ok","authorHandle":"ok","content":"fine","likes":1,"replies":0,"type":"Video","timestamp":"1h ago"},
	  {"authorName":"Bad type","authorHandle":"b","content":"x","likes":1,"replies":0,"type":"Podcast","timestamp":"1h ago"},
	  {"authorName":"Missing likes","authorHandle":"m","content":"x","replies":0,"type":"Leads","timestamp":"1h ago"},
	  {"authorName":"Negative","authorHandle":"n","content":"x","likes":-3,"replies":0,"type":"Leads","timestamp":"1h ago"},
	  {"authorName":"Wrong kind","authorHandle":"w","content":"x","likes":"many","replies":0,"type":"Leads","timestamp":"1h ago"}
	]`
	client, _ := newTestClient(t, respondWith(providerResponse(t, text)))

	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.Equal(t, OutcomeOK, result.Outcome)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Ok", result.Posts[0].AuthorName)
	assert.Equal(t, 4, result.Dropped)
	assert.True(t, strings.HasSuffix(result.Posts[0].ID, "-0"))
}

func TestDiscover_DropsOversizedCounts(t *testing.T) {
	text := `[
	  {"authorName":"Viral","authorHandle":"v","content":"x","likes":1e20,"replies":3,"type":"Leads","timestamp":"1h ago"},
	  {"authorName":"Chatty","authorHandle":"c","content":"x","likes":3,"replies":1e20,"type":"Threads","timestamp":"1h ago"},
	  {"authorName":"Ceiling","authorHandle":"top","content":"x","likes":2147483647,"replies":0,"type":"Video","timestamp":"1h ago"}
	]`
	client, _ := newTestClient(t, respondWith(providerResponse(t, text)))

	posts := client.DiscoverSignals(t.Context(), "CRM", domain.IntentNone)

	require.Len(t, posts, 1)
	assert.Equal(t, "Ceiling", posts[0].AuthorName)
	for _, p := range posts {
		assert.GreaterOrEqual(t, p.Likes, 0)
		assert.GreaterOrEqual(t, p.Replies, 0)
	}
}

func TestRoundCount(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{12.4, 12},
		{12.5, 13},
		{-0.4, 0},
		{1e20, math.MaxInt32},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundCount(tt.in), "roundCount(%v)", tt.in)
	}
}

func TestDiscover_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"unauthorized", http.StatusForbidden, ErrUnauthorized},
		{"server error", http.StatusServiceUnavailable, ErrServer},
		{"bad request", http.StatusBadRequest, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"code":1,"message":"nope","status":"X"}}`))
			})

			result := client.Discover(t.Context(), "CRM", domain.IntentNone)

			assert.Equal(t, OutcomeFailed, result.Outcome)
			assert.ErrorIs(t, result.Err, tt.want)
			assert.Contains(t, result.Err.Error(), "nope")
			assert.Empty(t, result.Posts)
		})
	}
}

func TestDiscover_NoCandidates(t *testing.T) {
	client, _ := newTestClient(t, respondWith([]byte(`{"candidates":[]}`)))

	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, ErrNoCandidates)
}

func TestDiscover_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client := New(Config{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)

	start := time.Now()
	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, ErrTimeout)
	assert.Empty(t, result.Posts)
}

func TestDiscover_NoAPIKeySkipsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	t.Cleanup(server.Close)

	client := New(Config{BaseURL: server.URL}, nil)
	result := client.Discover(t.Context(), "CRM", domain.IntentNone)

	assert.False(t, called)
	assert.False(t, client.Configured())
	assert.ErrorIs(t, result.Err, ErrNoAPIKey)
	assert.NotNil(t, client.DiscoverSignals(t.Context(), "CRM", domain.IntentNone))
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{}, nil)

	assert.Equal(t, DefaultTimeout, client.Timeout())
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
