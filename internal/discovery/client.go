package discovery

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/validation"
)

const (
	// DefaultModel is the generative model used when none is configured.
	DefaultModel = "gemini-3-flash-preview"
	// DefaultBaseURL is the public Gemini endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultTimeout bounds one discovery round-trip.
	DefaultTimeout = 20 * time.Second

	// maxErrorBody caps how much of a failed response is logged.
	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithClock overrides the time source used for post ids.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client calls the generative-search provider. It never retries, caches or rate limits.
type Client struct {
	http      *http.Client
	apiKey    string
	model     string
	baseURL   string
	timeout   time.Duration
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time

	// seq makes post ids unique across batches created in the same millisecond.
	seq atomic.Uint64
}

// New creates a discovery client. Zero config fields take their defaults.
func New(cfg Config, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		apiKey:    cfg.APIKey,
		model:     cmp.Or(cfg.Model, DefaultModel),
		baseURL:   strings.TrimRight(cmp.Or(cfg.BaseURL, DefaultBaseURL), "/"),
		timeout:   cfg.Timeout,
		validator: validation.New(),
		logger:    logger.OrDiscard(log),
		now:       time.Now,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Timeout returns the per-call deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// DiscoverSignals returns discovered posts, or an empty slice on any failure.
func (c *Client) DiscoverSignals(ctx context.Context, query string, intent domain.Intent) []domain.Post {
	return c.Discover(ctx, query, intent).Posts
}

// Discover makes one generateContent call for query and converts the answer into posts.
// Failures are reported in the Result, never returned or panicked.
func (c *Client) Discover(ctx context.Context, query string, intent domain.Intent) Result {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		return c.failed(query, ErrBlankQuery)
	}
	if !c.Configured() {
		return c.failed(query, ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.generate(ctx, buildRequest(query, intent))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, c.timeout, err)
		}
		return c.failed(query, err)
	}

	result, err := c.convert(resp)
	if err != nil {
		return c.failed(query, err)
	}

	c.logger.Info("discovery completed",
		"query", query,
		"intent", intent,
		"outcome", result.Outcome,
		"posts", len(result.Posts),
		"dropped", result.Dropped,
		"sources", len(result.Sources),
		"duration", time.Since(start),
	)

	return result
}

func (c *Client) failed(query string, err error) Result {
	c.logger.Warn("discovery failed", "query", query, "error", err)
	return Result{
		Outcome: OutcomeFailed,
		Posts:   []domain.Post{},
		Err:     domainerrors.Wrap(err, domainerrors.CodeProvider, "signal discovery failed"),
	}
}

// generate performs the HTTP round-trip.
func (c *Client) generate(ctx context.Context, reqBody generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("discovery request", "model", c.model)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &out, nil
}

func statusError(status int, body []byte) error {
	msg := providerMessage(body)

	var sentinel error
	switch {
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = ErrUnauthorized
	case status >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrUnexpectedStatus
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, status, msg)
}

// providerMessage extracts the provider's error message, falling back to a truncated body.
func providerMessage(body []byte) string {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}

// convert turns the provider response into a Result. Only an unparseable
// answer is an error; an empty or fully invalid answer is OutcomeEmpty.
func (c *Client) convert(resp *generateResponse) (Result, error) {
	if len(resp.Candidates) == 0 {
		return Result{}, ErrNoCandidates
	}
	cand := resp.Candidates[0]

	items, err := parseItems(candidateText(cand))
	if err != nil {
		return Result{}, err
	}

	sources := groundingSources(cand.GroundingMetadata)
	var sourceURL string
	if len(sources) > 0 {
		sourceURL = sources[0]
	}

	now := c.now().UnixMilli()
	seq := c.seq.Add(1)

	result := Result{
		Posts:     make([]domain.Post, 0, len(items)),
		SourceURL: sourceURL,
		Sources:   sources,
	}

	for i, item := range items {
		sig, err := c.decodeItem(item)
		if err != nil {
			result.Dropped++
			c.logger.Debug("dropping invalid signal", "index", i, "error", err)
			continue
		}

		handle := normalizeHandle(sig.AuthorHandle)
		result.Posts = append(result.Posts, domain.Post{
			ID:           fmt.Sprintf("ai-%d-%d-%d", now, seq, i),
			AuthorName:   strings.TrimSpace(sig.AuthorName),
			AuthorHandle: handle,
			AvatarURL:    avatarURL(handle),
			Content:      sig.Content,
			Likes:        roundCount(*sig.Likes),
			Replies:      roundCount(*sig.Replies),
			Timestamp:    sig.Timestamp,
			Type:         domain.ContentType(sig.Type),
			IsSaved:      false,
			SourceURL:    sourceURL,
		})
	}

	if len(result.Posts) == 0 {
		result.Outcome = OutcomeEmpty
	} else {
		result.Outcome = OutcomeOK
	}
	return result, nil
}

func (c *Client) decodeItem(raw json.RawMessage) (*rawSignal, error) {
	var sig rawSignal
	if err := json.Unmarshal(raw, &sig); err != nil {
		return nil, err
	}
	if err := c.validator.Validate(&sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// candidateText joins the text parts of a candidate.
func candidateText(cand candidate) string {
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// parseItems decodes the model text as a JSON array. Blank text is an empty array.
// A markdown code fence around the array is tolerated.
func parseItems(text string) ([]json.RawMessage, error) {
	text = stripFence(strings.TrimSpace(text))
	if text == "" {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: model text is not a JSON array: %w", ErrMalformed, err)
	}
	return items, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

// groundingSources returns the distinct web URIs in grounding order.
func groundingSources(meta *groundingMetadata) []string {
	if meta == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(meta.GroundingChunks))
	var sources []string
	for _, chunk := range meta.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if _, dup := seen[chunk.Web.URI]; dup {
			continue
		}
		seen[chunk.Web.URI] = struct{}{}
		sources = append(sources, chunk.Web.URI)
	}
	return sources
}

func normalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return handle
}

func avatarURL(handle string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(handle) + "/100/100"
}

// roundCount converts a provider count to a non-negative int no larger than MaxInt32.
func roundCount(v float64) int {
	switch r := math.Round(v); {
	case math.IsNaN(r) || r <= 0:
		return 0
	case r >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(r)
	}
}
