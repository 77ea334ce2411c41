// Package gemini wraps the external reasoning service. All three
// operations degrade gracefully: without credentials no network call
// is made, and any transport, schema or parse failure is absorbed into
// a documented local fallback. Callers never receive an error from
// this package.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/garageml/partsbot/internal/codec"
	"github.com/garageml/partsbot/internal/domain"
	"github.com/garageml/partsbot/internal/tokens"
)

// ApologyReply is delivered when semantic matching fails outright.
const ApologyReply = "Disculpá, tuve un inconveniente al procesar tu consulta. ¿Podrías reformularla?"

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP transport for the genai client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Config carries the reasoner settings extracted from service config.
type Config struct {
	APIKey             string
	Model              string
	HistoryWindow      int
	HistoryTokenBudget int
	PreviewCount       int
}

// Client talks to the Gemini API. A client constructed without an API
// key is disabled: every operation short-circuits to its fallback.
type Client struct {
	genai        *genai.Client
	model        string
	window       *tokens.Window
	previewCount int
	logger       *slog.Logger
	httpClient   *http.Client
}

// New creates a reasoning client. An empty API key yields a disabled
// but fully usable client.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		model:        cfg.Model,
		previewCount: cfg.PreviewCount,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.model == "" {
		c.model = "gemini-2.5-flash"
	}
	if c.previewCount <= 0 {
		c.previewCount = 8
	}

	windowSize := cfg.HistoryWindow
	if windowSize <= 0 {
		windowSize = 12
	}
	window, err := tokens.NewWindow(windowSize, cfg.HistoryTokenBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to create history window: %w", err)
	}
	c.window = window

	if cfg.APIKey == "" {
		logger.Warn("no Gemini API key configured, reasoning disabled")
		return c, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.genai = client

	return c, nil
}

// Enabled reports whether the client will actually reach the network.
func (c *Client) Enabled() bool {
	return c.genai != nil
}

// ExtractCriteria classifies the user text into an intent and
// extracts structured search fields. The fallback on every failure
// path is a raw part-name search over the full input.
func (c *Client) ExtractCriteria(ctx context.Context, text string) domain.Classification {
	if !c.Enabled() {
		return domain.RawSearch(text)
	}

	prompt := buildCriteriaPrompt(text)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   criteriaSchema(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: criteriaSystemInstruction}},
		},
	}

	raw, err := c.generate(ctx, prompt, cfg)
	if err != nil {
		c.logger.Warn("criteria extraction failed, using raw search",
			slog.String("error", err.Error()))
		return domain.RawSearch(text)
	}

	classification, err := parseCriteria(raw)
	if err != nil {
		c.logger.Warn("criteria response unparseable, using raw search",
			slog.String("error", err.Error()))
		return domain.RawSearch(text)
	}
	return classification
}

// MatchResult is the outcome of a semantic match: catalog products by
// id, a conversational reply, and any inferred criteria.
type MatchResult struct {
	Products []domain.Product
	Reply    string
	Criteria domain.Criteria
}

// SemanticMatch sends the condensed catalog plus a bounded
// conversation window and asks the service to select the product ids
// that address the user's stated or implied need. Returned ids are
// resolved against the authoritative catalog; unknown ids are dropped
// so the service cannot fabricate stock or prices. On failure the
// result carries no matches and a fixed apologetic reply.
func (c *Client) SemanticMatch(ctx context.Context, text string, history []domain.ChatMessage, catalog []domain.Product) MatchResult {
	failed := MatchResult{Reply: ApologyReply}
	if !c.Enabled() {
		return failed
	}

	prompt := buildSemanticPrompt(text, c.window.Trim(history), catalog)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   semanticSchema(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: semanticSystemInstruction}},
		},
	}

	raw, err := c.generate(ctx, prompt, cfg)
	if err != nil {
		c.logger.Warn("semantic match failed", slog.String("error", err.Error()))
		return failed
	}

	payload, err := parseSemantic(raw)
	if err != nil {
		c.logger.Warn("semantic response unparseable", slog.String("error", err.Error()))
		return failed
	}

	result := MatchResult{
		Products: resolveMatches(payload.Matches, catalog),
		Reply:    payload.Reply,
		Criteria: domain.Criteria{
			Make:  payload.Make,
			Model: payload.Model,
			Year:  payload.Year,
		},
	}
	if result.Reply == "" {
		result.Reply = ApologyReply
	}
	return result
}

// Summarize produces a short pitch for the search outcome. It always
// returns a non-empty string; the fallback mentions the result count.
func (c *Client) Summarize(ctx context.Context, query string, products []domain.Product, criteria domain.Criteria) string {
	fallback := countSummary(len(products))
	if !c.Enabled() {
		return fallback
	}

	preview := products
	if len(preview) > c.previewCount {
		preview = preview[:c.previewCount]
	}

	raw, err := c.generate(ctx, buildSummaryPrompt(query, preview, len(products), criteria), &genai.GenerateContentConfig{})
	if err != nil {
		c.logger.Warn("summary generation failed", slog.String("error", err.Error()))
		return fallback
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return fallback
	}
	return summary
}

// generate runs one GenerateContent call and collapses the candidate
// parts into a single string.
func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in Gemini response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response text from Gemini")
	}
	return text, nil
}

func countSummary(n int) string {
	if n == 1 {
		return "Encontré 1 resultado para tu búsqueda."
	}
	return fmt.Sprintf("Encontré %d resultados para tu búsqueda.", n)
}

// resolveMatches keeps only ids present in the authoritative catalog,
// preserving catalog order for a stable result list.
func resolveMatches(ids []string, catalog []domain.Product) []domain.Product {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var products []domain.Product
	for _, p := range catalog {
		if _, ok := wanted[p.ID]; ok {
			products = append(products, p)
		}
	}
	return products
}

// parseCriteria runs the defensive normalizer and decodes the criteria
// payload into a well-formed classification.
func parseCriteria(raw string) (domain.Classification, error) {
	var payload criteriaPayload
	if err := json.Unmarshal([]byte(codec.ExtractJSON(raw)), &payload); err != nil {
		return domain.Classification{}, fmt.Errorf("failed to parse criteria JSON: %w", err)
	}

	return domain.Classification{
		Intent:       domain.Intent(payload.Intent),
		Reply:        payload.ConversationalReply,
		ExpertAdvice: payload.ExpertAdvice,
		Criteria: domain.Criteria{
			PartName: payload.PartName,
			Make:     payload.Make,
			Model:    payload.Model,
			Year:     payload.Year,
			Category: payload.Category,
		},
	}.Normalize(), nil
}

func parseSemantic(raw string) (*semanticPayload, error) {
	var payload semanticPayload
	if err := json.Unmarshal([]byte(codec.ExtractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse semantic JSON: %w", err)
	}
	return &payload, nil
}

type criteriaPayload struct {
	Intent              string `json:"intent"`
	ConversationalReply string `json:"conversationalReply"`
	ExpertAdvice        string `json:"expertAdvice"`
	PartName            string `json:"partName"`
	Make                string `json:"make"`
	Model               string `json:"model"`
	Year                string `json:"year"`
	Category            string `json:"category"`
}

type semanticPayload struct {
	Matches []string `json:"matches"`
	Reply   string   `json:"reply"`
	Make    string   `json:"make"`
	Model   string   `json:"model"`
	Year    string   `json:"year"`
}
