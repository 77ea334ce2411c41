package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/garageml/partsbot/internal/domain"
)

// RemoteOption configures the remote engine.
type RemoteOption func(*Remote)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) RemoteOption {
	return func(r *Remote) {
		r.httpClient = httpClient
	}
}

// Remote delegates searches to a configured HTTP inventory endpoint.
// Failures surface as *domain.InventoryError; the engine never hides a
// broken source behind an empty result, since the orchestrator could
// not tell that apart from "no matching parts".
type Remote struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemote creates a remote engine for the given base URL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search maps criteria onto query parameters (partName→part,
// make→make, model→model, absent fields omitted), issues a GET and
// parses the response as a JSON array of products.
func (r *Remote) Search(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, &domain.InventoryError{Err: fmt.Errorf("invalid inventory URL: %w", err)}
	}

	q := u.Query()
	if criteria.PartName != "" {
		q.Set("part", criteria.PartName)
	}
	if criteria.Make != "" {
		q.Set("make", criteria.Make)
	}
	if criteria.Model != "" {
		q.Set("model", criteria.Model)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.InventoryError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &domain.InventoryError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.InventoryError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.InventoryError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("inventory endpoint returned %s", resp.Status),
		}
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, &domain.InventoryError{Err: fmt.Errorf("failed to parse inventory response: %w", err)}
	}

	return products, nil
}
