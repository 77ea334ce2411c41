package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garageml/partsbot/internal/domain"
	"github.com/garageml/partsbot/internal/orchestrator"
)

// fakePipeline implements Pipeline with canned responses.
type fakePipeline struct {
	result   *orchestrator.TurnResult
	err      error
	products []domain.Product

	lastMessage string
}

func (f *fakePipeline) HandleMessage(ctx context.Context, text string) (*orchestrator.TurnResult, error) {
	f.lastMessage = text
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePipeline) Products() []domain.Product {
	return f.products
}

func newTestServer(p Pipeline) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(0, logger, p)
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

func TestChat_Success(t *testing.T) {
	pipeline := &fakePipeline{
		result: &orchestrator.TurnResult{
			Reply: "Encontré 2 resultados para tu búsqueda.",
			Products: []domain.Product{
				{ID: "REP-001", Name: "Pastillas de freno"},
				{ID: "REP-002", Name: "Disco de freno"},
			},
		},
	}
	srv := newTestServer(pipeline)

	rec := postChat(t, srv, `{"message": "necesito frenos"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if pipeline.lastMessage != "necesito frenos" {
		t.Errorf("Pipeline received %q, want %q", pipeline.lastMessage, "necesito frenos")
	}

	var result orchestrator.TurnResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Reply != "Encontré 2 resultados para tu búsqueda." {
		t.Errorf("Reply = %q", result.Reply)
	}
	if len(result.Products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(result.Products))
	}
}

func TestChat_TrimsWhitespace(t *testing.T) {
	pipeline := &fakePipeline{result: &orchestrator.TurnResult{Reply: "ok"}}
	srv := newTestServer(pipeline)

	rec := postChat(t, srv, `{"message": "  hola  "}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if pipeline.lastMessage != "hola" {
		t.Errorf("Pipeline received %q, want trimmed %q", pipeline.lastMessage, "hola")
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	pipeline := &fakePipeline{}
	srv := newTestServer(pipeline)

	rec := postChat(t, srv, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if pipeline.lastMessage != "" {
		t.Error("Pipeline should not be called for invalid JSON")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	pipeline := &fakePipeline{}
	srv := newTestServer(pipeline)

	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"message": ""}`},
		{"whitespace only", `{"message": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(t, srv, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestChat_TurnInFlight(t *testing.T) {
	pipeline := &fakePipeline{err: domain.ErrTurnInFlight}
	srv := newTestServer(pipeline)

	rec := postChat(t, srv, `{"message": "hola"}`)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected error message in response")
	}
}

func TestChat_PipelineError(t *testing.T) {
	pipeline := &fakePipeline{err: context.DeadlineExceeded}
	srv := newTestServer(pipeline)

	rec := postChat(t, srv, `{"message": "hola"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestProducts(t *testing.T) {
	pipeline := &fakePipeline{
		products: []domain.Product{
			{ID: "REP-003", Name: "Bomba de agua", Price: 95.5, Currency: "USD"},
		},
	}
	srv := newTestServer(pipeline)

	req := httptest.NewRequest("GET", "/api/products", nil)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var products []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(products) != 1 || products[0].ID != "REP-003" {
		t.Errorf("Unexpected products: %+v", products)
	}
}

func TestProducts_EmptyIsArray(t *testing.T) {
	srv := newTestServer(&fakePipeline{products: nil})

	req := httptest.NewRequest("GET", "/api/products", nil)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	// nil catalogs must serialize as [] so clients can range blindly
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakePipeline{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", resp["status"])
	}
}

func TestServer_SetsRequestID(t *testing.T) {
	srv := newTestServer(&fakePipeline{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on routed responses")
	}
}
