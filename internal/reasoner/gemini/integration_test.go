package gemini

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/garageml/partsbot/internal/domain"
	"github.com/garageml/partsbot/internal/testutil"
)

// Replays a recorded extraction exchange. Record with:
//
//	VCR_MODE=record GEMINI_API_KEY=... go test -run Integration ./internal/reasoner/gemini
func TestIntegration_ExtractCriteria(t *testing.T) {
	rec, cleanup := testutil.NewVCRRecorder(t, "extract_criteria")
	defer cleanup()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = "replayed-key"
	}

	client, err := New(
		Config{APIKey: apiKey, Model: "gemini-2.5-flash"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithHTTPClient(testutil.VCRHTTPClient(rec)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := client.ExtractCriteria(context.Background(), "necesito bujias para un gol 2012")
	if got.Intent != domain.IntentSearch {
		t.Errorf("Intent = %v, want SEARCH", got.Intent)
	}
	if got.Criteria.PartName == "" {
		t.Error("PartName is empty, want extracted part")
	}
}
