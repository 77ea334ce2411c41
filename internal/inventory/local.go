package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/garageml/partsbot/internal/domain"
)

// LocalOption configures the local engine.
type LocalOption func(*Local)

// WithMinLatency sets the minimum perceived latency before a search
// returns. Instant responses make the chat UI flicker; a small delay
// reads as the assistant working. Zero disables the delay.
func WithMinLatency(d time.Duration) LocalOption {
	return func(l *Local) {
		l.minLatency = d
	}
}

// Local filters an in-memory catalog with case-insensitive substring
// matching. Pure predicate evaluation; it cannot fail.
type Local struct {
	products   []domain.Product
	blobs      []string
	minLatency time.Duration
}

// NewLocal builds a local engine over catalog. Search blobs are
// precomputed once; the catalog must not be mutated afterwards.
func NewLocal(catalog []domain.Product, opts ...LocalOption) *Local {
	l := &Local{
		products: catalog,
		blobs:    make([]string, len(catalog)),
	}
	for i, p := range catalog {
		l.blobs[i] = p.SearchBlob()
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Search applies a logical AND across the supplied partName, make and
// model fields; absent fields match everything. The part name also
// matches through a naive singular variant so "bujias" finds "bujia".
func (l *Local) Search(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error) {
	if l.minLatency > 0 {
		select {
		case <-time.After(l.minLatency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if criteria.Empty() {
		return append([]domain.Product(nil), l.products...), nil
	}

	var results []domain.Product
	for i, p := range l.products {
		blob := l.blobs[i]
		if !matchesPart(blob, criteria.PartName) {
			continue
		}
		if !matchesField(blob, criteria.Make) {
			continue
		}
		if !matchesField(blob, criteria.Model) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func matchesField(blob, value string) bool {
	if value == "" {
		return true
	}
	return strings.Contains(blob, strings.ToLower(value))
}

func matchesPart(blob, part string) bool {
	if part == "" {
		return true
	}
	lower := strings.ToLower(part)
	if strings.Contains(blob, lower) {
		return true
	}
	if singular := singularize(lower); singular != lower {
		return strings.Contains(blob, singular)
	}
	return false
}

// singularize strips a trailing "es" or "s". Good enough for Spanish
// part names ("bujias" → "bujia", "amortiguadores" → "amortiguador").
func singularize(s string) string {
	if strings.HasSuffix(s, "es") && len(s) > 2 {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}
