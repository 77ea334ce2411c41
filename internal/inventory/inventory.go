// Package inventory resolves structured search criteria against a
// product catalog. Two interchangeable engines exist: Local filters an
// in-memory dataset, Remote delegates to a configured HTTP endpoint.
// An orchestrator uses exactly one of them per deployment; results are
// never mixed.
package inventory

import (
	"context"

	"github.com/garageml/partsbot/internal/domain"
)

// Engine is the inventory search contract shared by both strategies.
type Engine interface {
	// Search returns the products matching every supplied criteria
	// field. Absence of matches is a normal empty result, not an
	// error; errors signal an unavailable source.
	Search(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error)
}
