package sqlite

import (
	"context"
	"testing"

	"github.com/garageml/partsbot/internal/catalog"
	"github.com/garageml/partsbot/internal/domain"
)

func TestStore_SeedAndList(t *testing.T) {
	store, err := New("file:catalog1?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	if err := store.SeedIfEmpty(context.Background(), catalog.Demo()); err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}

	products, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("len(ListProducts()) = %d, want 5", len(products))
	}

	// Ordered by id, fields survive the round trip.
	first := products[0]
	if first.ID != "REP-001" {
		t.Errorf("first product = %s, want REP-001", first.ID)
	}
	if first.Price != 120.00 || first.Currency != "USD" {
		t.Errorf("price/currency = %v %s, want 120 USD", first.Price, first.Currency)
	}
	if len(first.CompatibleModels) != 3 || first.CompatibleModels[0] != "Toyota" {
		t.Errorf("CompatibleModels = %v, want [Toyota Corolla Yaris]", first.CompatibleModels)
	}
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	store, err := New("file:catalog2?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	if err := store.SeedIfEmpty(context.Background(), catalog.Demo()); err != nil {
		t.Fatalf("first SeedIfEmpty() error = %v", err)
	}
	// A second seed with different content must be a no-op.
	extra := []domain.Product{{ID: "REP-099", Name: "Bujía", Category: "Encendido", Currency: "USD"}}
	if err := store.SeedIfEmpty(context.Background(), extra); err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}

	products, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 5 {
		t.Errorf("len(ListProducts()) = %d after reseed, want 5", len(products))
	}
}

func TestStore_EmptyCatalog(t *testing.T) {
	store, err := New("file:catalog3?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	products, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("len(ListProducts()) = %d, want 0", len(products))
	}
}
