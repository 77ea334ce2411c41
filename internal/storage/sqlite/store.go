// Package sqlite persists the local product catalog. The store is
// write-once per deployment: it is seeded with a dataset on first run
// and read in full at startup; the pipeline never mutates products.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/garageml/partsbot/internal/domain"
)

// Store is a SQLite-backed product catalog.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the catalog database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			currency TEXT NOT NULL,
			compatible_models TEXT NOT NULL,
			stock INTEGER NOT NULL,
			image_url TEXT,
			description TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}
	return nil
}

// SeedIfEmpty inserts products only when the catalog has no rows yet,
// so a curated catalog survives restarts untouched.
func (s *Store) SeedIfEmpty(ctx context.Context, products []domain.Product) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		models, err := json.Marshal(p.CompatibleModels)
		if err != nil {
			return fmt.Errorf("failed to marshal compatible models: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO products (id, name, category, price, currency, compatible_models, stock, image_url, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.Price, p.Currency, string(models), p.Stock, p.ImageURL, p.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// ListProducts returns the full catalog ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, price, currency, compatible_models, stock, image_url, description
		 FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var models string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Currency, &models, &p.Stock, &p.ImageURL, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := json.Unmarshal([]byte(models), &p.CompatibleModels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal compatible models for %s: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
