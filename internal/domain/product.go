// Package domain holds the data model shared by every pipeline stage:
// products, search criteria, chat messages, and typed errors.
package domain

import "strings"

// Product is a single catalog entry. Products are loaded once per
// session from whichever inventory source owns them and are never
// mutated by the pipeline.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	CompatibleModels []string `json:"compatibleModels"`
	Stock            int      `json:"stock"`
	ImageURL         string   `json:"imageUrl"`
	Description      string   `json:"description"`
}

// SearchBlob returns the lowercase haystack used for substring
// matching: id, name, compatibility list, category, and description
// joined with spaces.
func (p Product) SearchBlob() string {
	parts := make([]string, 0, 4+len(p.CompatibleModels))
	parts = append(parts, p.ID, p.Name)
	parts = append(parts, p.CompatibleModels...)
	parts = append(parts, p.Category, p.Description)
	return strings.ToLower(strings.Join(parts, " "))
}
