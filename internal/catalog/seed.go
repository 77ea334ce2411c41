// Package catalog provides the demo dataset used to seed a fresh
// local catalog. Structure mirrors the store's spreadsheet columns
// (código, marca, repuesto, …).
package catalog

import "github.com/garageml/partsbot/internal/domain"

// Demo returns the built-in demo catalog.
func Demo() []domain.Product {
	return []domain.Product{
		{
			ID:               "REP-001",
			Name:             "Kit de Distribución",
			Category:         "Motor",
			Price:            120.00,
			Currency:         "USD",
			CompatibleModels: []string{"Toyota", "Corolla", "Yaris"},
			Stock:            5,
			ImageURL:         "https://picsum.photos/300/300?random=10",
			Description:      "Kit de Distribución para Toyota",
		},
		{
			ID:               "REP-002",
			Name:             "Amortiguador Trasero",
			Category:         "Suspensión",
			Price:            45.50,
			Currency:         "USD",
			CompatibleModels: []string{"Chevrolet", "Corsa", "Onix"},
			Stock:            12,
			ImageURL:         "https://picsum.photos/300/300?random=11",
			Description:      "Amortiguador Trasero para Chevrolet",
		},
		{
			ID:               "REP-003",
			Name:             "Bomba de Agua",
			Category:         "Refrigeración",
			Price:            35.00,
			Currency:         "USD",
			CompatibleModels: []string{"Ford", "Fiesta", "Ecosport"},
			Stock:            8,
			ImageURL:         "https://picsum.photos/300/300?random=12",
			Description:      "Bomba de Agua para Ford",
		},
		{
			ID:               "REP-004",
			Name:             "Juego de Pastillas de Freno",
			Category:         "Frenos",
			Price:            28.99,
			Currency:         "USD",
			CompatibleModels: []string{"Volkswagen", "Gol", "Golf"},
			Stock:            20,
			ImageURL:         "https://picsum.photos/300/300?random=13",
			Description:      "Juego de Pastillas de Freno para Volkswagen",
		},
		{
			ID:               "REP-005",
			Name:             "Filtro de Aceite",
			Category:         "Mantenimiento",
			Price:            8.50,
			Currency:         "USD",
			CompatibleModels: []string{"Fiat", "Cronos", "Palio"},
			Stock:            50,
			ImageURL:         "https://picsum.photos/300/300?random=14",
			Description:      "Filtro de Aceite para Fiat",
		},
	}
}
