package models

import "time"

// CatalogItem is a cosmetics item as returned by the external catalog API
type CatalogItem struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Rarity    string  `json:"rarity,omitempty"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Available bool    `json:"available"`
}

// PriceEstimate is the catalog's current price reading for one item
type PriceEstimate struct {
	ItemID      string    `json:"itemId"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Source      string    `json:"source"`
	RetrievedAt time.Time `json:"retrievedAt"`
}
