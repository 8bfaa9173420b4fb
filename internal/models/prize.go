package models

// Prize describes what a giveaway awards, referencing a cosmetics catalog
// item with its estimated gem price at creation time.
type Prize struct {
	ItemID         string  `bson:"itemId" json:"itemId"`
	ItemName       string  `bson:"itemName" json:"itemName"`
	EstimatedPrice float64 `bson:"estimatedPrice" json:"estimatedPrice"`
	Currency       string  `bson:"currency" json:"currency"`
}
