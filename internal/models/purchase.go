package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase sources
const (
	PurchaseSourceManual = "MANUAL"
	PurchaseSourceCSV    = "CSV_IMPORT"
)

// Purchase represents one tracked cosmetics purchase
type Purchase struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username      string             `bson:"username" json:"username"`
	ItemID        string             `bson:"itemId,omitempty" json:"itemId,omitempty"`
	ItemName      string             `bson:"itemName,omitempty" json:"itemName,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"` // gems
	Source        string             `bson:"source" json:"source"`
	PurchasedAt   time.Time          `bson:"purchasedAt" json:"purchasedAt"`
	EntriesEarned int                `bson:"entriesEarned" json:"entriesEarned"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
