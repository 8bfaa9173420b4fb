package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member represents a community member who can hold giveaway entries
type Member struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username       string             `bson:"username" json:"username"`
	DisplayName    string             `bson:"displayName" json:"displayName"`
	Entries        int                `bson:"entries" json:"entries"`
	TotalSpent     float64            `bson:"totalSpent" json:"totalSpent"`
	PurchaseCount  int                `bson:"purchaseCount" json:"purchaseCount"`
	LastPurchaseAt time.Time          `bson:"lastPurchaseAt,omitempty" json:"lastPurchaseAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Label is the name shown on the wheel; the username stands in when no
// display name was captured.
func (m *Member) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}
