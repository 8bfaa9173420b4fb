package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claim statuses for a winner record
const (
	ClaimStatusPending   = "PENDING"
	ClaimStatusClaimed   = "CLAIMED"
	ClaimStatusForfeited = "FORFEITED"
)

// Winner represents the committed result of a giveaway spin, including the
// rendered wheel asset that was delivered to the community.
type Winner struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID       primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	Username         string             `bson:"username" json:"username"`
	DisplayName      string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Entries          int                `bson:"entries" json:"entries"`
	WinProbability   float64            `bson:"winProbability" json:"winProbability"`
	FillColor        string             `bson:"fillColor" json:"fillColor"`
	WinDate          time.Time          `bson:"winDate" json:"winDate"`
	Asset            []byte             `bson:"asset,omitempty" json:"-"`
	AssetContentType string             `bson:"assetContentType,omitempty" json:"assetContentType,omitempty"`
	AssetStatic      bool               `bson:"assetStatic" json:"assetStatic"`
	ClaimStatus      string             `bson:"claimStatus" json:"claimStatus"`
	ClaimDate        time.Time          `bson:"claimDate,omitempty" json:"claimDate,omitempty"`
	NotifiedAt       time.Time          `bson:"notifiedAt,omitempty" json:"notifiedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
