package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GiveawayStatus represents the lifecycle state of a giveaway
type GiveawayStatus string

const (
	GiveawayStatusOpen      GiveawayStatus = "OPEN"
	GiveawayStatusSpinning  GiveawayStatus = "SPINNING"
	GiveawayStatusCompleted GiveawayStatus = "COMPLETED"
	GiveawayStatusFailed    GiveawayStatus = "FAILED"
	GiveawayStatusCancelled GiveawayStatus = "CANCELLED"
)

// WinnerSummary is the wheel's winner record as committed onto the giveaway
type WinnerSummary struct {
	Username       string  `bson:"username" json:"username"`
	Label          string  `bson:"label" json:"label"`
	Entries        int     `bson:"entries" json:"entries"`
	FillColor      string  `bson:"fillColor" json:"fillColor"`
	WinProbability float64 `bson:"winProbability" json:"winProbability"`
}

// SpinCommit carries the bookkeeping fields written onto a giveaway in the
// same update that commits its winner.
type SpinCommit struct {
	RequestID         string
	TotalParticipants int
	TotalEntries      int
	Static            bool
	SpinEndTime       time.Time
}

// Giveaway represents one giveaway event. A winner is committed at most once,
// ever; once Status is COMPLETED the giveaway can never be re-spun.
type Giveaway struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title             string             `bson:"title" json:"title"`
	Prize             Prize              `bson:"prize" json:"prize"`
	Status            GiveawayStatus     `bson:"status" json:"status"`
	TotalParticipants int                `bson:"totalParticipants" json:"totalParticipants"`
	TotalEntries      int                `bson:"totalEntries" json:"totalEntries"`
	Winner            *WinnerSummary     `bson:"winner,omitempty" json:"winner,omitempty"`
	SpinRequestID     string             `bson:"spinRequestId,omitempty" json:"spinRequestId,omitempty"`
	SpinStartTime     time.Time          `bson:"spinStartTime,omitempty" json:"spinStartTime,omitempty"`
	SpinEndTime       time.Time          `bson:"spinEndTime,omitempty" json:"spinEndTime,omitempty"`
	SpinLog           []string           `bson:"spinLog,omitempty" json:"spinLog,omitempty"`
	ErrorMessage      string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedBy         string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
