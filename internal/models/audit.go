package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Spin audit outcomes
const (
	SpinOutcomeCompleted         = "COMPLETED"
	SpinOutcomeStaticFallback    = "STATIC_FALLBACK"
	SpinOutcomeRejectedInFlight  = "REJECTED_IN_FLIGHT"
	SpinOutcomeRejectedHasWinner = "REJECTED_HAS_WINNER"
	SpinOutcomeFailed            = "FAILED"
)

// SpinAudit records one spin attempt, successful or not. Every attempt gets
// a unique request id so replays and rejections can be traced.
type SpinAudit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID      string             `bson:"requestId" json:"requestId"`
	GiveawayID     primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	TriggeredBy    string             `bson:"triggeredBy,omitempty" json:"triggeredBy,omitempty"`
	Outcome        string             `bson:"outcome" json:"outcome"`
	WinnerUsername string             `bson:"winnerUsername,omitempty" json:"winnerUsername,omitempty"`
	Participants   int                `bson:"participants" json:"participants"`
	TotalEntries   int                `bson:"totalEntries" json:"totalEntries"`
	FrameCount     int                `bson:"frameCount" json:"frameCount"`
	Static         bool               `bson:"static" json:"static"`
	DurationMillis int64              `bson:"durationMillis" json:"durationMillis"`
	ErrorMessage   string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
