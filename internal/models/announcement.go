package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement statuses
const (
	AnnouncementStatusPending = "PENDING"
	AnnouncementStatusSent    = "SENT"
	AnnouncementStatusFailed  = "FAILED"
)

// Announcement represents a winner message posted to the community chat
type Announcement struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID     primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	Content        string             `bson:"content" json:"content"`
	Status         string             `bson:"status" json:"status"`
	Gateway        string             `bson:"gateway" json:"gateway"` // WEBHOOK, MOCK
	MessageID      string             `bson:"messageId,omitempty" json:"messageId,omitempty"`
	AttachmentType string             `bson:"attachmentType,omitempty" json:"attachmentType,omitempty"`
	AttachmentSize int                `bson:"attachmentSize" json:"attachmentSize"`
	SentDate       time.Time          `bson:"sentDate,omitempty" json:"sentDate,omitempty"`
	ErrorMessage   string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
