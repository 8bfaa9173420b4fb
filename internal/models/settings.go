package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WheelSettings holds the tunable wheel rendering options. Defaults for any
// zero field are applied by the wheel engine, so a partially filled document
// is valid.
type WheelSettings struct {
	WheelSize                 int      `bson:"wheelSize" json:"wheelSize"`
	PaletteColors             []string `bson:"paletteColors,omitempty" json:"paletteColors,omitempty"`
	FontPath                  string   `bson:"fontPath,omitempty" json:"fontPath,omitempty"`
	FrameRate                 int      `bson:"frameRate" json:"frameRate"`
	SpinRevolutions           int      `bson:"spinRevolutions" json:"spinRevolutions"`
	SpinDurationFrames        int      `bson:"spinDurationFrames" json:"spinDurationFrames"`
	CelebrationDurationFrames int      `bson:"celebrationDurationFrames" json:"celebrationDurationFrames"`
	CelebrationLoops          int      `bson:"celebrationLoops" json:"celebrationLoops"`
	MaxFrames                 int      `bson:"maxFrames" json:"maxFrames"`
}

// SystemSettings represents system-wide configuration settings
type SystemSettings struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Wheel       WheelSettings      `bson:"wheel" json:"wheel"`
	ChatGateway string             `bson:"chatGateway" json:"chatGateway"` // WEBHOOK, MOCK
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy   string             `bson:"updatedBy" json:"updatedBy"`
}
