package mongodb

import (
	"context"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementRepository implements the repositories.AnnouncementRepository interface
type AnnouncementRepository struct {
	collection *mongo.Collection
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *mongo.Database) repositories.AnnouncementRepository {
	return &AnnouncementRepository{
		collection: db.Collection("announcements"),
	}
}

// Create creates a new announcement record
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = primitive.NewObjectID()
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, announcement)
	return err
}

// FindByGiveawayID finds announcements for a giveaway
func (r *AnnouncementRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Announcement, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []*models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// UpdateStatus updates the delivery status of an announcement
func (r *AnnouncementRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, messageID, errorMessage string) error {
	update := bson.M{
		"$set": bson.M{
			"status":       status,
			"messageId":    messageID,
			"errorMessage": errorMessage,
			"sentDate":     time.Now(),
			"updatedAt":    time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
