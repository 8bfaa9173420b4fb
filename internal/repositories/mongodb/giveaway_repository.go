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

// GiveawayRepository implements the repositories.GiveawayRepository interface
type GiveawayRepository struct {
	collection *mongo.Collection
}

// NewGiveawayRepository creates a new GiveawayRepository
func NewGiveawayRepository(db *mongo.Database) repositories.GiveawayRepository {
	return &GiveawayRepository{
		collection: db.Collection("giveaways"),
	}
}

// Create creates a new giveaway
func (r *GiveawayRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.CreatedAt = time.Now()
	giveaway.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, giveaway)
	return err
}

// FindByID finds a giveaway by ID
func (r *GiveawayRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error) {
	var giveaway models.Giveaway
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&giveaway)
	if err != nil {
		return nil, err
	}
	return &giveaway, nil
}

// FindByStatus finds giveaways by status
func (r *GiveawayRepository) FindByStatus(ctx context.Context, status models.GiveawayStatus) ([]*models.Giveaway, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var giveaways []*models.Giveaway
	if err := cursor.All(ctx, &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}

// FindAll finds giveaways with pagination, newest first
func (r *GiveawayRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var giveaways []*models.Giveaway
	if err := cursor.All(ctx, &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}

// Update updates a giveaway
func (r *GiveawayRepository) Update(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": giveaway.ID}, giveaway)
	return err
}

// MarkSpinning transitions a giveaway from OPEN to SPINNING. The filter
// requires the OPEN status, so a giveaway that is already spinning or has a
// committed winner cannot be claimed a second time.
func (r *GiveawayRepository) MarkSpinning(ctx context.Context, id primitive.ObjectID, requestID string) error {
	filter := bson.M{
		"_id":    id,
		"status": models.GiveawayStatusOpen,
	}
	update := bson.M{
		"$set": bson.M{
			"status":        models.GiveawayStatusSpinning,
			"spinRequestId": requestID,
			"spinStartTime": time.Now(),
			"updatedAt":     time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrGiveawayConflict
	}
	return nil
}

// CommitWinner transitions a giveaway from SPINNING to COMPLETED and writes
// the winner in the same update. The filter additionally requires that no
// winner exists yet, so at most one winner is ever committed per giveaway.
func (r *GiveawayRepository) CommitWinner(ctx context.Context, id primitive.ObjectID, winner *models.WinnerSummary, commit models.SpinCommit) error {
	filter := bson.M{
		"_id":    id,
		"status": models.GiveawayStatusSpinning,
		"winner": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"status":            models.GiveawayStatusCompleted,
			"winner":            winner,
			"spinRequestId":     commit.RequestID,
			"totalParticipants": commit.TotalParticipants,
			"totalEntries":      commit.TotalEntries,
			"spinEndTime":       commit.SpinEndTime,
			"updatedAt":         time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrGiveawayConflict
	}
	return nil
}

// Reopen returns a SPINNING giveaway to OPEN after a failed spin so it can
// be retried. Completed giveaways are never reopened.
func (r *GiveawayRepository) Reopen(ctx context.Context, id primitive.ObjectID, errorMessage string) error {
	filter := bson.M{
		"_id":    id,
		"status": models.GiveawayStatusSpinning,
	}
	update := bson.M{
		"$set": bson.M{
			"status":       models.GiveawayStatusOpen,
			"errorMessage": errorMessage,
			"updatedAt":    time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrGiveawayConflict
	}
	return nil
}

// Count counts all giveaways
func (r *GiveawayRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
