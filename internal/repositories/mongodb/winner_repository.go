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

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// Create creates a new winner record
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, winner)
	return err
}

// FindByID finds a winner by ID
func (r *WinnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&winner)
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// FindByGiveawayID finds the winner committed for a giveaway. Each giveaway
// has at most one.
func (r *WinnerRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"giveawayId": giveawayID}).Decode(&winner)
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// FindByUsername finds every win recorded for a member
func (r *WinnerRepository) FindByUsername(ctx context.Context, username string) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"winDate": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// FindAll finds every winner record, used by the backup export. The asset
// bytes are excluded to keep exports small.
func (r *WinnerRepository) FindAll(ctx context.Context) ([]*models.Winner, error) {
	opts := options.Find().
		SetSort(bson.M{"winDate": -1}).
		SetProjection(bson.M{"asset": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// Update updates a winner record
func (r *WinnerRepository) Update(ctx context.Context, winner *models.Winner) error {
	winner.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": winner.ID}, winner)
	return err
}
