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

// PurchaseRepository implements the repositories.PurchaseRepository interface
type PurchaseRepository struct {
	collection *mongo.Collection
}

// NewPurchaseRepository creates a new PurchaseRepository
func NewPurchaseRepository(db *mongo.Database) repositories.PurchaseRepository {
	return &PurchaseRepository{
		collection: db.Collection("purchases"),
	}
}

// Create creates a new purchase
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	purchase.CreatedAt = time.Now()
	purchase.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, purchase)
	return err
}

// FindByID finds a purchase by ID
func (r *PurchaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&purchase)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindByUsername finds purchases by username with pagination
func (r *PurchaseRepository) FindByUsername(ctx context.Context, username string, page, limit int) ([]*models.Purchase, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"purchasedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindByDateRange finds purchases by date range with pagination
func (r *PurchaseRepository) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Purchase, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"purchasedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{
		"purchasedAt": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindAll finds every purchase, used by the backup export
func (r *PurchaseRepository) FindAll(ctx context.Context) ([]*models.Purchase, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts all purchases
func (r *PurchaseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
