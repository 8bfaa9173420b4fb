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

// MemberRepository implements the repositories.MemberRepository interface
type MemberRepository struct {
	collection *mongo.Collection
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *mongo.Database) repositories.MemberRepository {
	return &MemberRepository{
		collection: db.Collection("members"),
	}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, member)
	return err
}

// FindByUsername finds a member by their normalized username
func (r *MemberRepository) FindByUsername(ctx context.Context, username string) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByID finds a member by ID
func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindWithEntries finds every member holding at least one giveaway entry.
// This is the entry pool snapshot for a spin; zero-entry members are
// excluded here rather than downstream.
func (r *MemberRepository) FindWithEntries(ctx context.Context) ([]*models.Member, error) {
	opts := options.Find().SetSort(bson.M{"username": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"entries": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// FindAll finds members with pagination
func (r *MemberRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Member, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"entries": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	return err
}

// IncrementEntries atomically adds entries and spend to a member after a
// purchase. Upserts so first-time purchasers get a member document.
func (r *MemberRepository) IncrementEntries(ctx context.Context, username string, entries int, amount float64, purchasedAt time.Time) error {
	update := bson.M{
		"$inc": bson.M{
			"entries":       entries,
			"totalSpent":    amount,
			"purchaseCount": 1,
		},
		"$max": bson.M{"lastPurchaseAt": purchasedAt},
		"$set": bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{
			"username":  username,
			"createdAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update, opts)
	return err
}

// Count counts all members
func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
