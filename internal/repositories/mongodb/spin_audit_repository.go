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

// SpinAuditRepository implements the repositories.SpinAuditRepository interface
type SpinAuditRepository struct {
	collection *mongo.Collection
}

// NewSpinAuditRepository creates a new SpinAuditRepository
func NewSpinAuditRepository(db *mongo.Database) repositories.SpinAuditRepository {
	return &SpinAuditRepository{
		collection: db.Collection("spin_audits"),
	}
}

// Create creates a new spin audit record
func (r *SpinAuditRepository) Create(ctx context.Context, audit *models.SpinAudit) error {
	audit.ID = primitive.NewObjectID()
	audit.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, audit)
	return err
}

// FindByGiveawayID finds every spin attempt recorded for a giveaway
func (r *SpinAuditRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.SpinAudit, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audits []*models.SpinAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}
