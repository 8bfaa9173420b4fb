package services

import (
	"context"
	"testing"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePurchaseRepo struct {
	purchases []*models.Purchase
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *models.Purchase) error {
	r.purchases = append(r.purchases, p)
	return nil
}
func (r *fakePurchaseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	return nil, nil
}
func (r *fakePurchaseRepo) FindByUsername(ctx context.Context, username string, page, limit int) ([]*models.Purchase, error) {
	var out []*models.Purchase
	for _, p := range r.purchases {
		if p.Username == username {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePurchaseRepo) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Purchase, error) {
	return r.purchases, nil
}
func (r *fakePurchaseRepo) FindAll(ctx context.Context) ([]*models.Purchase, error) {
	return r.purchases, nil
}
func (r *fakePurchaseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.purchases)), nil
}

func TestRecordPurchaseCreditsEntries(t *testing.T) {
	purchases := &fakePurchaseRepo{}
	members := &fakeMemberRepo{}
	service := NewPurchaseService(purchases, members)

	tests := []struct {
		amount  float64
		entries int
	}{
		{99, 0},
		{100, 1},
		{250, 3},
		{500, 6},
		{1000, 15},
		{2500, 40},
	}
	total := 0
	for _, tc := range tests {
		p, err := service.RecordPurchase(context.Background(), "alice", "Alice", "item-1", "Winter Cape", tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.entries, p.EntriesEarned, "amount %.0f", tc.amount)
		total += tc.entries
	}

	m, err := members.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, total, m.Entries)
	assert.Equal(t, len(tests), len(purchases.purchases))
}

func TestRecordPurchaseNormalizesUsername(t *testing.T) {
	purchases := &fakePurchaseRepo{}
	service := NewPurchaseService(purchases, &fakeMemberRepo{})

	p, err := service.RecordPurchase(context.Background(), "  @Alice ", "", "", "", 100)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
}

func TestRecordPurchaseRejectsNegativeAmount(t *testing.T) {
	service := NewPurchaseService(&fakePurchaseRepo{}, &fakeMemberRepo{})

	_, err := service.RecordPurchase(context.Background(), "alice", "", "", "", -5)
	assert.Error(t, err)

	_, err = service.RecordPurchase(context.Background(), "", "", "", "", 100)
	assert.Error(t, err)
}
