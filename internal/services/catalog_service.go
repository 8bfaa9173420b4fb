package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/pkg/catalogapi"
)

// Compile-time check to ensure CatalogServiceImpl implements CatalogService
var _ CatalogService = (*CatalogServiceImpl)(nil)

// CatalogServiceImpl wraps the external cosmetics catalog API
type CatalogServiceImpl struct {
	client *catalogapi.Client
}

// NewCatalogService creates a new CatalogServiceImpl
func NewCatalogService(client *catalogapi.Client) *CatalogServiceImpl {
	return &CatalogServiceImpl{client: client}
}

// Search searches the catalog by name fragment
func (s *CatalogServiceImpl) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}

	results, err := s.client.SearchItems(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, 0, len(results))
	for _, r := range results {
		items = append(items, models.CatalogItem{
			ItemID:    r.ItemID,
			Name:      r.Name,
			Category:  r.Category,
			Rarity:    r.Rarity,
			Price:     r.Price,
			Currency:  r.Currency,
			Available: r.Available,
		})
	}
	return items, nil
}

// EstimatePrice retrieves the current price estimate for an item
func (s *CatalogServiceImpl) EstimatePrice(ctx context.Context, itemID string) (*models.PriceEstimate, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("item id is required")
	}

	result, err := s.client.GetPrice(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &models.PriceEstimate{
		ItemID:      result.ItemID,
		Price:       result.Price,
		Currency:    result.Currency,
		Source:      result.Source,
		RetrievedAt: time.Now(),
	}, nil
}
