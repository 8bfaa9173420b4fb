package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
	"github.com/giftwheel/giveaway-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PurchaseServiceImpl implements PurchaseService
var _ PurchaseService = (*PurchaseServiceImpl)(nil)

// PurchaseServiceImpl records tracked cosmetics purchases and accrues
// giveaway entries onto members.
type PurchaseServiceImpl struct {
	purchaseRepo repositories.PurchaseRepository
	memberRepo   repositories.MemberRepository
}

// NewPurchaseService creates a new PurchaseServiceImpl
func NewPurchaseService(purchaseRepo repositories.PurchaseRepository, memberRepo repositories.MemberRepository) *PurchaseServiceImpl {
	return &PurchaseServiceImpl{
		purchaseRepo: purchaseRepo,
		memberRepo:   memberRepo,
	}
}

// RecordPurchase records one purchase and credits the member with the
// entries their spend earns. A purchase below the lowest entry bracket is
// still recorded but earns zero entries.
func (s *PurchaseServiceImpl) RecordPurchase(ctx context.Context, username, displayName, itemID, itemName string, amount float64) (*models.Purchase, error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if amount < 0 {
		return nil, fmt.Errorf("purchase amount cannot be negative: %.2f", amount)
	}

	entries := utils.CalculateEntries(amount)
	now := time.Now()

	purchase := &models.Purchase{
		Username:      username,
		ItemID:        itemID,
		ItemName:      itemName,
		Amount:        amount,
		Source:        models.PurchaseSourceManual,
		PurchasedAt:   now,
		EntriesEarned: entries,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		slog.Error("Failed to record purchase", "error", err, "username", username)
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	if err := s.memberRepo.IncrementEntries(ctx, username, entries, amount, now); err != nil {
		slog.Error("Failed to credit member entries", "error", err, "username", username, "entries", entries)
		return nil, fmt.Errorf("purchase recorded but entry credit failed: %w", err)
	}

	if displayName != "" {
		if member, err := s.memberRepo.FindByUsername(ctx, username); err == nil && member.DisplayName != displayName {
			member.DisplayName = displayName
			if err := s.memberRepo.Update(ctx, member); err != nil {
				slog.Warn("Failed to update member display name", "error", err, "username", username)
			}
		}
	}

	slog.Info("Purchase recorded", "username", username, "amount", amount, "entriesEarned", entries, "item", itemName)
	return purchase, nil
}

// GetPurchasesByMember retrieves a member's purchases with pagination
func (s *PurchaseServiceImpl) GetPurchasesByMember(ctx context.Context, username string, page, limit int) ([]*models.Purchase, error) {
	username = utils.NormalizeUsername(username)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.purchaseRepo.FindByUsername(ctx, username, page, limit)
}
