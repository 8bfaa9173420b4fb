package services

import (
	"context"
	"errors"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/wheel"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Spin rejection errors. Both mean the caller's request was refused before
// any selection happened, so nothing needs to be rolled back.
var (
	// ErrSpinInFlight is returned when a spin is requested for a giveaway
	// that already has one generating. Concurrent spins are rejected rather
	// than queued because only one result may ever be committed.
	ErrSpinInFlight = errors.New("a spin is already in flight for this giveaway")

	// ErrGiveawayNotOpen is returned when a spin is requested for a giveaway
	// that is not in the OPEN state, including completed giveaways whose
	// winner is already committed.
	ErrGiveawayNotOpen = errors.New("giveaway is not open for spinning")
)

// GiveawayService defines the interface for giveaway lifecycle operations
type GiveawayService interface {
	CreateGiveaway(ctx context.Context, title, itemID, createdBy string) (*models.Giveaway, error)
	GetGiveawayByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error)
	GetGiveaways(ctx context.Context, page, limit int) ([]*models.Giveaway, error)
	SpinGiveaway(ctx context.Context, id primitive.ObjectID, preChosenUsername, triggeredBy string) (*models.Giveaway, error)
	GetGiveawayResult(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	GetEntryPool(ctx context.Context) ([]*models.Member, error)
}

// PurchaseService defines the interface for purchase tracking operations
type PurchaseService interface {
	RecordPurchase(ctx context.Context, username, displayName, itemID, itemName string, amount float64) (*models.Purchase, error)
	GetPurchasesByMember(ctx context.Context, username string, page, limit int) ([]*models.Purchase, error)
}

// CatalogService defines the interface for cosmetics catalog lookups
type CatalogService interface {
	Search(ctx context.Context, query string) ([]models.CatalogItem, error)
	EstimatePrice(ctx context.Context, itemID string) (*models.PriceEstimate, error)
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}

// BackupService defines the interface for periodic JSON exports
type BackupService interface {
	RunBackup(ctx context.Context) (map[string]int, error)
	Start(ctx context.Context)
}

// SystemSettingsService defines the interface for system settings operations
type SystemSettingsService interface {
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SystemSettings) error
	UpdateChatGateway(ctx context.Context, gateway string, updatedBy string) error
}

// SpinEngine is the slice of the wheel engine the giveaway service uses.
// *wheel.Engine satisfies it; tests substitute fakes.
type SpinEngine interface {
	Spin(ctx context.Context, pool wheel.Pool, opts wheel.Options) (*wheel.AnimationResult, error)
	SpinPreChosen(ctx context.Context, pool wheel.Pool, opts wheel.Options, participantID string) (*wheel.AnimationResult, error)
	StaticResult(pool wheel.Pool, opts wheel.Options, preChosenID string) (*wheel.AnimationResult, error)
}

var _ SpinEngine = (*wheel.Engine)(nil)
