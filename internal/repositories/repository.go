package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrGiveawayConflict is returned by the compare-and-set giveaway
// transitions when the document is no longer in the expected state, e.g. a
// winner was committed by a concurrent spin.
var ErrGiveawayConflict = errors.New("giveaway is not in the expected state")

// MemberRepository defines the interface for community member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByUsername(ctx context.Context, username string) (*models.Member, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindWithEntries(ctx context.Context) ([]*models.Member, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	IncrementEntries(ctx context.Context, username string, entries int, amount float64, purchasedAt time.Time) error
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error)
	FindByUsername(ctx context.Context, username string, page, limit int) ([]*models.Purchase, error)
	FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Purchase, error)
	FindAll(ctx context.Context) ([]*models.Purchase, error)
	Count(ctx context.Context) (int64, error)
}

// GiveawayRepository defines the interface for giveaway data operations.
// MarkSpinning and CommitWinner are compare-and-set transitions: they only
// succeed while the document is still in the expected prior state and return
// ErrGiveawayConflict otherwise, so at most one winner is ever committed.
type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *models.Giveaway) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error)
	FindByStatus(ctx context.Context, status models.GiveawayStatus) ([]*models.Giveaway, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error)
	Update(ctx context.Context, giveaway *models.Giveaway) error
	MarkSpinning(ctx context.Context, id primitive.ObjectID, requestID string) error
	CommitWinner(ctx context.Context, id primitive.ObjectID, winner *models.WinnerSummary, commit models.SpinCommit) error
	Reopen(ctx context.Context, id primitive.ObjectID, errorMessage string) error
	Count(ctx context.Context) (int64, error)
}

// WinnerRepository defines the interface for committed winner records
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) (*models.Winner, error)
	FindByUsername(ctx context.Context, username string) ([]*models.Winner, error)
	FindAll(ctx context.Context) ([]*models.Winner, error)
	Update(ctx context.Context, winner *models.Winner) error
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Update(ctx context.Context, adminUser *models.AdminUser) error
	FindAll(ctx context.Context) ([]*models.AdminUser, error)
}

// AnnouncementRepository defines the interface for chat announcement records
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Announcement, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status, messageID, errorMessage string) error
}

// SpinAuditRepository defines the interface for spin attempt audit records
type SpinAuditRepository interface {
	Create(ctx context.Context, audit *models.SpinAudit) error
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.SpinAudit, error)
}

// SystemSettingsRepository defines the interface for system settings operations
type SystemSettingsRepository interface {
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SystemSettings) error
	UpdateChatGateway(ctx context.Context, gateway string, updatedBy string) error
}
