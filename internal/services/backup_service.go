package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure BackupServiceImpl implements BackupService
var _ BackupService = (*BackupServiceImpl)(nil)

// BackupServiceImpl periodically exports the durable collections to
// timestamped JSON files.
type BackupServiceImpl struct {
	giveawayRepo repositories.GiveawayRepository
	memberRepo   repositories.MemberRepository
	purchaseRepo repositories.PurchaseRepository
	winnerRepo   repositories.WinnerRepository
	directory    string
	interval     time.Duration
}

// NewBackupService creates a new BackupServiceImpl
func NewBackupService(
	giveawayRepo repositories.GiveawayRepository,
	memberRepo repositories.MemberRepository,
	purchaseRepo repositories.PurchaseRepository,
	winnerRepo repositories.WinnerRepository,
	cfg config.BackupConfig,
) *BackupServiceImpl {
	interval := time.Duration(cfg.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &BackupServiceImpl{
		giveawayRepo: giveawayRepo,
		memberRepo:   memberRepo,
		purchaseRepo: purchaseRepo,
		winnerRepo:   winnerRepo,
		directory:    cfg.Directory,
		interval:     interval,
	}
}

// Start runs the periodic export loop until the context is cancelled.
// Intended to be launched as a goroutine from main.
func (s *BackupServiceImpl) Start(ctx context.Context) {
	slog.Info("Backup scheduler started", "interval", s.interval, "directory", s.directory)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Backup scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunBackup(ctx); err != nil {
				slog.Error("Scheduled backup failed", "error", err)
			}
		}
	}
}

// RunBackup exports every collection once and returns the document counts
// per collection.
func (s *BackupServiceImpl) RunBackup(ctx context.Context) (map[string]int, error) {
	stamp := time.Now().UTC().Format("20060102-150405")
	dir := filepath.Join(s.directory, stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	counts := make(map[string]int)

	giveaways, err := drainPages(func(page, limit int) ([]*models.Giveaway, error) {
		return s.giveawayRepo.FindAll(ctx, page, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export giveaways: %w", err)
	}
	if err := writeExport(dir, "giveaways.json", giveaways); err != nil {
		return nil, err
	}
	counts["giveaways"] = len(giveaways)

	members, err := drainPages(func(page, limit int) ([]*models.Member, error) {
		return s.memberRepo.FindAll(ctx, page, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export members: %w", err)
	}
	if err := writeExport(dir, "members.json", members); err != nil {
		return nil, err
	}
	counts["members"] = len(members)

	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export purchases: %w", err)
	}
	if err := writeExport(dir, "purchases.json", purchases); err != nil {
		return nil, err
	}
	counts["purchases"] = len(purchases)

	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export winners: %w", err)
	}
	if err := writeExport(dir, "winners.json", winners); err != nil {
		return nil, err
	}
	counts["winners"] = len(winners)

	slog.Info("Backup completed", "directory", dir,
		"giveaways", counts["giveaways"], "members", counts["members"],
		"purchases", counts["purchases"], "winners", counts["winners"])
	return counts, nil
}

const exportPageSize = 1000

// drainPages walks a paginated finder until a short page, so exports hold
// the whole collection no matter its size.
func drainPages[T any](fetch func(page, limit int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		batch, err := fetch(page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize {
			return all, nil
		}
	}
}

// writeExport marshals one collection to an indented JSON file
func writeExport(dir, filename string, data interface{}) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
