package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
	"github.com/giftwheel/giveaway-backend/internal/utils"
	"github.com/giftwheel/giveaway-backend/internal/wheel"
	"github.com/giftwheel/giveaway-backend/pkg/chatgateway"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure GiveawayServiceImpl implements GiveawayService
var _ GiveawayService = (*GiveawayServiceImpl)(nil)

// GiveawayServiceImpl handles the giveaway lifecycle: creation, the spin
// (selection + animation), winner commit, and chat delivery.
type GiveawayServiceImpl struct {
	giveawayRepo     repositories.GiveawayRepository
	memberRepo       repositories.MemberRepository
	winnerRepo       repositories.WinnerRepository
	announcementRepo repositories.AnnouncementRepository
	auditRepo        repositories.SpinAuditRepository
	settingsRepo     repositories.SystemSettingsRepository
	catalogService   CatalogService
	engine           SpinEngine
	chat             chatgateway.Gateway
	wheelCfg         config.WheelConfig
	spinTimeout      time.Duration

	// inflight tracks giveaways with a spin generating right now. A second
	// spin request for the same giveaway is rejected, not queued.
	mu       sync.Mutex
	inflight map[primitive.ObjectID]struct{}
}

// NewGiveawayService creates a new GiveawayServiceImpl
func NewGiveawayService(
	giveawayRepo repositories.GiveawayRepository,
	memberRepo repositories.MemberRepository,
	winnerRepo repositories.WinnerRepository,
	announcementRepo repositories.AnnouncementRepository,
	auditRepo repositories.SpinAuditRepository,
	settingsRepo repositories.SystemSettingsRepository,
	catalogService CatalogService,
	engine SpinEngine,
	chat chatgateway.Gateway,
	wheelCfg config.WheelConfig,
) *GiveawayServiceImpl {
	timeout := time.Duration(wheelCfg.SpinTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GiveawayServiceImpl{
		giveawayRepo:     giveawayRepo,
		memberRepo:       memberRepo,
		winnerRepo:       winnerRepo,
		announcementRepo: announcementRepo,
		auditRepo:        auditRepo,
		settingsRepo:     settingsRepo,
		catalogService:   catalogService,
		engine:           engine,
		chat:             chat,
		wheelCfg:         wheelCfg,
		spinTimeout:      timeout,
		inflight:         make(map[primitive.ObjectID]struct{}),
	}
}

// CreateGiveaway creates a new OPEN giveaway for a catalog item. The prize
// price is estimated at creation time and frozen on the document.
func (s *GiveawayServiceImpl) CreateGiveaway(ctx context.Context, title, itemID, createdBy string) (*models.Giveaway, error) {
	if title == "" {
		return nil, errors.New("giveaway title is required")
	}

	prize := models.Prize{ItemID: itemID}
	if itemID != "" {
		estimate, err := s.catalogService.EstimatePrice(ctx, itemID)
		if err != nil {
			slog.Warn("Failed to estimate prize price, creating giveaway without one", "error", err, "itemId", itemID)
		} else {
			prize.EstimatedPrice = estimate.Price
			prize.Currency = estimate.Currency
		}
		items, err := s.catalogService.Search(ctx, itemID)
		if err == nil {
			for _, item := range items {
				if item.ItemID == itemID {
					prize.ItemName = item.Name
					break
				}
			}
		}
	}

	giveaway := &models.Giveaway{
		Title:     title,
		Prize:     prize,
		Status:    models.GiveawayStatusOpen,
		CreatedBy: createdBy,
	}
	if err := s.giveawayRepo.Create(ctx, giveaway); err != nil {
		slog.Error("Failed to create giveaway", "error", err, "title", title)
		return nil, fmt.Errorf("failed to save giveaway: %w", err)
	}

	slog.Info("Giveaway created", "giveawayId", giveaway.ID, "title", title, "itemId", itemID)
	return giveaway, nil
}

// GetGiveawayByID retrieves a giveaway by its ID
func (s *GiveawayServiceImpl) GetGiveawayByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error) {
	return s.giveawayRepo.FindByID(ctx, id)
}

// GetGiveaways retrieves giveaways with pagination
func (s *GiveawayServiceImpl) GetGiveaways(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.giveawayRepo.FindAll(ctx, page, limit)
}

// GetEntryPool returns the current pool snapshot: every member holding at
// least one entry, ordered by username.
func (s *GiveawayServiceImpl) GetEntryPool(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.FindWithEntries(ctx)
}

// GetGiveawayResult returns the committed winner record, including the
// rendered asset bytes.
func (s *GiveawayServiceImpl) GetGiveawayResult(ctx context.Context, id primitive.ObjectID) (*models.Winner, error) {
	return s.winnerRepo.FindByGiveawayID(ctx, id)
}

// spinOutcome carries the engine result across the generation goroutine
type spinOutcome struct {
	result *wheel.AnimationResult
	err    error
}

// SpinGiveaway runs the full spin: snapshot the entry pool, draw a weighted
// winner, render the wheel animation, commit the winner exactly once, and
// deliver the announcement. Selection and rendering happen on a background
// goroutine whose completion this call awaits under a timeout; on timeout
// the animated result is discarded and a static render is committed instead.
//
// preChosenUsername, when non-empty, skips selection and validates that
// username against the pool. A second concurrent spin of the same giveaway
// is rejected with ErrSpinInFlight, and a giveaway with a committed winner
// is never re-spun.
func (s *GiveawayServiceImpl) SpinGiveaway(ctx context.Context, id primitive.ObjectID, preChosenUsername, triggeredBy string) (*models.Giveaway, error) {
	requestID := uuid.NewString()
	start := time.Now()

	if !s.acquire(id) {
		s.audit(ctx, &models.SpinAudit{
			RequestID:   requestID,
			GiveawayID:  id,
			TriggeredBy: triggeredBy,
			Outcome:     models.SpinOutcomeRejectedInFlight,
		})
		return nil, ErrSpinInFlight
	}
	defer s.release(id)

	// Claim the giveaway before any expensive work. The CAS refuses
	// giveaways that are not OPEN, which covers both completed giveaways
	// and ones another process is spinning.
	if err := s.giveawayRepo.MarkSpinning(ctx, id, requestID); err != nil {
		if errors.Is(err, repositories.ErrGiveawayConflict) {
			s.audit(ctx, &models.SpinAudit{
				RequestID:   requestID,
				GiveawayID:  id,
				TriggeredBy: triggeredBy,
				Outcome:     models.SpinOutcomeRejectedHasWinner,
			})
			return nil, ErrGiveawayNotOpen
		}
		return nil, fmt.Errorf("failed to claim giveaway for spinning: %w", err)
	}

	preChosen := utils.NormalizeUsername(preChosenUsername)
	result, err := s.generate(ctx, id, preChosen)
	if err != nil {
		// A partial result still names the drawn winner when only the
		// encoding failed; the audit trail keeps that name.
		drawn := ""
		if result != nil {
			drawn = result.Winner.ParticipantID
		}
		s.failSpin(ctx, id, requestID, triggeredBy, drawn, err)
		return nil, err
	}

	winner := &models.WinnerSummary{
		Username:       result.Winner.ParticipantID,
		Label:          result.Winner.Label,
		Entries:        result.Winner.Entries,
		FillColor:      result.Winner.FillColor,
		WinProbability: result.Winner.WinProbability,
	}
	commit := models.SpinCommit{
		RequestID:         requestID,
		TotalParticipants: result.Stats.ParticipantCount,
		TotalEntries:      result.Stats.TotalEntries,
		Static:            result.Static,
		SpinEndTime:       time.Now(),
	}

	// Re-check just before writing: if a winner landed concurrently, this
	// selection is discarded. At most one winner is ever committed.
	if err := s.giveawayRepo.CommitWinner(ctx, id, winner, commit); err != nil {
		if errors.Is(err, repositories.ErrGiveawayConflict) {
			slog.Warn("Winner committed concurrently, discarding this selection",
				"giveawayId", id, "requestId", requestID, "discardedWinner", winner.Username)
			s.audit(ctx, &models.SpinAudit{
				RequestID:   requestID,
				GiveawayID:  id,
				TriggeredBy: triggeredBy,
				Outcome:     models.SpinOutcomeRejectedHasWinner,
			})
			return nil, ErrGiveawayNotOpen
		}
		// The winner was selected but could not be committed. Surface the
		// id in the error so it is not silently lost.
		return nil, fmt.Errorf("failed to commit winner %q: %w", winner.Username, err)
	}

	record := &models.Winner{
		GiveawayID:       id,
		Username:         result.Winner.ParticipantID,
		DisplayName:      result.Winner.Label,
		Entries:          result.Winner.Entries,
		WinProbability:   result.Winner.WinProbability,
		FillColor:        result.Winner.FillColor,
		WinDate:          time.Now(),
		Asset:            result.Asset,
		AssetContentType: result.ContentType,
		AssetStatic:      result.Static,
		ClaimStatus:      models.ClaimStatusPending,
	}
	if err := s.winnerRepo.Create(ctx, record); err != nil {
		// The commit already happened; log loudly but do not undo it.
		slog.Error("Failed to persist winner record after commit", "error", err, "giveawayId", id, "winner", winner.Username)
	}

	outcome := models.SpinOutcomeCompleted
	if result.Static {
		outcome = models.SpinOutcomeStaticFallback
	}
	s.audit(ctx, &models.SpinAudit{
		RequestID:      requestID,
		GiveawayID:     id,
		TriggeredBy:    triggeredBy,
		Outcome:        outcome,
		WinnerUsername: winner.Username,
		Participants:   result.Stats.ParticipantCount,
		TotalEntries:   result.Stats.TotalEntries,
		FrameCount:     result.Stats.SpinFrameCount + result.Stats.CelebrationFrameCount,
		Static:         result.Static,
		DurationMillis: time.Since(start).Milliseconds(),
	})

	giveaway, err := s.giveawayRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("winner committed but giveaway reload failed: %w", err)
	}

	// Delivery is best effort: a failed announcement never loses the
	// committed winner.
	s.announce(ctx, giveaway, result)

	slog.Info("Giveaway spin completed",
		"giveawayId", id, "requestId", requestID, "winner", winner.Username,
		"entries", winner.Entries, "probability", winner.WinProbability,
		"static", result.Static, "durationMs", time.Since(start).Milliseconds())
	return giveaway, nil
}

// generate snapshots the entry pool and runs the engine off the request
// path, awaiting completion under the spin timeout.
func (s *GiveawayServiceImpl) generate(ctx context.Context, id primitive.ObjectID, preChosen string) (*wheel.AnimationResult, error) {
	members, err := s.memberRepo.FindWithEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot entry pool: %w", err)
	}

	pool := make(wheel.Pool, 0, len(members))
	for _, m := range members {
		pool = append(pool, wheel.Entry{
			ParticipantID: m.Username,
			Label:         m.Label(),
			Entries:       m.Entries,
		})
	}
	opts := s.wheelOptions(ctx)

	genCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomeCh := make(chan spinOutcome, 1)
	go func() {
		var res *wheel.AnimationResult
		var err error
		if preChosen != "" {
			res, err = s.engine.SpinPreChosen(genCtx, pool, opts, preChosen)
		} else {
			res, err = s.engine.Spin(genCtx, pool, opts)
		}
		outcomeCh <- spinOutcome{result: res, err: err}
	}()

	timer := time.NewTimer(s.spinTimeout)
	defer timer.Stop()

	select {
	case out := <-outcomeCh:
		return out.result, out.err
	case <-timer.C:
		cancel()
		slog.Warn("Animation generation timed out, falling back to static render",
			"giveawayId", id, "timeout", s.spinTimeout)
		return s.engine.StaticResult(pool, opts, preChosen)
	}
}

// wheelOptions merges the runtime system settings over the configured
// wheel defaults into one immutable options bundle for this spin.
func (s *GiveawayServiceImpl) wheelOptions(ctx context.Context) wheel.Options {
	opts := wheel.Options{
		WheelSize:                 s.wheelCfg.Size,
		PaletteColors:             s.wheelCfg.PaletteColors,
		FontPath:                  s.wheelCfg.FontPath,
		FrameRate:                 s.wheelCfg.FrameRate,
		SpinRevolutions:           s.wheelCfg.SpinRevolutions,
		SpinDurationFrames:        s.wheelCfg.SpinDurationFrames,
		CelebrationDurationFrames: s.wheelCfg.CelebrationDurationFrames,
		CelebrationLoops:          s.wheelCfg.CelebrationLoops,
		MaxFrames:                 s.wheelCfg.MaxFrames,
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		slog.Warn("Failed to load system settings, using configured wheel defaults", "error", err)
		return opts
	}

	w := settings.Wheel
	if w.WheelSize > 0 {
		opts.WheelSize = w.WheelSize
	}
	if len(w.PaletteColors) > 0 {
		opts.PaletteColors = w.PaletteColors
	}
	if w.FontPath != "" {
		opts.FontPath = w.FontPath
	}
	if w.FrameRate > 0 {
		opts.FrameRate = w.FrameRate
	}
	if w.SpinRevolutions > 0 {
		opts.SpinRevolutions = w.SpinRevolutions
	}
	if w.SpinDurationFrames > 0 {
		opts.SpinDurationFrames = w.SpinDurationFrames
	}
	if w.CelebrationDurationFrames > 0 {
		opts.CelebrationDurationFrames = w.CelebrationDurationFrames
	}
	if w.CelebrationLoops > 0 {
		opts.CelebrationLoops = w.CelebrationLoops
	}
	if w.MaxFrames > 0 {
		opts.MaxFrames = w.MaxFrames
	}
	return opts
}

// failSpin reopens the giveaway and records the failed attempt.
// drawnUsername is the winner name a failed generation still produced, if
// any; the selection is void once the giveaway reopens, but the audit
// record keeps it.
func (s *GiveawayServiceImpl) failSpin(ctx context.Context, id primitive.ObjectID, requestID, triggeredBy, drawnUsername string, spinErr error) {
	slog.Error("Giveaway spin failed", "error", spinErr, "giveawayId", id, "requestId", requestID, "drawnWinner", drawnUsername)
	if err := s.giveawayRepo.Reopen(ctx, id, spinErr.Error()); err != nil {
		slog.Error("Failed to reopen giveaway after failed spin", "error", err, "giveawayId", id)
	}
	s.audit(ctx, &models.SpinAudit{
		RequestID:      requestID,
		GiveawayID:     id,
		TriggeredBy:    triggeredBy,
		Outcome:        models.SpinOutcomeFailed,
		WinnerUsername: drawnUsername,
		ErrorMessage:   spinErr.Error(),
	})
}

// announce posts the winner to the community chat with the wheel asset
// attached and records the delivery attempt.
func (s *GiveawayServiceImpl) announce(ctx context.Context, giveaway *models.Giveaway, result *wheel.AnimationResult) {
	winner := giveaway.Winner
	if winner == nil {
		return
	}

	content := fmt.Sprintf("🎉 **%s** — the wheel has spoken! **%s** wins with %d entries (%.1f%% chance). Congratulations!",
		giveaway.Title, winner.Label, winner.Entries, winner.WinProbability*100)
	if giveaway.Prize.ItemName != "" {
		content = fmt.Sprintf("%s Prize: %s", content, giveaway.Prize.ItemName)
	}

	filename := "wheel.gif"
	if result.Static {
		filename = "wheel.png"
	}

	gateway := "WEBHOOK"
	if _, ok := s.chat.(*chatgateway.MockGateway); ok {
		gateway = "MOCK"
	}
	announcement := &models.Announcement{
		GiveawayID:     giveaway.ID,
		Content:        content,
		Status:         models.AnnouncementStatusPending,
		Gateway:        gateway,
		AttachmentType: result.ContentType,
		AttachmentSize: len(result.Asset),
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		slog.Error("Failed to record announcement", "error", err, "giveawayId", giveaway.ID)
	}

	messageID, err := s.chat.PostAttachment(content, filename, result.Asset, result.ContentType)
	if err != nil {
		slog.Error("Failed to deliver winner announcement", "error", err, "giveawayId", giveaway.ID)
		if !announcement.ID.IsZero() {
			if uerr := s.announcementRepo.UpdateStatus(ctx, announcement.ID, models.AnnouncementStatusFailed, "", err.Error()); uerr != nil {
				slog.Error("Failed to update announcement status", "error", uerr, "announcementId", announcement.ID)
			}
		}
		return
	}
	if !announcement.ID.IsZero() {
		if uerr := s.announcementRepo.UpdateStatus(ctx, announcement.ID, models.AnnouncementStatusSent, messageID, ""); uerr != nil {
			slog.Error("Failed to update announcement status", "error", uerr, "announcementId", announcement.ID)
		}
	}
	slog.Info("Winner announcement delivered", "giveawayId", giveaway.ID, "messageId", messageID)
}

// audit writes a spin audit record; failures are logged, never surfaced
func (s *GiveawayServiceImpl) audit(ctx context.Context, record *models.SpinAudit) {
	if err := s.auditRepo.Create(ctx, record); err != nil {
		slog.Error("Failed to write spin audit record", "error", err, "giveawayId", record.GiveawayID, "outcome", record.Outcome)
	}
}

func (s *GiveawayServiceImpl) acquire(id primitive.ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *GiveawayServiceImpl) release(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
