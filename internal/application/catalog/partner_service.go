package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/worker"
)

// PartnerService manages a partner's shop: feed imports and the
// accepting-orders switch.
type PartnerService struct {
	shopRepo      catalog.ShopRepository
	importService *ImportService
	queue         Queue
	logger        *zap.Logger
}

// NewPartnerService creates a partner service
func NewPartnerService(
	shopRepo catalog.ShopRepository,
	importService *ImportService,
	queue Queue,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		shopRepo:      shopRepo,
		importService: importService,
		queue:         queue,
		logger:        logger.Named("partner"),
	}
}

// RunImport fetches and applies the partner's feed synchronously,
// returning the import counters.
func (s *PartnerService) RunImport(ctx context.Context, feedURL string, ownerID uuid.UUID) (*catalog.ImportStats, error) {
	return s.importService.ImportCatalog(ctx, feedURL, ownerID)
}

// QueueImport validates the feed URL and schedules the import on the
// background queue. The per-owner lock still guards the actual run, so a
// queued import racing a synchronous one is refused rather than interleaved.
func (s *PartnerService) QueueImport(ctx context.Context, feedURL string, ownerID uuid.UUID) error {
	if err := s.importService.ValidateFeedURL(feedURL); err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		if _, err := s.importService.ImportCatalog(jobCtx, feedURL, ownerID); err != nil {
			s.logger.Error("background import failed",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err),
			)
		}
	}
	if err := s.queue.Submit(worker.Job(job)); err != nil {
		return shared.NewDomainError("QUEUE_FULL", "Сервис импорта перегружен, попробуйте позже")
	}
	return nil
}

// GetState returns the partner's shop record
func (s *PartnerService) GetState(ctx context.Context, ownerID uuid.UUID) (*ShopDTO, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dto := ShopToDTO(shop)
	return &dto, nil
}

// SetState switches the partner's shop on or off. The raw value follows
// the usual boolean spellings: on/off, true/false, yes/no, 1/0.
func (s *PartnerService) SetState(ctx context.Context, ownerID uuid.UUID, raw string) error {
	state, err := parseBool(raw)
	if err != nil {
		return err
	}
	return s.shopRepo.UpdateState(ctx, ownerID, state)
}

// parseBool accepts the boolean spellings form submissions commonly use.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, shared.ErrInvalidState
	}
}
