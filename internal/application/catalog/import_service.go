package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/feed"
)

// ImportService applies partner price-list feeds to the catalog store.
type ImportService struct {
	importRepo catalog.ImportRepository
	fetcher    feed.Fetcher
	lock       ImportLock
	lockTTL    time.Duration
	storage    ObjectStorage
	logger     *zap.Logger
}

// NewImportService creates an import service
func NewImportService(
	importRepo catalog.ImportRepository,
	fetcher feed.Fetcher,
	lock ImportLock,
	lockTTL time.Duration,
	storage ObjectStorage,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		importRepo: importRepo,
		fetcher:    fetcher,
		lock:       lock,
		lockTTL:    lockTTL,
		storage:    storage,
		logger:     logger.Named("import"),
	}
}

// ValidateFeedURL checks the feed URL shape without fetching it.
func (s *ImportService) ValidateFeedURL(feedURL string) error {
	return feed.ValidateURL(feedURL)
}

// ImportCatalog fetches the feed at feedURL and replaces the owner's shop
// catalog with its contents. Concurrent imports for the same owner are
// refused; the delete+recreate itself is transactional in the repository.
func (s *ImportService) ImportCatalog(ctx context.Context, feedURL string, ownerID uuid.UUID) (*catalog.ImportStats, error) {
	if err := feed.ValidateURL(feedURL); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := feed.Parse(body)
	if err != nil {
		return nil, err
	}

	lockKey := ownerID.String()
	acquired, err := s.lock.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("import lock: %w", err)
	}
	if !acquired {
		return nil, shared.ErrImportInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn("failed to release import lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	snapshot := parsed.Snapshot(ownerID)
	stats, err := s.importRepo.ReplaceShopCatalog(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	s.uploadPhotos(ctx, stats.ShopID, snapshot.Offers)

	s.logger.Info("catalog imported",
		zap.String("shop", snapshot.ShopName),
		zap.Int("offers_created", stats.OffersCreated),
		zap.Int("offers_deleted", stats.OffersDeleted),
	)
	return stats, nil
}

// uploadPhotos downloads feed photos into object storage. Photo failures
// never fail the import; the offer simply keeps an empty photo key.
func (s *ImportService) uploadPhotos(ctx context.Context, shopID uuid.UUID, offers []catalog.OfferSnapshot) {
	for _, offer := range offers {
		if offer.PhotoURL == "" {
			continue
		}

		data, err := s.fetcher.Fetch(ctx, offer.PhotoURL)
		if err != nil {
			s.logger.Warn("failed to download product photo",
				zap.Int64("external_id", offer.ExternalID),
				zap.Error(err),
			)
			continue
		}

		key := fmt.Sprintf("products/%s/%d", shopID, offer.ExternalID)
		contentType := http.DetectContentType(data)
		if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
			s.logger.Warn("failed to store product photo",
				zap.Int64("external_id", offer.ExternalID),
				zap.Error(err),
			)
			continue
		}

		if err := s.importRepo.SetOfferPhotoKey(ctx, shopID, offer.ExternalID, key); err != nil {
			s.logger.Warn("failed to record product photo key",
				zap.Int64("external_id", offer.ExternalID),
				zap.Error(err),
			)
		}
	}
}
