package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/catalog"
)

// photoURLExpiry bounds how long a presigned photo link stays valid.
const photoURLExpiry = time.Hour

// ProductService serves the buyer-facing offer search.
type ProductService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorage
	logger      *zap.Logger
}

// NewProductService creates a product service
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorage, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger.Named("products"),
	}
}

// SearchOffers returns offers from active shops matching the filter.
// Offers with a stored photo get a time-limited download URL attached.
func (s *ProductService) SearchOffers(ctx context.Context, filter catalog.ProductFilter) ([]OfferDTO, error) {
	offers, err := s.productRepo.SearchOffers(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]OfferDTO, 0, len(offers))
	for i := range offers {
		dto := OfferToDTO(&offers[i])
		dto.PhotoURL = s.photoURL(ctx, offers[i].PhotoKey)
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// GetOffer returns a single offer by id
func (s *ProductService) GetOffer(ctx context.Context, id uuid.UUID) (*OfferDTO, error) {
	offer, err := s.productRepo.FindOfferByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := OfferToDTO(offer)
	dto.PhotoURL = s.photoURL(ctx, offer.PhotoKey)
	return &dto, nil
}

func (s *ProductService) photoURL(ctx context.Context, key string) string {
	if key == "" || s.storage == nil {
		return ""
	}
	url, err := s.storage.DownloadURL(ctx, key, photoURLExpiry)
	if err != nil {
		s.logger.Warn("failed to presign photo url", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
