package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/mapping"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/repository"
)

// syncService is the concrete implementation of SyncService
type syncService struct {
	workshops repository.WorkshopRepository
	products  ProductSource
	now       func() time.Time
	log       zerolog.Logger
}

// newSyncService creates a new SyncService
func newSyncService(workshops repository.WorkshopRepository, products ProductSource, log zerolog.Logger) *syncService {
	return &syncService{
		workshops: workshops,
		products:  products,
		now:       time.Now,
		log:       log.With().Str("service", "sync").Logger(),
	}
}

// Run fetches the collection and upserts one workshop per product, in order.
// The run is detached from ctx cancellation: once products are fetched every
// one of them is attempted.
func (s *syncService) Run(ctx context.Context, collectionID string) (*models.SyncResult, error) {
	ctx = context.WithoutCancel(ctx)
	startTime := time.Now()

	s.log.Info().Str("collection_id", collectionID).Msg("Starting Shopify sync")

	products, err := s.products.ListCollectionProducts(ctx, collectionID)
	if err != nil {
		s.log.Error().Err(err).Str("collection_id", collectionID).Msg("Sync failed")
		return nil, err
	}

	result := models.NewSyncResult()
	for _, p := range products {
		created, err := s.syncProduct(ctx, p)
		if err != nil {
			s.log.Warn().
				Err(err).
				Int64("product_id", p.ID).
				Str("product", p.Title).
				Msg("Error syncing product")
			result.AddError(p.Title, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.log.Info().
		Str("collection_id", collectionID).
		Int("products", len(products)).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", len(result.Errors)).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("Sync complete")

	return result, nil
}

// syncProduct writes a single product. A panic is turned into an error so
// one bad product cannot stop the run.
func (s *syncService) syncProduct(ctx context.Context, p catalog.Product) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	w := mapping.ToWorkshop(p, s.now())
	created, err = s.workshops.UpsertByShopifyProductID(ctx, w)
	if err != nil {
		return false, err
	}

	s.log.Debug().
		Int64("product_id", p.ID).
		Str("workshop_id", w.ID).
		Bool("created", created).
		Msg("Synced product")
	return created, nil
}
