package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/repository"
	"github.com/workshop-admin-api/internal/storage"
)

// ErrNotFound is returned when a workshop or one of its children does not exist
var ErrNotFound = errors.New("not found")

// ProductSource lists the products of a catalog collection
type ProductSource interface {
	ListCollectionProducts(ctx context.Context, collectionID string) ([]catalog.Product, error)
}

// WorkshopService defines the interface for workshop content operations
type WorkshopService interface {
	ListWorkshops(ctx context.Context, limit, offset int) (*models.WorkshopList, error)
	GetWorkshop(ctx context.Context, id string) (*models.Workshop, error)
	// FindByShopifyProductID returns the imported workshop for a product as a
	// list of zero or one entries
	FindByShopifyProductID(ctx context.Context, productID int64) (*models.WorkshopList, error)
	CreateWorkshop(ctx context.Context, in *models.WorkshopInput) (*models.Workshop, error)
	UpdateWorkshop(ctx context.Context, id string, in *models.WorkshopInput) (*models.Workshop, error)
	DeleteWorkshop(ctx context.Context, id string) error

	ListResources(ctx context.Context, workshopID string) ([]*models.Resource, error)
	CreateResource(ctx context.Context, workshopID string, in *models.ResourceInput) (*models.Resource, error)
	UpdateResource(ctx context.Context, workshopID, id string, in *models.ResourceInput) (*models.Resource, error)
	DeleteResource(ctx context.Context, workshopID, id string) error

	ListUpdates(ctx context.Context, workshopID string) ([]*models.Update, error)
	CreateUpdate(ctx context.Context, workshopID string, in *models.UpdateInput) (*models.Update, error)
	UpdateUpdate(ctx context.Context, workshopID, id string, in *models.UpdateInput) (*models.Update, error)
	DeleteUpdate(ctx context.Context, workshopID, id string) error
}

// SyncService defines the interface for the catalog importer
type SyncService interface {
	// Run imports one collection. An error means nothing was imported;
	// per-product failures are reported in the result instead.
	Run(ctx context.Context, collectionID string) (*models.SyncResult, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamWorkshops(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// UploadService defines the interface for media uploads
type UploadService interface {
	Upload(ctx context.Context, bucket, filename string, size int64, r io.Reader) (*models.Upload, error)
}

// Services holds all service interfaces
type Services struct {
	Workshop WorkshopService
	Sync     SyncService
	Export   ExportService
	Upload   UploadService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, products ProductSource, store storage.Store, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Workshop: newWorkshopService(repos, log),
		Sync:     newSyncService(repos.Workshop, products, log),
		Export:   newExportService(repos, log),
		Upload:   newUploadService(store, cfg.Storage, log),
	}
}
