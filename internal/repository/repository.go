package repository

import (
	"context"

	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/models"
)

// WorkshopRepository defines the interface for workshop data operations
type WorkshopRepository interface {
	Create(ctx context.Context, workshop *models.Workshop) error
	Update(ctx context.Context, workshop *models.Workshop) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Workshop, error)
	GetByShopifyProductID(ctx context.Context, productID int64) (*models.Workshop, error)
	// UpsertByShopifyProductID inserts the workshop or overwrites the imported
	// fields of the row holding the same product id. It reports whether a new
	// row was created.
	UpsertByShopifyProductID(ctx context.Context, workshop *models.Workshop) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.Workshop, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Workshop) error) error
}

// ResourceRepository defines the interface for workshop resource data operations
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	Update(ctx context.Context, resource *models.Resource) (bool, error)
	Delete(ctx context.Context, workshopID, id string) (bool, error)
	GetByID(ctx context.Context, workshopID, id string) (*models.Resource, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Resource, error)
	Count(ctx context.Context) (int, error)
}

// UpdateRepository defines the interface for workshop update data operations
type UpdateRepository interface {
	Create(ctx context.Context, update *models.Update) error
	Update(ctx context.Context, update *models.Update) (bool, error)
	Delete(ctx context.Context, workshopID, id string) (bool, error)
	GetByID(ctx context.Context, workshopID, id string) (*models.Update, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Update, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Workshop WorkshopRepository
	Resource ResourceRepository
	Update   UpdateRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Workshop: NewWorkshopRepo(db),
		Resource: NewResourceRepo(db),
		Update:   NewUpdateRepo(db),
	}
}
