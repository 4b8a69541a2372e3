package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/models"
)

const workshopColumns = `id, shopify_product_id, title, description, image_url, difficulty, duration, created_at, updated_at`

// workshopRepo is the concrete implementation of WorkshopRepository
type workshopRepo struct {
	db *database.DB
}

// NewWorkshopRepo creates a new workshop repository
func NewWorkshopRepo(db *database.DB) WorkshopRepository {
	return &workshopRepo{db: db}
}

// Create inserts a new workshop
func (r *workshopRepo) Create(ctx context.Context, w *models.Workshop) error {
	query := `
		INSERT INTO workshops (` + workshopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, nullInt64(w.ShopifyProductID), w.Title, w.Description, nullString(w.ImageURL),
		string(w.Difficulty), w.Duration, w.CreatedAt, w.UpdatedAt,
	)
	return err
}

// Update overwrites the editable fields of a workshop by ID.
// shopify_product_id is never touched here.
func (r *workshopRepo) Update(ctx context.Context, w *models.Workshop) (bool, error) {
	query := `
		UPDATE workshops SET
			title = $1, description = $2, image_url = $3, difficulty = $4, duration = $5, updated_at = $6
		WHERE id = $7
		RETURNING shopify_product_id, created_at
	`
	var productID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query,
		w.Title, w.Description, nullString(w.ImageURL), string(w.Difficulty), w.Duration,
		w.UpdatedAt, w.ID,
	).Scan(&productID, &w.CreatedAt)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	w.ShopifyProductID = int64Ptr(productID)
	return true, nil
}

// Delete removes a workshop; resources and updates cascade
func (r *workshopRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM workshops WHERE id = $1", id)
	if isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetByID retrieves a workshop by ID
func (r *workshopRepo) GetByID(ctx context.Context, id string) (*models.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE id = $1`

	w, err := scanWorkshop(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetByShopifyProductID retrieves the workshop imported from a catalog product
func (r *workshopRepo) GetByShopifyProductID(ctx context.Context, productID int64) (*models.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE shopify_product_id = $1`

	w, err := scanWorkshop(r.db.QueryRowContext(ctx, query, productID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// UpsertByShopifyProductID inserts or updates a workshop keyed on its catalog product id.
// xmax is zero only for freshly inserted tuples, which tells created from updated
// without a separate lookup.
func (r *workshopRepo) UpsertByShopifyProductID(ctx context.Context, w *models.Workshop) (bool, error) {
	query := `
		INSERT INTO workshops (` + workshopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (shopify_product_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			difficulty = EXCLUDED.difficulty,
			duration = EXCLUDED.duration,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		w.ID, nullInt64(w.ShopifyProductID), w.Title, w.Description, nullString(w.ImageURL),
		string(w.Difficulty), w.Duration, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID, &w.CreatedAt, &inserted)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// List returns a page of workshops, newest first
func (r *workshopRepo) List(ctx context.Context, limit, offset int) ([]*models.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workshops := make([]*models.Workshop, 0, limit)
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, err
		}
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

// Count returns the total number of workshops
func (r *workshopRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workshops").Scan(&count)
	return count, err
}

// StreamAll streams all workshops for export
func (r *workshopRepo) StreamAll(ctx context.Context, callback func(*models.Workshop) error) error {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return err
		}
		if err := callback(w); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanWorkshop(row rowScanner) (*models.Workshop, error) {
	var w models.Workshop
	var productID sql.NullInt64
	var imageURL sql.NullString
	var difficulty string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&w.ID, &productID, &w.Title, &w.Description, &imageURL,
		&difficulty, &w.Duration, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.ShopifyProductID = int64Ptr(productID)
	w.ImageURL = stringPtr(imageURL)
	w.Difficulty = models.Difficulty(difficulty)
	w.CreatedAt = createdAt
	w.UpdatedAt = updatedAt
	return &w, nil
}
