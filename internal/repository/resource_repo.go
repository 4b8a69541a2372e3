package repository

import (
	"context"
	"database/sql"

	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/models"
)

const resourceColumns = `id, workshop_id, title, type, url, video_url, description, thumbnail_url, display_order, created_at`

// resourceRepo is the concrete implementation of ResourceRepository
type resourceRepo struct {
	db *database.DB
}

// NewResourceRepo creates a new resource repository
func NewResourceRepo(db *database.DB) ResourceRepository {
	return &resourceRepo{db: db}
}

// Create inserts a new resource
func (r *resourceRepo) Create(ctx context.Context, res *models.Resource) error {
	query := `
		INSERT INTO workshop_resources (` + resourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.WorkshopID, res.Title, string(res.Type),
		nullString(res.URL), nullString(res.VideoURL), nullString(res.Description), nullString(res.ThumbnailURL),
		res.DisplayOrder, res.CreatedAt,
	)
	return err
}

// Update overwrites a resource scoped to its workshop
func (r *resourceRepo) Update(ctx context.Context, res *models.Resource) (bool, error) {
	query := `
		UPDATE workshop_resources SET
			title = $1, type = $2, url = $3, video_url = $4, description = $5,
			thumbnail_url = $6, display_order = $7
		WHERE id = $8 AND workshop_id = $9
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		res.Title, string(res.Type),
		nullString(res.URL), nullString(res.VideoURL), nullString(res.Description), nullString(res.ThumbnailURL),
		res.DisplayOrder, res.ID, res.WorkshopID,
	).Scan(&res.CreatedAt)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a resource scoped to its workshop
func (r *resourceRepo) Delete(ctx context.Context, workshopID, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM workshop_resources WHERE id = $1 AND workshop_id = $2", id, workshopID)
	if isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetByID retrieves a resource scoped to its workshop
func (r *resourceRepo) GetByID(ctx context.Context, workshopID, id string) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM workshop_resources WHERE id = $1 AND workshop_id = $2`

	res, err := scanResource(r.db.QueryRowContext(ctx, query, id, workshopID))
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByWorkshop returns the resources of a workshop in display order
func (r *resourceRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Resource, error) {
	query := `
		SELECT ` + resourceColumns + ` FROM workshop_resources
		WHERE workshop_id = $1
		ORDER BY display_order ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Count returns the total number of resources
func (r *resourceRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workshop_resources").Scan(&count)
	return count, err
}

func scanResource(row rowScanner) (*models.Resource, error) {
	var res models.Resource
	var resourceType string
	var url, videoURL, description, thumbnailURL sql.NullString

	err := row.Scan(
		&res.ID, &res.WorkshopID, &res.Title, &resourceType,
		&url, &videoURL, &description, &thumbnailURL,
		&res.DisplayOrder, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Type = models.ResourceType(resourceType)
	res.URL = stringPtr(url)
	res.VideoURL = stringPtr(videoURL)
	res.Description = stringPtr(description)
	res.ThumbnailURL = stringPtr(thumbnailURL)
	return &res, nil
}
