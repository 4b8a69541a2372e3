package repository

import (
	"context"
	"database/sql"

	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/models"
)

const updateColumns = `id, workshop_id, comment, image_url, author_name, created_at, updated_at`

// updateRepo is the concrete implementation of UpdateRepository
type updateRepo struct {
	db *database.DB
}

// NewUpdateRepo creates a new update repository
func NewUpdateRepo(db *database.DB) UpdateRepository {
	return &updateRepo{db: db}
}

// Create inserts a new update
func (r *updateRepo) Create(ctx context.Context, u *models.Update) error {
	query := `
		INSERT INTO workshop_updates (` + updateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.WorkshopID, u.Comment, nullString(u.ImageURL), nullString(u.AuthorName),
		u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// Update overwrites an update scoped to its workshop
func (r *updateRepo) Update(ctx context.Context, u *models.Update) (bool, error) {
	query := `
		UPDATE workshop_updates SET
			comment = $1, image_url = $2, author_name = $3, updated_at = $4
		WHERE id = $5 AND workshop_id = $6
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		u.Comment, nullString(u.ImageURL), nullString(u.AuthorName), u.UpdatedAt,
		u.ID, u.WorkshopID,
	).Scan(&u.CreatedAt)
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes an update scoped to its workshop
func (r *updateRepo) Delete(ctx context.Context, workshopID, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM workshop_updates WHERE id = $1 AND workshop_id = $2", id, workshopID)
	if isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetByID retrieves an update scoped to its workshop
func (r *updateRepo) GetByID(ctx context.Context, workshopID, id string) (*models.Update, error) {
	query := `SELECT ` + updateColumns + ` FROM workshop_updates WHERE id = $1 AND workshop_id = $2`

	u, err := scanUpdate(r.db.QueryRowContext(ctx, query, id, workshopID))
	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListByWorkshop returns the updates of a workshop, newest first
func (r *updateRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Update, error) {
	query := `
		SELECT ` + updateColumns + ` FROM workshop_updates
		WHERE workshop_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]*models.Update, 0)
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// Count returns the total number of updates
func (r *updateRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workshop_updates").Scan(&count)
	return count, err
}

func scanUpdate(row rowScanner) (*models.Update, error) {
	var u models.Update
	var imageURL, authorName sql.NullString

	err := row.Scan(&u.ID, &u.WorkshopID, &u.Comment, &imageURL, &authorName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.ImageURL = stringPtr(imageURL)
	u.AuthorName = stringPtr(authorName)
	return &u, nil
}
