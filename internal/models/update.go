package models

import (
	"time"
)

// Update is a dated progress note posted on a workshop
type Update struct {
	ID         string    `json:"id" db:"id"`
	WorkshopID string    `json:"workshop_id" db:"workshop_id"`
	Comment    string    `json:"comment" db:"comment"`
	ImageURL   *string   `json:"image_url" db:"image_url"`
	AuthorName *string   `json:"author_name" db:"author_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateInput is the editable part of an update
type UpdateInput struct {
	Comment    string `json:"comment"`
	ImageURL   string `json:"image_url"`
	AuthorName string `json:"author_name"`
}
