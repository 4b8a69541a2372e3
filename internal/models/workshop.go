package models

import (
	"time"
)

// Difficulty classifies a workshop
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// ValidDifficulties defines allowed workshop difficulties
var ValidDifficulties = map[Difficulty]bool{
	DifficultyBeginner:     true,
	DifficultyIntermediate: true,
	DifficultyAdvanced:     true,
}

// Workshop represents a workshop in the system.
// ShopifyProductID is nil for workshops created by hand.
type Workshop struct {
	ID               string     `json:"id" db:"id"`
	ShopifyProductID *int64     `json:"shopify_product_id" db:"shopify_product_id"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	ImageURL         *string    `json:"image_url" db:"image_url"`
	Difficulty       Difficulty `json:"difficulty" db:"difficulty"`
	Duration         string     `json:"duration" db:"duration"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// WorkshopInput is the editable part of a workshop
type WorkshopInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Duration    string     `json:"duration"`
	ImageURL    string     `json:"image_url"`
}

// WorkshopList is a page of workshops
type WorkshopList struct {
	Workshops []*Workshop `json:"workshops"`
	Total     int         `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}

// NullableString returns nil for blank strings
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
