package models

import (
	"time"
)

// ResourceType is the kind of instructional material attached to a workshop
type ResourceType string

const (
	ResourceTypeVideo       ResourceType = "video"
	ResourceTypeImage       ResourceType = "image"
	ResourceTypeInstruction ResourceType = "instruction"
	ResourceTypePDF         ResourceType = "pdf"
)

// ValidResourceTypes defines allowed resource types
var ValidResourceTypes = map[ResourceType]bool{
	ResourceTypeVideo:       true,
	ResourceTypeImage:       true,
	ResourceTypeInstruction: true,
	ResourceTypePDF:         true,
}

// Resource is an instructional resource of a workshop
type Resource struct {
	ID           string       `json:"id" db:"id"`
	WorkshopID   string       `json:"workshop_id" db:"workshop_id"`
	Title        string       `json:"title" db:"title"`
	Type         ResourceType `json:"type" db:"type"`
	URL          *string      `json:"url" db:"url"`
	VideoURL     *string      `json:"video_url" db:"video_url"`
	Description  *string      `json:"description" db:"description"`
	ThumbnailURL *string      `json:"thumbnail_url" db:"thumbnail_url"`
	DisplayOrder int          `json:"display_order" db:"display_order"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// ResourceInput is the editable part of a resource
type ResourceInput struct {
	Title        string       `json:"title"`
	Type         ResourceType `json:"type"`
	URL          string       `json:"url"`
	VideoURL     string       `json:"video_url"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnail_url"`
	DisplayOrder int          `json:"display_order"`
}
