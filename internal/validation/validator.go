package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/workshop-admin-api/internal/models"
)

// MaxTitleLength is the longest accepted workshop or resource title, in characters
const MaxTitleLength = 200

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is the set of problems found in one input. It implements error so
// services can return it directly.
type Errors []ValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Field+": "+ve.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// OrNil returns nil when there are no errors, so callers can write
// `if err := validation.X(in).OrNil(); err != nil`.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// NormalizeWorkshop trims the input and fills defaults
func NormalizeWorkshop(in *models.WorkshopInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Duration = strings.TrimSpace(in.Duration)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyBeginner
	}
}

// ValidateWorkshop validates a workshop create or edit
func ValidateWorkshop(in *models.WorkshopInput) Errors {
	var errors Errors

	errors = append(errors, validateTitle(in.Title)...)

	if !models.ValidDifficulties[in.Difficulty] {
		errors = append(errors, ValidationError{
			Field:   "difficulty",
			Message: "invalid difficulty, must be one of: Beginner, Intermediate, Advanced",
			Value:   in.Difficulty,
		})
	}

	if in.Duration == "" {
		errors = append(errors, ValidationError{Field: "duration", Message: "duration is required"})
	}

	if in.ImageURL != "" && !isHTTPURL(in.ImageURL) {
		errors = append(errors, ValidationError{Field: "image_url", Message: "image_url must be an absolute http(s) URL", Value: in.ImageURL})
	}

	return errors
}

// NormalizeResource trims the input and fills defaults
func NormalizeResource(in *models.ResourceInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	in.Description = strings.TrimSpace(in.Description)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	if in.Type == "" {
		in.Type = models.ResourceTypeInstruction
	}
}

// ValidateResource validates a resource create or edit
func ValidateResource(in *models.ResourceInput) Errors {
	var errors Errors

	errors = append(errors, validateTitle(in.Title)...)

	if !models.ValidResourceTypes[in.Type] {
		errors = append(errors, ValidationError{
			Field:   "type",
			Message: "invalid type, must be one of: video, image, instruction, pdf",
			Value:   in.Type,
		})
	}

	if in.DisplayOrder < 0 {
		errors = append(errors, ValidationError{Field: "display_order", Message: "display_order must not be negative", Value: in.DisplayOrder})
	}

	for _, f := range []struct{ name, value string }{
		{"url", in.URL},
		{"video_url", in.VideoURL},
		{"thumbnail_url", in.ThumbnailURL},
	} {
		if f.value != "" && !isHTTPURL(f.value) {
			errors = append(errors, ValidationError{Field: f.name, Message: f.name + " must be an absolute http(s) URL", Value: f.value})
		}
	}

	return errors
}

// NormalizeUpdate trims the input
func NormalizeUpdate(in *models.UpdateInput) {
	in.Comment = strings.TrimSpace(in.Comment)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.AuthorName = strings.TrimSpace(in.AuthorName)
}

// ValidateUpdate validates a workshop update
func ValidateUpdate(in *models.UpdateInput) Errors {
	var errors Errors

	if in.Comment == "" {
		errors = append(errors, ValidationError{Field: "comment", Message: "comment is required"})
	}

	if in.ImageURL != "" && !isHTTPURL(in.ImageURL) {
		errors = append(errors, ValidationError{Field: "image_url", Message: "image_url must be an absolute http(s) URL", Value: in.ImageURL})
	}

	return errors
}

// ValidateID checks a path id before it reaches the database
func ValidateID(field, id string) Errors {
	if id == "" {
		return Errors{{Field: field, Message: field + " is required"}}
	}
	if !isValidUUID(id) {
		return Errors{{Field: field, Message: "invalid UUID format", Value: id}}
	}
	return nil
}

func validateTitle(title string) Errors {
	if title == "" {
		return Errors{{Field: "title", Message: "title is required"}}
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return Errors{{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters (has %d)", MaxTitleLength, n),
		}}
	}
	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
