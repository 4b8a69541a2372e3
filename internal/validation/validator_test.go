package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/workshop-admin-api/internal/models"
)

func assertFields(t *testing.T, got Errors, wantFields []string) {
	t.Helper()
	for _, wantField := range wantFields {
		found := false
		for _, err := range got {
			if err.Field == wantField {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected error for field '%s' but not found", wantField)
		}
	}
}

func TestValidateWorkshop(t *testing.T) {
	tests := []struct {
		name       string
		input      models.WorkshopInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid workshop",
			input: models.WorkshopInput{
				Title:      "Intro Welding",
				Difficulty: models.DifficultyBeginner,
				Duration:   "2 hours",
				ImageURL:   "https://cdn.example.com/weld.jpg",
			},
			wantErrors: 0,
		},
		{
			name: "empty difficulty defaults to Beginner",
			input: models.WorkshopInput{
				Title:    "Intro Welding",
				Duration: "TBD",
			},
			wantErrors: 0,
		},
		{
			name: "missing title - required field",
			input: models.WorkshopInput{
				Title:    "   ",
				Duration: "2 hours",
			},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name: "title too long",
			input: models.WorkshopInput{
				Title:    strings.Repeat("a", MaxTitleLength+1),
				Duration: "2 hours",
			},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name: "invalid difficulty",
			input: models.WorkshopInput{
				Title:      "Forge",
				Difficulty: "Expert",
				Duration:   "1 day",
			},
			wantErrors: 1,
			wantFields: []string{"difficulty"},
		},
		{
			name: "relative image url",
			input: models.WorkshopInput{
				Title:    "Forge",
				Duration: "1 day",
				ImageURL: "/images/forge.jpg",
			},
			wantErrors: 1,
			wantFields: []string{"image_url"},
		},
		{
			name: "multiple validation errors",
			input: models.WorkshopInput{
				Difficulty: "hard",
				ImageURL:   "ftp://x/y.jpg",
			},
			wantErrors: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			NormalizeWorkshop(&in)
			errs := ValidateWorkshop(&in)
			if len(errs) != tt.wantErrors {
				t.Errorf("ValidateWorkshop() got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestNormalizeWorkshop(t *testing.T) {
	in := models.WorkshopInput{Title: "  Forge  ", Duration: " 1 day ", ImageURL: " "}
	NormalizeWorkshop(&in)

	if in.Title != "Forge" || in.Duration != "1 day" || in.ImageURL != "" {
		t.Errorf("Input not trimmed: %+v", in)
	}
	if in.Difficulty != models.DifficultyBeginner {
		t.Errorf("Expected default difficulty Beginner, got %s", in.Difficulty)
	}
}

func TestValidateResource(t *testing.T) {
	tests := []struct {
		name       string
		input      models.ResourceInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid video resource",
			input: models.ResourceInput{
				Title:        "Safety briefing",
				Type:         models.ResourceTypeVideo,
				VideoURL:     "https://videos.example.com/safety.mp4",
				ThumbnailURL: "https://videos.example.com/safety.jpg",
				DisplayOrder: 1,
			},
			wantErrors: 0,
		},
		{
			name:       "type defaults to instruction",
			input:      models.ResourceInput{Title: "Read this first"},
			wantErrors: 0,
		},
		{
			name:       "unknown type",
			input:      models.ResourceInput{Title: "Slides", Type: "slides"},
			wantErrors: 1,
			wantFields: []string{"type"},
		},
		{
			name:       "negative display order",
			input:      models.ResourceInput{Title: "Slides", DisplayOrder: -1},
			wantErrors: 1,
			wantFields: []string{"display_order"},
		},
		{
			name: "bad urls",
			input: models.ResourceInput{
				Title:        "Handout",
				Type:         models.ResourceTypePDF,
				URL:          "handout.pdf",
				VideoURL:     "javascript:alert(1)",
				ThumbnailURL: "https://ok.example.com/t.png",
			},
			wantErrors: 2,
			wantFields: []string{"url", "video_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			NormalizeResource(&in)
			errs := ValidateResource(&in)
			if len(errs) != tt.wantErrors {
				t.Errorf("ValidateResource() got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name       string
		input      models.UpdateInput
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid update",
			input:      models.UpdateInput{Comment: "Frame welded", AuthorName: "Sam"},
			wantErrors: 0,
		},
		{
			name:       "blank comment",
			input:      models.UpdateInput{Comment: "  \n"},
			wantErrors: 1,
			wantFields: []string{"comment"},
		},
		{
			name:       "bad image url",
			input:      models.UpdateInput{Comment: "Done", ImageURL: "not a url"},
			wantErrors: 1,
			wantFields: []string{"image_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			NormalizeUpdate(&in)
			errs := ValidateUpdate(&in)
			if len(errs) != tt.wantErrors {
				t.Errorf("ValidateUpdate() got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateID(t *testing.T) {
	if errs := ValidateID("id", "550e8400-e29b-41d4-a716-446655440000"); errs != nil {
		t.Errorf("Expected valid UUID, got %v", errs)
	}
	if errs := ValidateID("id", ""); len(errs) != 1 {
		t.Errorf("Expected required error, got %v", errs)
	}
	if errs := ValidateID("resource_id", "nope"); len(errs) != 1 || errs[0].Field != "resource_id" {
		t.Errorf("Expected invalid UUID error, got %v", errs)
	}
}

func TestErrors_OrNil(t *testing.T) {
	if err := (Errors{}).OrNil(); err != nil {
		t.Errorf("Expected nil for empty errors, got %v", err)
	}

	err := ValidateUpdate(&models.UpdateInput{}).OrNil()
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected Errors, got %T", err)
	}
	if !strings.Contains(err.Error(), "comment: comment is required") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
