package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/repository"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamWorkshops streams every workshop in the specified format
func (s *exportService) StreamWorkshops(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting workshops export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "json":
		return s.streamJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=workshops.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Workshop.StreamAll(ctx, func(workshop *models.Workshop) error {
		data, err := json.Marshal(workshop)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Workshops export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=workshops.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Workshop.StreamAll(ctx, func(workshop *models.Workshop) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(workshop)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=workshops.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"id", "shopify_product_id", "title", "description", "image_url", "difficulty", "duration", "created_at", "updated_at"})

	return s.repos.Workshop.StreamAll(ctx, func(workshop *models.Workshop) error {
		productID := ""
		if workshop.ShopifyProductID != nil {
			productID = strconv.FormatInt(*workshop.ShopifyProductID, 10)
		}
		imageURL := ""
		if workshop.ImageURL != nil {
			imageURL = *workshop.ImageURL
		}
		return writer.Write([]string{
			workshop.ID,
			productID,
			workshop.Title,
			workshop.Description,
			imageURL,
			string(workshop.Difficulty),
			workshop.Duration,
			workshop.CreatedAt.UTC().Format(time.RFC3339),
			workshop.UpdatedAt.UTC().Format(time.RFC3339),
		})
	})
}

// GetCount returns the row count for a table
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "workshops":
		return s.repos.Workshop.Count(ctx)
	case "resources":
		return s.repos.Resource.Count(ctx)
	case "updates":
		return s.repos.Update.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
