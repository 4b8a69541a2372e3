package service_test

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/workshop-admin-api/internal/models"
)

func seedExportWorkshops(h *testHarness) {
	productID := int64(42)
	image := "http://x/img.jpg"
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	h.workshopRepo.Seed(
		&models.Workshop{ID: "w1", ShopifyProductID: &productID, Title: "Intro Welding", Description: "Learn & grow",
			ImageURL: &image, Difficulty: models.DifficultyBeginner, Duration: "2 hours", CreatedAt: base, UpdatedAt: base},
		&models.Workshop{ID: "w2", Title: "Forge, advanced", Description: "Hot \"metal\"",
			Difficulty: models.DifficultyAdvanced, Duration: "TBD", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
	)
}

func TestExportService_StreamWorkshopsNDJSON(t *testing.T) {
	h := newTestHarness(t)
	seedExportWorkshops(h)

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamWorkshops(context.Background(), rec, "ndjson"); err != nil {
		t.Fatalf("StreamWorkshops failed: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("Unexpected content type %s", ct)
	}

	scanner := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	var ids []string
	for scanner.Scan() {
		var w models.Workshop
		if err := json.Unmarshal(scanner.Bytes(), &w); err != nil {
			t.Fatalf("Invalid NDJSON line %q: %v", scanner.Text(), err)
		}
		ids = append(ids, w.ID)
	}
	if len(ids) != 2 || ids[0] != "w2" {
		t.Errorf("Expected newest first, got %v", ids)
	}
}

func TestExportService_StreamWorkshopsJSON(t *testing.T) {
	h := newTestHarness(t)
	seedExportWorkshops(h)

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamWorkshops(context.Background(), rec, "json"); err != nil {
		t.Fatalf("StreamWorkshops failed: %v", err)
	}

	var workshops []models.Workshop
	if err := json.Unmarshal(rec.Body.Bytes(), &workshops); err != nil {
		t.Fatalf("Invalid JSON array: %v", err)
	}
	if len(workshops) != 2 {
		t.Errorf("Expected 2 workshops, got %d", len(workshops))
	}
}

func TestExportService_StreamWorkshopsCSV(t *testing.T) {
	h := newTestHarness(t)
	seedExportWorkshops(h)

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamWorkshops(context.Background(), rec, "csv"); err != nil {
		t.Fatalf("StreamWorkshops failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "id" || records[0][1] != "shopify_product_id" {
		t.Errorf("Unexpected header %v", records[0])
	}
	// w2 is newest and manual
	if records[1][2] != "Forge, advanced" || records[1][1] != "" {
		t.Errorf("Unexpected row %v", records[1])
	}
	if records[2][1] != "42" || records[2][7] != "2024-03-01T09:00:00Z" {
		t.Errorf("Unexpected row %v", records[2])
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	h := newTestHarness(t)
	if err := h.services.Export.StreamWorkshops(context.Background(), httptest.NewRecorder(), "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExportService_GetCount(t *testing.T) {
	h := newTestHarness(t)
	seedExportWorkshops(h)
	h.updateRepo.Updates["u1"] = &models.Update{ID: "u1", WorkshopID: "w1"}

	tests := []struct {
		resource string
		want     int
	}{
		{"workshops", 2},
		{"resources", 0},
		{"updates", 1},
	}
	for _, tt := range tests {
		got, err := h.services.Export.GetCount(context.Background(), tt.resource)
		if err != nil || got != tt.want {
			t.Errorf("GetCount(%s) = %d, %v; want %d", tt.resource, got, err, tt.want)
		}
	}

	if _, err := h.services.Export.GetCount(context.Background(), "users"); err == nil {
		t.Error("Expected error for unknown resource")
	}
}
