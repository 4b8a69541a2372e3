package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
)

// MockSyncService is a mock implementation of SyncService
type MockSyncService struct {
	mu      sync.Mutex
	RunFunc func(ctx context.Context, collectionID string) (*models.SyncResult, error)
	Runs    []string
}

// Verify interface compliance
var _ service.SyncService = (*MockSyncService)(nil)

func (m *MockSyncService) Run(ctx context.Context, collectionID string) (*models.SyncResult, error) {
	m.mu.Lock()
	m.Runs = append(m.Runs, collectionID)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, collectionID)
	}
	return models.NewSyncResult(), nil
}

// RunCount reports how many runs were started
func (m *MockSyncService) RunCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Runs)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Counts     map[string]int
	CountErr   error
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: make(map[string]int),
	}
}

func (m *MockExportService) StreamWorkshops(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, format)
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.Counts[resource], nil
}
