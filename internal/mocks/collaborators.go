package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/service"
	"github.com/workshop-admin-api/internal/storage"
)

// Verify interface compliance
var (
	_ service.ProductSource = (*MockProductSource)(nil)
	_ storage.Store         = (*MockStore)(nil)
)

// MockProductSource returns a fixed product list
type MockProductSource struct {
	Products []catalog.Product
	Err      error
	Calls    []string // collection ids requested
}

func (m *MockProductSource) ListCollectionProducts(ctx context.Context, collectionID string) ([]catalog.Product, error) {
	m.Calls = append(m.Calls, collectionID)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Products, nil
}

// StoredObject is an object captured by MockStore
type StoredObject struct {
	Bucket      string
	Name        string
	ContentType string
	Data        []byte
}

// MockStore keeps uploaded objects in memory
type MockStore struct {
	mu      sync.Mutex
	Objects []StoredObject
	Err     error
	BaseURL string
}

func NewMockStore() *MockStore {
	return &MockStore{BaseURL: "https://storage.test/public"}
}

func (m *MockStore) Upload(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects = append(m.Objects, StoredObject{Bucket: bucket, Name: name, ContentType: contentType, Data: data})
	return m.BaseURL + "/" + bucket + "/" + name, nil
}
