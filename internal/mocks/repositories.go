package mocks

import (
	"context"
	"sort"

	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.WorkshopRepository = (*MockWorkshopRepository)(nil)
	_ repository.ResourceRepository = (*MockResourceRepository)(nil)
	_ repository.UpdateRepository   = (*MockUpdateRepository)(nil)
)

// MockWorkshopRepository is an in-memory WorkshopRepository
type MockWorkshopRepository struct {
	Workshops   map[string]*models.Workshop
	ByProductID map[int64]*models.Workshop
	InsertError error
	// UpsertFunc, when set, replaces UpsertByShopifyProductID
	UpsertFunc  func(ctx context.Context, w *models.Workshop) (bool, error)
	UpsertCalls int
}

func NewMockWorkshopRepository() *MockWorkshopRepository {
	return &MockWorkshopRepository{
		Workshops:   make(map[string]*models.Workshop),
		ByProductID: make(map[int64]*models.Workshop),
	}
}

// Seed stores workshops as if they already existed
func (m *MockWorkshopRepository) Seed(workshops ...*models.Workshop) {
	for _, w := range workshops {
		m.Workshops[w.ID] = w
		if w.ShopifyProductID != nil {
			m.ByProductID[*w.ShopifyProductID] = w
		}
	}
}

func (m *MockWorkshopRepository) Create(ctx context.Context, w *models.Workshop) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Seed(w)
	return nil
}

func (m *MockWorkshopRepository) Update(ctx context.Context, w *models.Workshop) (bool, error) {
	existing, ok := m.Workshops[w.ID]
	if !ok {
		return false, nil
	}
	w.ShopifyProductID = existing.ShopifyProductID
	w.CreatedAt = existing.CreatedAt
	m.Seed(w)
	return true, nil
}

func (m *MockWorkshopRepository) Delete(ctx context.Context, id string) (bool, error) {
	w, ok := m.Workshops[id]
	if !ok {
		return false, nil
	}
	delete(m.Workshops, id)
	if w.ShopifyProductID != nil {
		delete(m.ByProductID, *w.ShopifyProductID)
	}
	return true, nil
}

func (m *MockWorkshopRepository) GetByID(ctx context.Context, id string) (*models.Workshop, error) {
	return m.Workshops[id], nil
}

func (m *MockWorkshopRepository) GetByShopifyProductID(ctx context.Context, productID int64) (*models.Workshop, error) {
	return m.ByProductID[productID], nil
}

func (m *MockWorkshopRepository) UpsertByShopifyProductID(ctx context.Context, w *models.Workshop) (bool, error) {
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, w)
	}
	if m.InsertError != nil {
		return false, m.InsertError
	}

	existing, ok := m.ByProductID[*w.ShopifyProductID]
	if !ok {
		m.Seed(w)
		return true, nil
	}
	existing.Title = w.Title
	existing.Description = w.Description
	existing.ImageURL = w.ImageURL
	existing.Difficulty = w.Difficulty
	existing.Duration = w.Duration
	existing.UpdatedAt = w.UpdatedAt
	w.ID = existing.ID
	w.CreatedAt = existing.CreatedAt
	return false, nil
}

// sorted returns workshops newest first, matching the SQL ordering
func (m *MockWorkshopRepository) sorted() []*models.Workshop {
	out := make([]*models.Workshop, 0, len(m.Workshops))
	for _, w := range m.Workshops {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MockWorkshopRepository) List(ctx context.Context, limit, offset int) ([]*models.Workshop, error) {
	all := m.sorted()
	if offset >= len(all) {
		return []*models.Workshop{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockWorkshopRepository) Count(ctx context.Context) (int, error) {
	return len(m.Workshops), nil
}

func (m *MockWorkshopRepository) StreamAll(ctx context.Context, callback func(*models.Workshop) error) error {
	for _, w := range m.sorted() {
		if err := callback(w); err != nil {
			return err
		}
	}
	return nil
}

// MockResourceRepository is an in-memory ResourceRepository
type MockResourceRepository struct {
	Resources   map[string]*models.Resource
	InsertError error
}

func NewMockResourceRepository() *MockResourceRepository {
	return &MockResourceRepository{
		Resources: make(map[string]*models.Resource),
	}
}

func (m *MockResourceRepository) Create(ctx context.Context, r *models.Resource) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Resources[r.ID] = r
	return nil
}

func (m *MockResourceRepository) Update(ctx context.Context, r *models.Resource) (bool, error) {
	existing, ok := m.Resources[r.ID]
	if !ok || existing.WorkshopID != r.WorkshopID {
		return false, nil
	}
	r.CreatedAt = existing.CreatedAt
	m.Resources[r.ID] = r
	return true, nil
}

func (m *MockResourceRepository) Delete(ctx context.Context, workshopID, id string) (bool, error) {
	existing, ok := m.Resources[id]
	if !ok || existing.WorkshopID != workshopID {
		return false, nil
	}
	delete(m.Resources, id)
	return true, nil
}

func (m *MockResourceRepository) GetByID(ctx context.Context, workshopID, id string) (*models.Resource, error) {
	r, ok := m.Resources[id]
	if !ok || r.WorkshopID != workshopID {
		return nil, nil
	}
	return r, nil
}

func (m *MockResourceRepository) ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Resource, error) {
	var out []*models.Resource
	for _, r := range m.Resources {
		if r.WorkshopID == workshopID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockResourceRepository) Count(ctx context.Context) (int, error) {
	return len(m.Resources), nil
}

// MockUpdateRepository is an in-memory UpdateRepository
type MockUpdateRepository struct {
	Updates     map[string]*models.Update
	InsertError error
}

func NewMockUpdateRepository() *MockUpdateRepository {
	return &MockUpdateRepository{
		Updates: make(map[string]*models.Update),
	}
}

func (m *MockUpdateRepository) Create(ctx context.Context, u *models.Update) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Updates[u.ID] = u
	return nil
}

func (m *MockUpdateRepository) Update(ctx context.Context, u *models.Update) (bool, error) {
	existing, ok := m.Updates[u.ID]
	if !ok || existing.WorkshopID != u.WorkshopID {
		return false, nil
	}
	u.CreatedAt = existing.CreatedAt
	m.Updates[u.ID] = u
	return true, nil
}

func (m *MockUpdateRepository) Delete(ctx context.Context, workshopID, id string) (bool, error) {
	existing, ok := m.Updates[id]
	if !ok || existing.WorkshopID != workshopID {
		return false, nil
	}
	delete(m.Updates, id)
	return true, nil
}

func (m *MockUpdateRepository) GetByID(ctx context.Context, workshopID, id string) (*models.Update, error) {
	u, ok := m.Updates[id]
	if !ok || u.WorkshopID != workshopID {
		return nil, nil
	}
	return u, nil
}

func (m *MockUpdateRepository) ListByWorkshop(ctx context.Context, workshopID string) ([]*models.Update, error) {
	var out []*models.Update
	for _, u := range m.Updates {
		if u.WorkshopID == workshopID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockUpdateRepository) Count(ctx context.Context) (int, error) {
	return len(m.Updates), nil
}

// NewMockRepositories wires the three in-memory repositories together
func NewMockRepositories() (*repository.Repositories, *MockWorkshopRepository, *MockResourceRepository, *MockUpdateRepository) {
	w := NewMockWorkshopRepository()
	r := NewMockResourceRepository()
	u := NewMockUpdateRepository()
	return &repository.Repositories{Workshop: w, Resource: r, Update: u}, w, r, u
}
