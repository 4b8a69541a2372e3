package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/repository"
	"github.com/workshop-admin-api/internal/validation"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// workshopService is the concrete implementation of WorkshopService
type workshopService struct {
	repos *repository.Repositories
	now   func() time.Time
	log   zerolog.Logger
}

// newWorkshopService creates a new WorkshopService
func newWorkshopService(repos *repository.Repositories, log zerolog.Logger) *workshopService {
	return &workshopService{
		repos: repos,
		now:   time.Now,
		log:   log.With().Str("service", "workshop").Logger(),
	}
}

// ClampPage applies the default and maximum page size
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *workshopService) ListWorkshops(ctx context.Context, limit, offset int) (*models.WorkshopList, error) {
	limit, offset = ClampPage(limit, offset)

	workshops, err := s.repos.Workshop.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	total, err := s.repos.Workshop.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count workshops: %w", err)
	}
	if workshops == nil {
		workshops = []*models.Workshop{}
	}

	return &models.WorkshopList{
		Workshops: workshops,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *workshopService) GetWorkshop(ctx context.Context, id string) (*models.Workshop, error) {
	w, err := s.repos.Workshop.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	if w == nil {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *workshopService) FindByShopifyProductID(ctx context.Context, productID int64) (*models.WorkshopList, error) {
	w, err := s.repos.Workshop.GetByShopifyProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find workshop by product: %w", err)
	}

	list := &models.WorkshopList{Workshops: []*models.Workshop{}, Limit: 1}
	if w != nil {
		list.Workshops = append(list.Workshops, w)
		list.Total = 1
	}
	return list, nil
}

func (s *workshopService) CreateWorkshop(ctx context.Context, in *models.WorkshopInput) (*models.Workshop, error) {
	validation.NormalizeWorkshop(in)
	if err := validation.ValidateWorkshop(in).OrNil(); err != nil {
		return nil, err
	}

	now := s.now()
	w := &models.Workshop{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    models.NullableString(in.ImageURL),
		Difficulty:  in.Difficulty,
		Duration:    in.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Workshop.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create workshop: %w", err)
	}

	s.log.Info().Str("workshop_id", w.ID).Str("title", w.Title).Msg("Workshop created")
	return w, nil
}

func (s *workshopService) UpdateWorkshop(ctx context.Context, id string, in *models.WorkshopInput) (*models.Workshop, error) {
	validation.NormalizeWorkshop(in)
	if err := validation.ValidateWorkshop(in).OrNil(); err != nil {
		return nil, err
	}

	w := &models.Workshop{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    models.NullableString(in.ImageURL),
		Difficulty:  in.Difficulty,
		Duration:    in.Duration,
		UpdatedAt:   s.now(),
	}
	found, err := s.repos.Workshop.Update(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("update workshop: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.log.Info().Str("workshop_id", id).Msg("Workshop updated")
	return w, nil
}

func (s *workshopService) DeleteWorkshop(ctx context.Context, id string) error {
	found, err := s.repos.Workshop.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("workshop_id", id).Msg("Workshop deleted")
	return nil
}

// requireWorkshop turns a missing parent into ErrNotFound before a child write
func (s *workshopService) requireWorkshop(ctx context.Context, workshopID string) error {
	_, err := s.GetWorkshop(ctx, workshopID)
	return err
}

func (s *workshopService) ListResources(ctx context.Context, workshopID string) ([]*models.Resource, error) {
	if err := s.requireWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}
	resources, err := s.repos.Resource.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	if resources == nil {
		resources = []*models.Resource{}
	}
	return resources, nil
}

func (s *workshopService) CreateResource(ctx context.Context, workshopID string, in *models.ResourceInput) (*models.Resource, error) {
	validation.NormalizeResource(in)
	if err := validation.ValidateResource(in).OrNil(); err != nil {
		return nil, err
	}
	if err := s.requireWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}

	r := resourceFromInput(in)
	r.ID = uuid.New().String()
	r.WorkshopID = workshopID
	r.CreatedAt = s.now()
	if err := s.repos.Resource.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.log.Info().Str("workshop_id", workshopID).Str("resource_id", r.ID).Str("type", string(r.Type)).Msg("Resource created")
	return r, nil
}

func (s *workshopService) UpdateResource(ctx context.Context, workshopID, id string, in *models.ResourceInput) (*models.Resource, error) {
	validation.NormalizeResource(in)
	if err := validation.ValidateResource(in).OrNil(); err != nil {
		return nil, err
	}

	r := resourceFromInput(in)
	r.ID = id
	r.WorkshopID = workshopID
	found, err := s.repos.Resource.Update(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *workshopService) DeleteResource(ctx context.Context, workshopID, id string) error {
	found, err := s.repos.Resource.Delete(ctx, workshopID, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *workshopService) ListUpdates(ctx context.Context, workshopID string) ([]*models.Update, error) {
	if err := s.requireWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}
	updates, err := s.repos.Update.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	if updates == nil {
		updates = []*models.Update{}
	}
	return updates, nil
}

func (s *workshopService) CreateUpdate(ctx context.Context, workshopID string, in *models.UpdateInput) (*models.Update, error) {
	validation.NormalizeUpdate(in)
	if err := validation.ValidateUpdate(in).OrNil(); err != nil {
		return nil, err
	}
	if err := s.requireWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.Update{
		ID:         uuid.New().String(),
		WorkshopID: workshopID,
		Comment:    in.Comment,
		ImageURL:   models.NullableString(in.ImageURL),
		AuthorName: models.NullableString(in.AuthorName),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Update.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create update: %w", err)
	}

	s.log.Info().Str("workshop_id", workshopID).Str("update_id", u.ID).Msg("Update posted")
	return u, nil
}

func (s *workshopService) UpdateUpdate(ctx context.Context, workshopID, id string, in *models.UpdateInput) (*models.Update, error) {
	validation.NormalizeUpdate(in)
	if err := validation.ValidateUpdate(in).OrNil(); err != nil {
		return nil, err
	}

	u := &models.Update{
		ID:         id,
		WorkshopID: workshopID,
		Comment:    in.Comment,
		ImageURL:   models.NullableString(in.ImageURL),
		AuthorName: models.NullableString(in.AuthorName),
		UpdatedAt:  s.now(),
	}
	found, err := s.repos.Update.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update update: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *workshopService) DeleteUpdate(ctx context.Context, workshopID, id string) error {
	found, err := s.repos.Update.Delete(ctx, workshopID, id)
	if err != nil {
		return fmt.Errorf("delete update: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func resourceFromInput(in *models.ResourceInput) *models.Resource {
	return &models.Resource{
		Title:        in.Title,
		Type:         in.Type,
		URL:          models.NullableString(in.URL),
		VideoURL:     models.NullableString(in.VideoURL),
		Description:  models.NullableString(in.Description),
		ThumbnailURL: models.NullableString(in.ThumbnailURL),
		DisplayOrder: in.DisplayOrder,
	}
}
