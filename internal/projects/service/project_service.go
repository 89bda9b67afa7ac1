package service

import (
	"context"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// ProjectStore is the persistence surface for projects themselves.
type ProjectStore interface {
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Project, error)
	List(ctx context.Context, status string) ([]domain.Project, error)
	Update(ctx context.Context, p domain.Project) (*domain.Project, error)
	SoftDelete(ctx context.Context, publicID string) (bool, error)
}

// ProjectService handles project CRUD. Status transitions are always
// user-driven; the only rule enforced here is that a project already in
// Done cannot have its collections mutated (the freeze guard used by
// the HTTP layer before task/line/expense writes).
type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	return s.projects.Create(ctx, p)
}

func (s *ProjectService) Get(ctx context.Context, publicID string) (*domain.Project, error) {
	return s.projects.GetByPublicID(ctx, publicID)
}

func (s *ProjectService) List(ctx context.Context, status string) ([]domain.Project, error) {
	return s.projects.List(ctx, status)
}

func (s *ProjectService) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	return s.projects.Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, publicID string) (bool, error) {
	return s.projects.SoftDelete(ctx, publicID)
}

// RequireMutable loads a project and rejects mutation of a closed one.
// Reports still read frozen projects as-is.
func (s *ProjectService) RequireMutable(ctx context.Context, publicID string) (*domain.Project, error) {
	p, err := s.projects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.ProjectDone {
		return nil, domain.ErrProjectFrozen
	}
	return p, nil
}
