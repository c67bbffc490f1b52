package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// ProjectStore is the persistence surface for projects and costs.
type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	ListByUser(ctx context.Context, userID string) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	AddCost(ctx context.Context, cost *model.ProjectCost) error
	ListCosts(ctx context.Context, projectID string) ([]model.ProjectCost, error)
}

// MemberStore is the persistence surface for project memberships.
type MemberStore interface {
	Add(ctx context.Context, member *model.ProjectMember) error
	Get(ctx context.Context, projectID, userID string) (*model.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]model.ProjectMember, error)
	Remove(ctx context.Context, projectID, userID string) error
}

// ProjectService handles projects and their cost tracking
type ProjectService struct {
	projects ProjectStore
	members  MemberStore
	logger   *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectStore, members MemberStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		logger:   logger,
	}
}

// Create adds a new project owned by the caller
func (s *ProjectService) Create(ctx context.Context, userID string, create *model.ProjectCreate) (*model.Project, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if create.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if create.Type == "" {
		return nil, NewValidationError("type", "type is required")
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:        uuid.NewString(),
		Name:      create.Name,
		Type:      create.Type,
		Status:    "planning",
		OwnerID:   userID,
		Area:      create.Area,
		Rooms:     create.Rooms,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if create.Description != "" {
		project.Description = &create.Description
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Get retrieves a project the caller can see
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if err := s.authorize(ctx, project, userID); err != nil {
		return nil, err
	}

	return project, nil
}

// ListByUser retrieves the projects a user owns or belongs to
func (s *ProjectService) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.projects.ListByUser(ctx, userID)
}

// AddCost records a cost entry against a project the caller can see
func (s *ProjectService) AddCost(ctx context.Context, userID string, cost *model.ProjectCost) (*model.ProjectCost, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if cost.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be a positive number")
	}

	project, err := s.projects.GetByID(ctx, cost.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if err := s.authorize(ctx, project, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cost.ID = uuid.NewString()
	cost.CreatedBy = userID
	cost.CreatedAt = now
	cost.UpdatedAt = now

	if err := s.projects.AddCost(ctx, cost); err != nil {
		return nil, err
	}

	return cost, nil
}

// ListCosts retrieves the cost entries of a project the caller can see
func (s *ProjectService) ListCosts(ctx context.Context, userID, projectID string) ([]model.ProjectCost, error) {
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.ListCosts(ctx, projectID)
}

// authorize checks that a user owns or is a member of a project
func (s *ProjectService) authorize(ctx context.Context, project *model.Project, userID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if project.OwnerID == userID {
		return nil
	}

	member, err := s.members.Get(ctx, project.ID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrForbidden
	}
	return nil
}
