package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// ProjectRepository handles database operations for projects and their costs
type ProjectRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new project
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (id, name, description, type, status, owner_id, area, rooms,
			total_cost, created_at, updated_at)
		VALUES (:id, :name, :description, :type, :status, :owner_id, :area, :rooms,
			:total_cost, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		r.logger.Error("failed to create project", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT * FROM projects WHERE id = $1`

	var project model.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get project", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &project, nil
}

// ListByUser retrieves projects the user owns or is a member of, newest first
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	query := `
		SELECT DISTINCT p.*
		FROM projects p
		LEFT JOIN project_members m ON m.project_id = p.id
		WHERE p.owner_id = $1 OR m.user_id = $1
		ORDER BY p.created_at DESC`

	projects := []model.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		r.logger.Error("failed to list projects by user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return projects, nil
}

// Update modifies a project's editable fields
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects
		SET name = :name, description = :description, type = :type, status = :status,
			area = :area, rooms = :rooms, total_cost = :total_cost, updated_at = NOW()
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		r.logger.Error("failed to update project", zap.Error(err), zap.String("id", project.ID))
		return err
	}

	return nil
}

// AddCost records a cost entry against a project
func (r *ProjectRepository) AddCost(ctx context.Context, cost *model.ProjectCost) error {
	query := `
		INSERT INTO project_costs (id, project_id, bid_id, category, description, amount,
			created_by, created_at, updated_at)
		VALUES (:id, :project_id, :bid_id, :category, :description, :amount,
			:created_by, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, cost); err != nil {
		r.logger.Error("failed to add project cost", zap.Error(err), zap.String("project_id", cost.ProjectID))
		return err
	}

	return nil
}

// ListCosts retrieves all cost entries for a project
func (r *ProjectRepository) ListCosts(ctx context.Context, projectID string) ([]model.ProjectCost, error) {
	query := `SELECT * FROM project_costs WHERE project_id = $1 ORDER BY created_at DESC`

	costs := []model.ProjectCost{}
	if err := r.db.SelectContext(ctx, &costs, query, projectID); err != nil {
		r.logger.Error("failed to list project costs", zap.Error(err), zap.String("project_id", projectID))
		return nil, err
	}

	return costs, nil
}
