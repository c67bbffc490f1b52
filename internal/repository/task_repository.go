package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new task
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, title, description, status, priority,
			assigned_to, created_by, due_date, created_at, updated_at)
		VALUES (:id, :project_id, :title, :description, :status, :priority,
			:assigned_to, :created_by, :due_date, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		r.logger.Error("failed to create task", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT * FROM tasks WHERE id = $1`

	var task model.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get task", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &task, nil
}

// ListByProject retrieves all tasks in a project
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	query := `SELECT * FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`

	tasks := []model.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		r.logger.Error("failed to list tasks by project", zap.Error(err), zap.String("project_id", projectID))
		return nil, err
	}

	return tasks, nil
}

// Update persists the full task row
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = :title, description = :description, status = :status,
			priority = :priority, assigned_to = :assigned_to, due_date = :due_date,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		r.logger.Error("failed to update task", zap.Error(err), zap.String("id", task.ID))
		return err
	}

	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete task", zap.Error(err), zap.String("id", id))
		return err
	}

	return nil
}
