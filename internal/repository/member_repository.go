package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// MemberRepository handles database operations for project members
type MemberRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sqlx.DB, logger *zap.Logger) *MemberRepository {
	return &MemberRepository{
		db:     db,
		logger: logger,
	}
}

// Add inserts a new project membership
func (r *MemberRepository) Add(ctx context.Context, member *model.ProjectMember) error {
	query := `
		INSERT INTO project_members (id, project_id, user_id, role, created_at)
		VALUES (:id, :project_id, :user_id, :role, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		r.logger.Error("failed to add project member", zap.Error(err), zap.String("project_id", member.ProjectID))
		return err
	}

	return nil
}

// Get retrieves a membership by project and user
func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (*model.ProjectMember, error) {
	query := `SELECT * FROM project_members WHERE project_id = $1 AND user_id = $2`

	var member model.ProjectMember
	if err := r.db.GetContext(ctx, &member, query, projectID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get project member", zap.Error(err), zap.String("project_id", projectID))
		return nil, err
	}

	return &member, nil
}

// ListByProject retrieves all members of a project
func (r *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]model.ProjectMember, error) {
	query := `SELECT * FROM project_members WHERE project_id = $1 ORDER BY created_at ASC`

	members := []model.ProjectMember{}
	if err := r.db.SelectContext(ctx, &members, query, projectID); err != nil {
		r.logger.Error("failed to list project members", zap.Error(err), zap.String("project_id", projectID))
		return nil, err
	}

	return members, nil
}

// Remove deletes a membership
func (r *MemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, projectID, userID); err != nil {
		r.logger.Error("failed to remove project member", zap.Error(err), zap.String("project_id", projectID))
		return err
	}

	return nil
}
