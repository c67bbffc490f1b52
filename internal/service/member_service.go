package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

// MemberService handles project membership and publishes its row changes
type MemberService struct {
	members   MemberStore
	projects  ProjectStore
	users     UserGetter
	publisher events.Publisher
	logger    *zap.Logger
}

// NewMemberService creates a new member service
func NewMemberService(members MemberStore, projects ProjectStore, users UserGetter, publisher events.Publisher, logger *zap.Logger) *MemberService {
	return &MemberService{
		members:   members,
		projects:  projects,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Add puts a user on a project. Only the project owner may add members.
// The insert is published so the new member gets notified.
func (s *MemberService) Add(ctx context.Context, callerID, projectID string, add *model.ProjectMemberAdd) (*model.ProjectMember, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if project.OwnerID != callerID {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, add.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewValidationError("user_id", "user not found")
	}

	existing, err := s.members.Get(ctx, projectID, add.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewValidationError("user_id", "user is already a member")
	}

	role := add.Role
	if role == "" {
		role = model.MemberRoleMember
	}

	member := &model.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    add.UserID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.members.Add(ctx, member); err != nil {
		return nil, err
	}

	publishChange(ctx, s.publisher, s.logger, events.TypeInsert, events.TableProjectMembers, member, nil)

	return member, nil
}

// List retrieves the members of a project the caller can see
func (s *MemberService) List(ctx context.Context, callerID, projectID string) ([]model.ProjectMember, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if project.OwnerID != callerID {
		member, err := s.members.Get(ctx, projectID, callerID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, ErrForbidden
		}
	}

	return s.members.ListByProject(ctx, projectID)
}

// Remove takes a user off a project. Only the project owner may remove.
func (s *MemberService) Remove(ctx context.Context, callerID, projectID, userID string) error {
	if callerID == "" {
		return ErrAuthRequired
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if project.OwnerID != callerID {
		return ErrForbidden
	}

	return s.members.Remove(ctx, projectID, userID)
}
