package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

// TaskStore is the persistence surface for tasks.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskService handles project tasks and publishes their row changes
type TaskService struct {
	tasks     TaskStore
	projects  ProjectStore
	members   MemberStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(tasks TaskStore, projects ProjectStore, members MemberStore, publisher events.Publisher, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:     tasks,
		projects:  projects,
		members:   members,
		publisher: publisher,
		logger:    logger,
	}
}

// Create adds a task to a project the caller can see and publishes the
// insert so assignment notifications fire
func (s *TaskService) Create(ctx context.Context, userID string, create *model.TaskCreate) (*model.Task, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if create.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}

	if err := s.authorize(ctx, create.ProjectID, userID); err != nil {
		return nil, err
	}

	priority := create.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	var dueDate *time.Time
	if create.DueDate != "" {
		d := parseEventTime(create.DueDate)
		if d == nil {
			return nil, NewValidationError("due_date", "invalid date")
		}
		dueDate = d
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:        uuid.NewString(),
		ProjectID: create.ProjectID,
		Title:     create.Title,
		Status:    model.TaskStatusTodo,
		Priority:  priority,
		CreatedBy: userID,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if create.Description != "" {
		task.Description = &create.Description
	}
	if create.AssignedTo != "" {
		task.AssignedTo = &create.AssignedTo
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	publishChange(ctx, s.publisher, s.logger, events.TypeInsert, events.TableTasks, task, nil)

	return task, nil
}

// Get retrieves a task in a project the caller can see
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if err := s.authorize(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByProject retrieves the tasks of a project the caller can see
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID string) ([]model.Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// Update applies a partial update to a task. The pre-update row travels on
// the published event so reassignment can be detected downstream.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, update *model.TaskUpdate) (*model.Task, error) {
	old, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, ErrNotFound
	}
	if err := s.authorize(ctx, old.ProjectID, userID); err != nil {
		return nil, err
	}

	task := *old
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.AssignedTo != nil {
		if *update.AssignedTo == "" {
			task.AssignedTo = nil
		} else {
			task.AssignedTo = update.AssignedTo
		}
	}
	if update.DueDate != nil {
		if *update.DueDate == "" {
			task.DueDate = nil
		} else {
			d := parseEventTime(*update.DueDate)
			if d == nil {
				return nil, NewValidationError("due_date", "invalid date")
			}
			task.DueDate = d
		}
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, &task); err != nil {
		return nil, err
	}

	publishChange(ctx, s.publisher, s.logger, events.TypeUpdate, events.TableTasks, &task, old)

	return &task, nil
}

// Delete removes a task in a project the caller can see
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	if err := s.authorize(ctx, task.ProjectID, userID); err != nil {
		return err
	}

	return s.tasks.Delete(ctx, taskID)
}

func (s *TaskService) authorize(ctx context.Context, projectID, userID string) error {
	if userID == "" {
		return ErrAuthRequired
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if project.OwnerID == userID {
		return nil
	}

	member, err := s.members.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrForbidden
	}
	return nil
}
