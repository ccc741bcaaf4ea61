package service

import (
	"context"
	"errors"
	"strings"

	"taskbook/internal/domain"
	"taskbook/internal/repository"
)

// TaskUpdate carries the optional fields of a task update request.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskService coordinates owner-scoped task operations backed by the
// repository.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error)
	GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID int64, status string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, id int64, fields TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) CreateTask(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, ErrInvalidInput
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
	}

	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, ownerID, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, ownerID int64, status string) ([]domain.Task, error) {
	return s.tasks.List(ctx, ownerID, strings.TrimSpace(status))
}

// UpdateTask trims and validates any supplied fields before handing them to
// the store; unsupplied fields retain their prior values. A supplied field
// that is empty after trimming is invalid input, not a way to blank a
// required column.
func (s *taskService) UpdateTask(ctx context.Context, ownerID, id int64, fields TaskUpdate) (*domain.Task, error) {
	update := repository.TaskUpdate{}
	if fields.Title != nil {
		v := strings.TrimSpace(*fields.Title)
		if v == "" {
			return nil, ErrInvalidInput
		}
		update.Title = &v
	}
	if fields.Description != nil {
		v := strings.TrimSpace(*fields.Description)
		if v == "" {
			return nil, ErrInvalidInput
		}
		update.Description = &v
	}
	if fields.Status != nil {
		v := strings.TrimSpace(*fields.Status)
		if v == "" {
			return nil, ErrInvalidInput
		}
		update.Status = &v
	}

	task, err := s.tasks.Update(ctx, ownerID, id, update)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, ownerID, id int64) error {
	if err := s.tasks.Delete(ctx, ownerID, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
