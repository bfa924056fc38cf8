package service

import (
	"context"
	"fmt"

	"task-pwa/internal/model"
	"task-pwa/internal/repository"
)

// TaskPatch carries the fields of a partial update. Nil fields keep their
// stored value.
type TaskPatch struct {
	Name      *string
	Completed *bool
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return task, nil
}

// CreateTask stores a new, incomplete, uncategorised task.
func (s *TaskService) CreateTask(ctx context.Context, name string) (*model.Task, error) {
	name, err := checkName(name, MaxTaskNameLength)
	if err != nil {
		return nil, err
	}

	task := model.Task{Name: name}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask merges patch into the stored task and returns the result.
// Only the columns present in patch are written; updated_at is always
// refreshed.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		name, err := checkName(*patch.Name, MaxTaskNameLength)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	if err := s.taskRepo.Update(ctx, id, updates); err != nil {
		return nil, translate(err)
	}
	return s.GetTask(ctx, id)
}

// SetCategory files the task under categoryID, or clears its category when
// categoryID is nil.
func (s *TaskService) SetCategory(ctx context.Context, id uint, categoryID *uint) (*model.Task, error) {
	if err := s.taskRepo.SetCategory(ctx, id, categoryID); err != nil {
		if isMissingCategory(err) {
			return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, *categoryID)
		}
		return nil, translate(err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	return translate(s.taskRepo.Delete(ctx, id))
}
