package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-pwa/internal/model"
)

// ErrCategoryNotFound is returned by SetCategory when the target category
// does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns every task in insertion order.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update writes only the given columns. It returns gorm.ErrRecordNotFound
// when no row has the id.
func (r *TaskRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Task{ID: id}).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task permanently. It returns gorm.ErrRecordNotFound when
// no row has the id.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetCategory points the task at categoryID, or clears it when categoryID is
// nil. The category lookup and the write share one transaction.
func (r *TaskRepository) SetCategory(ctx context.Context, id uint, categoryID *uint) error {
	var value interface{}
	if categoryID != nil {
		value = *categoryID
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if categoryID != nil {
			err := tx.First(&model.Category{}, *categoryID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			if err != nil {
				return fmt.Errorf("find category: %w", err)
			}
		}

		res := tx.Model(&model.Task{ID: id}).Update("category_id", value)
		if res.Error != nil {
			return fmt.Errorf("set task category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
