package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-pwa/internal/model"
)

// CategoryRepository manages the category tree.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteTree removes the category and every descendant, clearing the
// category of any task that pointed into the removed subtree. It returns the
// number of categories removed.
func (r *CategoryRepository) DeleteTree(ctx context.Context, id uint) (int, error) {
	var removed int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Category{}, id).Error; err != nil {
			return err
		}

		ids, err := collectSubtree(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Task{}).Where("category_id IN ?", ids).
			UpdateColumn("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach tasks: %w", err)
		}
		res := tx.Where("id IN ?", ids).Delete(&model.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete categories: %w", res.Error)
		}
		removed = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// collectSubtree walks parent_id breadth-first from root and returns root
// plus all of its descendants.
func collectSubtree(tx *gorm.DB, root uint) ([]uint, error) {
	ids := []uint{root}
	seen := map[uint]bool{root: true}
	frontier := []uint{root}
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&model.Category{}).Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, fmt.Errorf("find subcategories: %w", err)
		}
		frontier = frontier[:0]
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			ids = append(ids, child)
			frontier = append(frontier, child)
		}
	}
	return ids, nil
}
