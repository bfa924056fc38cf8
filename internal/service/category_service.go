package service

import (
	"context"
	"fmt"

	"task-pwa/internal/model"
	"task-pwa/internal/repository"
)

// CategoryNode is a category positioned in the tree for display.
type CategoryNode struct {
	Category model.Category
	Depth    int
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string, parentID *uint) (*model.Category, error) {
	name, err := checkName(name, MaxCategoryNameLength)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		if _, err := s.repo.GetByID(ctx, *parentID); err != nil {
			if translate(err) == ErrNotFound {
				return nil, fmt.Errorf("%w: parent category %d does not exist", ErrValidation, *parentID)
			}
			return nil, fmt.Errorf("find parent: %w", err)
		}
	}

	category := model.Category{Name: name, ParentID: parentID}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// Tree returns every category in depth-first order, roots first.
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryNode, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]model.Category)
	var roots []model.Category
	known := make(map[uint]bool, len(categories))
	for _, cat := range categories {
		known[cat.ID] = true
	}
	for _, cat := range categories {
		// Orphans (parent already gone) are shown as roots.
		if cat.ParentID == nil || !known[*cat.ParentID] {
			roots = append(roots, cat)
			continue
		}
		children[*cat.ParentID] = append(children[*cat.ParentID], cat)
	}

	nodes := make([]CategoryNode, 0, len(categories))
	var walk func(cat model.Category, depth int)
	walk = func(cat model.Category, depth int) {
		nodes = append(nodes, CategoryNode{Category: cat, Depth: depth})
		for _, child := range children[cat.ID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return nodes, nil
}

// DeleteCategory removes the category and all of its descendants. Tasks in
// the removed subtree lose their category but are kept.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) (int, error) {
	removed, err := s.repo.DeleteTree(ctx, id)
	if err != nil {
		return 0, translate(err)
	}
	return removed, nil
}
