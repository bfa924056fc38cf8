package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-pwa/internal/repository"
	"task-pwa/internal/service"
	"task-pwa/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	root, err := svc.CreateCategory(ctx, "Work", nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)

	child, err := svc.CreateCategory(ctx, "Meetings", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = svc.CreateCategory(ctx, " ", nil)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.CreateCategory(ctx, strings.Repeat("x", service.MaxCategoryNameLength+1), nil)
	assert.ErrorIs(t, err, service.ErrNameTooLong)

	_, err = svc.CreateCategory(ctx, "Orphan", ptr(uint(404)))
	assert.ErrorIs(t, err, service.ErrValidation)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryTree_DepthFirst(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(db))

	work := testutil.CreateCategory(t, db, "Work", nil)
	home := testutil.CreateCategory(t, db, "Home", nil)
	meetings := testutil.CreateCategory(t, db, "Meetings", &work.ID)
	testutil.CreateCategory(t, db, "Garden", &home.ID)
	testutil.CreateCategory(t, db, "Standups", &meetings.ID)

	nodes, err := svc.Tree(context.Background())
	require.NoError(t, err)

	var got []string
	var depths []int
	for _, n := range nodes {
		got = append(got, n.Category.Name)
		depths = append(depths, n.Depth)
	}
	assert.Equal(t, []string{"Work", "Meetings", "Standups", "Home", "Garden"}, got)
	assert.Equal(t, []int{0, 1, 2, 0, 1}, depths)
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(db))
	tasks := service.NewTaskService(repository.NewTaskRepository(db))
	ctx := context.Background()

	work := testutil.CreateCategory(t, db, "Work", nil)
	meetings := testutil.CreateCategory(t, db, "Meetings", &work.ID)
	task := testutil.CreateTask(t, db, "prepare agenda", &meetings.ID)

	removed, err := svc.DeleteCategory(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, "prepare agenda", got.Name)

	_, err = svc.DeleteCategory(ctx, work.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
