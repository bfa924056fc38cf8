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

func ptr[T any](v T) *T { return &v }

func newTaskService(t *testing.T) (*service.TaskService, func() int64) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := service.NewTaskService(repository.NewTaskRepository(db))
	return svc, func() int64 { return testutil.CountTasks(t, db) }
}

func TestCreateTask_Defaults(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(context.Background(), "  Write report ")
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Name)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CategoryID)
}

func TestCreateTask_EmptyNameIsRejected(t *testing.T) {
	svc, count := newTaskService(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.CreateTask(context.Background(), name)
		assert.ErrorIs(t, err, service.ErrValidation, "name %q", name)
	}
	assert.Zero(t, count())
}

func TestUpdateTask_PartialMerge(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "A")
	require.NoError(t, err)

	got, err := svc.UpdateTask(ctx, created.ID, service.TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.True(t, got.Completed)

	got, err = svc.UpdateTask(ctx, created.ID, service.TaskPatch{Name: ptr("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.True(t, got.Completed)

	// Applying the same patches again changes nothing.
	got, err = svc.UpdateTask(ctx, created.ID, service.TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.True(t, got.Completed)
}

func TestUpdateTask_EmptyPatchRefreshesTimestamp(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "A")
	require.NoError(t, err)

	got, err := svc.UpdateTask(ctx, created.ID, service.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.False(t, got.Completed)
	assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateTask_EmptyNameIsRejected(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "A")
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, created.ID, service.TaskPatch{Name: ptr(""), Completed: ptr(true)})
	assert.ErrorIs(t, err, service.ErrValidation)

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.False(t, got.Completed)
}

func TestMissingTask(t *testing.T) {
	svc, count := newTaskService(t)
	ctx := context.Background()

	_, err := svc.GetTask(ctx, 99)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.UpdateTask(ctx, 99, service.TaskPatch{Completed: ptr(true)})
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.DeleteTask(ctx, 99)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Zero(t, count())
}

func TestListTasks(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	names := []string{"T1", "T2", "T3"}
	for _, name := range names {
		_, err := svc.CreateTask(ctx, name)
		require.NoError(t, err)
	}

	tasks, err = svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, names[i], task.Name)
		assert.NotZero(t, task.ID)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, count := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "gone")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))
	assert.Zero(t, count())

	_, err = svc.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTaskNameLengthLimit(t *testing.T) {
	svc, count := newTaskService(t)
	ctx := context.Background()

	// Multi-byte runes count once each.
	atLimit := strings.Repeat("é", service.MaxTaskNameLength)
	task, err := svc.CreateTask(ctx, atLimit)
	require.NoError(t, err)
	assert.Equal(t, atLimit, task.Name)

	_, err = svc.CreateTask(ctx, strings.Repeat("a", service.MaxTaskNameLength+1))
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.ErrorIs(t, err, service.ErrNameTooLong)
	assert.Equal(t, int64(1), count())

	_, err = svc.UpdateTask(ctx, task.ID, service.TaskPatch{Name: ptr(strings.Repeat("b", 300))})
	assert.ErrorIs(t, err, service.ErrNameTooLong)

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, atLimit, got.Name)
}

func TestSetCategory(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewTaskService(repository.NewTaskRepository(db))
	ctx := context.Background()

	work := testutil.CreateCategory(t, db, "Work", nil)
	task := testutil.CreateTask(t, db, "report", nil)

	got, err := svc.SetCategory(ctx, task.ID, &work.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, work.ID, *got.CategoryID)

	_, err = svc.SetCategory(ctx, task.ID, ptr(uint(99)))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.SetCategory(ctx, 99, &work.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	got, err = svc.SetCategory(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
