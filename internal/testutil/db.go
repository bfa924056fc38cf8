// Package testutil provides shared helpers for tests that need a database.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"task-pwa/internal/model"
	"task-pwa/internal/repository"
)

// NewDB opens a migrated SQLite database in a per-test temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateCategory inserts a category directly, bypassing validation.
func CreateCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) model.Category {
	t.Helper()
	category := model.Category{Name: name, ParentID: parentID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category %q: %v", name, err)
	}
	return category
}

// CreateTask inserts a task directly, optionally filed under a category.
func CreateTask(t *testing.T, db *gorm.DB, name string, categoryID *uint) model.Task {
	t.Helper()
	task := model.Task{Name: name, CategoryID: categoryID}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("Failed to create task %q: %v", name, err)
	}
	return task
}

// CountTasks returns the number of task rows.
func CountTasks(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.Task{}).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	return n
}
