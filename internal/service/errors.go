package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"task-pwa/internal/repository"
)

const (
	MaxTaskNameLength     = 255
	MaxCategoryNameLength = 100
)

var (
	// ErrNotFound is returned when the requested task or category does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps input that fails a required-field or shape check.
	ErrValidation = errors.New("validation failed")
	// ErrNameTooLong is always reported together with ErrValidation.
	ErrNameTooLong = errors.New("name too long")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// checkName trims name and enforces the required and max-length rules.
func checkName(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if n := utf8.RuneCountInString(name); n > max {
		return "", fmt.Errorf("%w: %w: %d characters, at most %d allowed", ErrValidation, ErrNameTooLong, n, max)
	}
	return name, nil
}

func isMissingCategory(err error) bool {
	return errors.Is(err, repository.ErrCategoryNotFound)
}
