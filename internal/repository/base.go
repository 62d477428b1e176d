// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"inkwell/internal/models"
)

// storageTimeout bounds every repository call so a stuck connection
// surfaces as a retryable error instead of hanging the request.
const storageTimeout = 5 * time.Second

func withStorageTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storageTimeout)
}

// mapStorageError converts driver-level failures into the application's
// error taxonomy. Deadline and connection errors become StorageUnavailable
// so callers can distinguish retryable outages from data errors.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.NewStorageUnavailableError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return models.NewStorageUnavailableError(err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "bad connection") ||
		strings.Contains(msg, "broken pipe") {
		return models.NewStorageUnavailableError(err)
	}

	return models.NewInternalError(err)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
