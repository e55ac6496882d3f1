package repositories

import (
	"context"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// ArrayDocumentRepository provides access to the single per-theater document
// holding the embedded items of one entity kind. Writes are conditional on the
// version read; a lost race surfaces as apperrors.ErrConflict and callers are
// expected to re-read and retry.
type ArrayDocumentRepository[T domain.ArrayItem] interface {
	// FindOrCreateByTheater returns the theater's document, creating an empty
	// one if none exists yet. Idempotent.
	FindOrCreateByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error)

	// FindByTheater returns the theater's document or apperrors.ErrNotFound.
	FindByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error)

	// ReplaceItems rewrites the document's whole item array, conditional on
	// expectedVersion. Returns apperrors.ErrConflict when a concurrent writer
	// has moved the version on, apperrors.ErrNotFound when no document exists.
	ReplaceItems(ctx context.Context, theaterID string, items []T, expectedVersion int64, now time.Time) error
}
