package services

import (
	"context"
	"errors"
	"time"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

// maxMutateRetries bounds how often a document mutation is retried after
// losing an optimistic-concurrency race before the conflict is surfaced.
const maxMutateRetries = 3

// errNoChange is returned by a mutation callback to signal that the document
// is already in the desired state and no write is needed. It never escapes
// mutateDocument.
var errNoChange = errors.New("no change")

// mutateDocument runs a read-modify-write cycle against a theater's array
// document. The callback mutates the freshly loaded document in place; the
// write is conditional on the version that was read, and the whole cycle is
// retried on a lost race so concurrent item mutations merge instead of
// overwriting each other.
func mutateDocument[T domain.ArrayItem](
	ctx context.Context,
	repo portsrepo.ArrayDocumentRepository[T],
	theaterID string,
	now time.Time,
	mutate func(doc *domain.ArrayDocument[T]) error,
) error {
	var lastErr error
	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		doc, err := repo.FindOrCreateByTheater(ctx, theaterID)
		if err != nil {
			return err
		}

		if err := mutate(doc); err != nil {
			if errors.Is(err, errNoChange) {
				return nil
			}
			return err
		}

		err = repo.ReplaceItems(ctx, theaterID, doc.Items, doc.Version, now)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// paginate applies limit/offset to an in-memory item slice. A non-positive
// limit returns everything from offset on.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
