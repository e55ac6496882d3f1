package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

// PgxArrayDocumentRepository stores one row per theater in the given table,
// with the entity items serialized as a JSONB array. All item-level mutations
// go through ReplaceItems, conditional on the row version, which gives every
// embedded-array entity the same optimistic concurrency behavior.
//
// The table must have the shape
//
//	theater_id TEXT PRIMARY KEY, items JSONB NOT NULL,
//	version BIGINT NOT NULL, created_at, last_updated_at
type PgxArrayDocumentRepository[T domain.ArrayItem] struct {
	BaseRepository
	table string
}

func newPgxArrayDocumentRepository[T domain.ArrayItem](pool *pgxpool.Pool, table string) portsrepo.ArrayDocumentRepository[T] {
	return &PgxArrayDocumentRepository[T]{
		BaseRepository: BaseRepository{Pool: pool},
		table:          table,
	}
}

func (r *PgxArrayDocumentRepository[T]) FindOrCreateByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error) {
	// Insert-if-absent keeps this race-free without an extra round trip on
	// the common path.
	insert := `
		INSERT INTO ` + r.table + ` (theater_id, items, version, created_at, last_updated_at)
		VALUES ($1, '[]'::jsonb, 1, NOW(), NOW())
		ON CONFLICT (theater_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insert, theaterID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure document in "+r.table+" for theater "+theaterID, err)
	}
	return r.FindByTheater(ctx, theaterID)
}

func (r *PgxArrayDocumentRepository[T]) FindByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error) {
	query := `
		SELECT theater_id, items, version, created_at, last_updated_at
		FROM ` + r.table + `
		WHERE theater_id = $1;
	`
	doc := domain.ArrayDocument[T]{}
	var rawItems []byte
	err := r.Pool.QueryRow(ctx, query, theaterID).Scan(
		&doc.TheaterID,
		&rawItems,
		&doc.Version,
		&doc.CreatedAt,
		&doc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no document in " + r.table + " for theater " + theaterID)
		}
		return nil, apperrors.NewAppError(500, "failed to query "+r.table+" for theater "+theaterID, err)
	}
	if err := json.Unmarshal(rawItems, &doc.Items); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode items from "+r.table+" for theater "+theaterID, err)
	}
	return &doc, nil
}

func (r *PgxArrayDocumentRepository[T]) ReplaceItems(ctx context.Context, theaterID string, items []T, expectedVersion int64, now time.Time) error {
	if items == nil {
		items = []T{}
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode items for "+r.table, err)
	}

	query := `
		UPDATE ` + r.table + `
		SET items = $1, version = version + 1, last_updated_at = $2
		WHERE theater_id = $3 AND version = $4;
	`
	result, err := r.Pool.Exec(ctx, query, rawItems, now, theaterID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update "+r.table+" for theater "+theaterID, err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// Zero rows is either a concurrent writer or a missing document.
	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM ` + r.table + ` WHERE theater_id = $1);`
	if err := r.Pool.QueryRow(ctx, checkQuery, theaterID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check "+r.table+" for theater "+theaterID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("no document in " + r.table + " for theater " + theaterID)
	}
	return apperrors.NewVersionConflictError(r.table + " for theater " + theaterID + " was modified concurrently")
}
