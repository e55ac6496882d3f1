package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

type PgxTheaterRepository struct {
	BaseRepository
}

// newPgxTheaterRepository creates a new repository for theater data.
func newPgxTheaterRepository(pool *pgxpool.Pool) portsrepo.TheaterRepositoryFacade {
	return &PgxTheaterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TheaterRepositoryFacade = (*PgxTheaterRepository)(nil)

var FULL_THEATER_SELECT_QUERY = `
SELECT
	t.theater_id, t.name, t.description, t.city, t.is_active,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by, t.version
FROM theaters t
`

// getTheaters runs the select query with the given filter appended.
func (r *PgxTheaterRepository) getTheaters(ctx context.Context, filterQuery string, args ...any) ([]domain.Theater, error) {
	query := FULL_THEATER_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query theaters", err)
	}
	defer rows.Close()
	theaters, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Theater])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Theater{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect theater rows", err)
	}

	return theaters, nil
}

func (r *PgxTheaterRepository) SaveTheater(ctx context.Context, theater domain.Theater) error {
	query := `
		INSERT INTO theaters (
			theater_id, name, description, city, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		theater.TheaterID,
		theater.Name,
		theater.Description,
		theater.City,
		theater.IsActive,
		theater.CreatedAt,
		theater.CreatedBy,
		theater.LastUpdatedAt,
		theater.LastUpdatedBy,
		1,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewDuplicateError("theater ID " + theater.TheaterID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save theater "+theater.TheaterID, err)
	}
	return nil
}

func (r *PgxTheaterRepository) FindTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error) {
	query := `WHERE t.theater_id = $1`
	theaters, err := r.getTheaters(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}
	if len(theaters) == 0 {
		return nil, apperrors.NewNotFoundError("theater " + theaterID + " not found")
	}
	return &theaters[0], nil
}

func (r *PgxTheaterRepository) ListTheaters(ctx context.Context, limit int, offset int) ([]domain.Theater, error) {
	query := `ORDER BY t.name LIMIT $1 OFFSET $2`
	return r.getTheaters(ctx, query, limit, offset)
}

func (r *PgxTheaterRepository) UpdateTheater(ctx context.Context, theater domain.Theater) error {
	query := `
		UPDATE theaters
		SET name = $1, description = $2, city = $3, is_active = $4,
			last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE theater_id = $7 AND version = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		theater.Name,
		theater.Description,
		theater.City,
		theater.IsActive,
		theater.LastUpdatedAt,
		theater.LastUpdatedBy,
		theater.TheaterID,
		theater.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update theater "+theater.TheaterID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewVersionConflictError("theater " + theater.TheaterID + " was modified concurrently")
	}
	return nil
}

func (r *PgxTheaterRepository) DeactivateTheater(ctx context.Context, theaterID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE theaters
		SET is_active = false, last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE theater_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, updatedBy, theaterID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate theater "+theaterID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("theater " + theaterID + " not found")
	}
	return nil
}
