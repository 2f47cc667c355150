package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/shift"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, grace_minutes, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.GraceMinutes, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// GetByIDs implements shift.ShiftRepository.
func (r *shiftRepository) GetByIDs(ctx context.Context, ids []string) (map[string]shift.Shift, error) {
	result := make(map[string]shift.Shift, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, grace_minutes, created_at, updated_at
		FROM shifts
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s shift.Shift
		err := rows.Scan(
			&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.GraceMinutes, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		result[s.ID] = s
	}

	return result, nil
}
