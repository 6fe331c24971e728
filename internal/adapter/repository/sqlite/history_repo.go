package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

// historyRepository implements domain.HistoryRepository
type historyRepository struct {
	db *DB
}

// NewHistoryRepository creates a new net-worth history repository
func NewHistoryRepository(db *DB) domain.HistoryRepository {
	return &historyRepository{db: db}
}

// Append stores one new valuation point
func (r *historyRepository) Append(ctx context.Context, point domain.NetWorthPoint) error {
	query := `
		INSERT INTO networth_history (id, recorded_at, total)
		VALUES (?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		point.ID,
		point.RecordedAt.UTC().Format(time.RFC3339Nano),
		point.Total.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to append net-worth point: %w", err)
	}
	return nil
}

// List retrieves points recorded in [from, to], ordered by recorded_at
// ascending. Zero time bounds mean unbounded.
func (r *historyRepository) List(ctx context.Context, from, to time.Time) ([]domain.NetWorthPoint, error) {
	query := `SELECT id, recorded_at, total FROM networth_history`
	var args []interface{}
	switch {
	case !from.IsZero() && !to.IsZero():
		query += ` WHERE recorded_at >= ? AND recorded_at <= ?`
		args = append(args, from.UTC().Format(time.RFC3339Nano), to.UTC().Format(time.RFC3339Nano))
	case !from.IsZero():
		query += ` WHERE recorded_at >= ?`
		args = append(args, from.UTC().Format(time.RFC3339Nano))
	case !to.IsZero():
		query += ` WHERE recorded_at <= ?`
		args = append(args, to.UTC().Format(time.RFC3339Nano))
	}
	query += ` ORDER BY recorded_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list net-worth history: %w", err)
	}
	defer rows.Close()

	var points []domain.NetWorthPoint
	for rows.Next() {
		var point domain.NetWorthPoint
		var recordedAt, total string

		if err := rows.Scan(&point.ID, &recordedAt, &total); err != nil {
			return nil, fmt.Errorf("failed to scan net-worth point: %w", err)
		}

		point.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}

		point.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total: %w", err)
		}

		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate net-worth history: %w", err)
	}

	return points, nil
}
