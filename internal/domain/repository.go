package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned when no snapshot has ever been persisted
// under the requested key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSnapshotCorrupt is returned when a persisted snapshot exists but cannot
// be decoded. Callers are expected to fall back to a default collection
// rather than propagate the failure to the user.
var ErrSnapshotCorrupt = errors.New("snapshot corrupt")

// AssetRepository persists the full asset collection as one snapshot under a
// fixed key. Every successful ledger mutation rewrites the whole snapshot.
type AssetRepository interface {
	// SaveCollection serializes and stores the whole collection, replacing
	// any previous snapshot.
	SaveCollection(ctx context.Context, assets []Asset) error

	// LoadCollection retrieves the last persisted collection.
	// Returns ErrSnapshotNotFound when nothing was ever saved and
	// ErrSnapshotCorrupt (wrapped) when the stored payload cannot be decoded.
	LoadCollection(ctx context.Context) ([]Asset, error)
}

// GoalRepository persists the goal list under its own fixed key, with the
// same whole-snapshot contract as AssetRepository.
type GoalRepository interface {
	SaveAll(ctx context.Context, goals []Goal) error

	// LoadAll retrieves the last persisted goal list.
	// Same error contract as AssetRepository.LoadCollection.
	LoadAll(ctx context.Context) ([]Goal, error)
}

// HistoryRepository persists the append-only net-worth series
type HistoryRepository interface {
	// Append stores one new valuation point
	Append(ctx context.Context, point NetWorthPoint) error

	// List retrieves points recorded in [from, to], ordered by RecordedAt
	// ascending. Zero time bounds mean unbounded.
	List(ctx context.Context, from, to time.Time) ([]NetWorthPoint, error)
}
