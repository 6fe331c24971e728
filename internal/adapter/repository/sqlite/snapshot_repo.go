package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

// Fixed snapshot keys. The whole collection lives under one key, the way the
// original dashboard kept it under a single local-storage entry.
const (
	assetSnapshotKey = "financial-assets"
	goalSnapshotKey  = "financial-goals"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset snapshot repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// SaveCollection serializes the whole collection and upserts it under the
// fixed key
func (r *assetRepository) SaveCollection(ctx context.Context, assets []domain.Asset) error {
	payload, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("failed to serialize asset collection: %w", err)
	}
	return saveSnapshot(ctx, r.db, assetSnapshotKey, payload)
}

// LoadCollection reads back the last persisted collection
func (r *assetRepository) LoadCollection(ctx context.Context) ([]domain.Asset, error) {
	payload, err := loadSnapshot(ctx, r.db, assetSnapshotKey)
	if err != nil {
		return nil, err
	}

	var assets []domain.Asset
	if err := json.Unmarshal(payload, &assets); err != nil {
		return nil, fmt.Errorf("%w: failed to decode asset collection: %v", domain.ErrSnapshotCorrupt, err)
	}
	return assets, nil
}

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal snapshot repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

// SaveAll serializes the goal list and upserts it under the fixed key
func (r *goalRepository) SaveAll(ctx context.Context, goals []domain.Goal) error {
	payload, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to serialize goals: %w", err)
	}
	return saveSnapshot(ctx, r.db, goalSnapshotKey, payload)
}

// LoadAll reads back the last persisted goal list
func (r *goalRepository) LoadAll(ctx context.Context) ([]domain.Goal, error) {
	payload, err := loadSnapshot(ctx, r.db, goalSnapshotKey)
	if err != nil {
		return nil, err
	}

	var goals []domain.Goal
	if err := json.Unmarshal(payload, &goals); err != nil {
		return nil, fmt.Errorf("%w: failed to decode goals: %v", domain.ErrSnapshotCorrupt, err)
	}
	return goals, nil
}

func saveSnapshot(ctx context.Context, db *DB, key string, payload []byte) error {
	query := `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query, key, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func loadSnapshot(ctx context.Context, db *DB, key string) ([]byte, error) {
	query := `SELECT payload FROM snapshots WHERE key = ?`

	var payload string
	err := db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return []byte(payload), nil
}
