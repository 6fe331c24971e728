// Package history records dated net-worth valuations of the asset collection
// so the dashboard chart can show real data instead of a projection.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
	"github.com/mlefebvre/patrimoine-backend/internal/events"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/aggregation"
)

// AssetSource yields the current collection snapshot
type AssetSource interface {
	Assets() []domain.Asset
}

// Recorder appends net-worth points to the history
type Recorder struct {
	source AssetSource
	repo   domain.HistoryRepository
	bus    *events.Bus
	log    zerolog.Logger
	now    func() time.Time
}

// NewRecorder creates a new net-worth recorder
func NewRecorder(source AssetSource, repo domain.HistoryRepository, bus *events.Bus, log zerolog.Logger) *Recorder {
	return &Recorder{
		source: source,
		repo:   repo,
		bus:    bus,
		log:    log.With().Str("component", "history").Logger(),
		now:    time.Now,
	}
}

// Record values the current snapshot and appends one point to the series
func (r *Recorder) Record(ctx context.Context) (domain.NetWorthPoint, error) {
	point := domain.NetWorthPoint{
		ID:         uuid.New().String(),
		RecordedAt: r.now(),
		Total:      aggregation.TotalValue(r.source.Assets()),
	}

	if err := r.repo.Append(ctx, point); err != nil {
		return domain.NetWorthPoint{}, fmt.Errorf("failed to record net-worth point: %w", err)
	}

	r.log.Info().
		Str("point_id", point.ID).
		Str("total", point.Total.String()).
		Msg("Net-worth point recorded")
	r.bus.Publish(&events.NetWorthRecordedData{
		PointID: point.ID,
		Total:   point.Total.String(),
	})

	return point, nil
}

// History returns the recorded series, oldest first
func (r *Recorder) History(ctx context.Context) ([]domain.NetWorthPoint, error) {
	return r.repo.List(ctx, time.Time{}, time.Time{})
}

// Name implements scheduler.Job
func (r *Recorder) Name() string {
	return "networth-snapshot"
}

// Run implements scheduler.Job
func (r *Recorder) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := r.Record(ctx)
	return err
}
