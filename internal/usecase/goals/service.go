// Package goals manages the user's financial projects, persisted as one
// snapshot with the same permissive mutation semantics as the asset ledger.
package goals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
	"github.com/mlefebvre/patrimoine-backend/internal/events"
)

// Service maintains the goal list
type Service struct {
	repo     domain.GoalRepository
	bus      *events.Bus
	log      zerolog.Logger
	defaults []domain.Goal
	now      func() time.Time

	mu    sync.RWMutex
	goals []domain.Goal
}

// New creates a new goals service
func New(repo domain.GoalRepository, bus *events.Bus, log zerolog.Logger, defaults []domain.Goal) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		log:      log.With().Str("component", "goals").Logger(),
		defaults: defaults,
		now:      time.Now,
	}
}

// Load initializes the goal list from the persisted snapshot, falling back
// to the defaults when nothing usable is stored
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.LoadAll(ctx)
	switch {
	case err == nil:
		s.goals = goals
		s.log.Info().Int("goals", len(goals)).Msg("Loaded goals")
		return nil
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.log.Info().Msg("No persisted goals, seeding defaults")
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		s.log.Warn().Err(err).Msg("Persisted goals are corrupt, falling back to defaults")
	default:
		return fmt.Errorf("failed to load goals: %w", err)
	}

	seeded := append([]domain.Goal(nil), s.defaults...)
	if err := s.repo.SaveAll(ctx, seeded); err != nil {
		return fmt.Errorf("failed to persist default goals: %w", err)
	}
	s.goals = seeded
	return nil
}

// Goals returns a copy of the current goal list
func (s *Service) Goals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Goal(nil), s.goals...)
}

// AddGoal inserts a candidate goal (submitted without an identifier) and
// returns it with its assigned identifier and timestamps
func (s *Service) AddGoal(ctx context.Context, candidate domain.Goal) (domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	goal := candidate
	goal.ID = uuid.New().String()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	next := append(append([]domain.Goal(nil), s.goals...), goal)
	if err := s.commit(ctx, next); err != nil {
		return domain.Goal{}, err
	}

	s.log.Info().Str("goal_id", goal.ID).Str("name", goal.Name).Msg("Goal added")
	s.publish("added", goal.ID)
	return goal, nil
}

// Patch describes a partial goal update
type Patch struct {
	Name                *string
	TargetAmount        *decimal.Decimal
	CurrentAmount       *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	Priority            *int
}

// PatchGoal applies the named fields to the goal with the given identifier.
// Unknown identifiers are a silent no-op.
func (s *Service) PatchGoal(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.goals {
		if s.goals[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Debug().Str("goal_id", id).Msg("Patch ignored, goal not found")
		return nil
	}

	updated := s.goals[idx]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		updated.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		updated.CurrentAmount = *patch.CurrentAmount
	}
	if patch.MonthlyContribution != nil {
		updated.MonthlyContribution = *patch.MonthlyContribution
	}
	if patch.Priority != nil {
		updated.Priority = *patch.Priority
	}
	updated.UpdatedAt = s.now()

	next := append([]domain.Goal(nil), s.goals...)
	next[idx] = updated
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("goal_id", id).Msg("Goal patched")
	s.publish("patched", id)
	return nil
}

// DeleteGoal removes the goal with the given identifier, if present
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Goal, 0, len(s.goals))
	found := false
	for i := range s.goals {
		if s.goals[i].ID == id {
			found = true
			continue
		}
		next = append(next, s.goals[i])
	}
	if !found {
		s.log.Debug().Str("goal_id", id).Msg("Delete ignored, goal not found")
		return nil
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("goal_id", id).Msg("Goal deleted")
	s.publish("deleted", id)
	return nil
}

func (s *Service) commit(ctx context.Context, next []domain.Goal) error {
	if err := s.repo.SaveAll(ctx, next); err != nil {
		return fmt.Errorf("failed to persist goals: %w", err)
	}
	s.goals = next
	return nil
}

func (s *Service) publish(action, goalID string) {
	s.bus.Publish(&events.GoalsChangedData{
		Action: action,
		GoalID: goalID,
		Count:  len(s.goals),
	})
}
