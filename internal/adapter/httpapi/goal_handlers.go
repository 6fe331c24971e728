package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/goals"
)

// GoalHandlers handles the financial goal endpoints
type GoalHandlers struct {
	goals *goals.Service
	log   zerolog.Logger
}

// NewGoalHandlers creates a new goal handlers instance
func NewGoalHandlers(goalService *goals.Service, log zerolog.Logger) *GoalHandlers {
	return &GoalHandlers{
		goals: goalService,
		log:   log.With().Str("component", "goal_handlers").Logger(),
	}
}

type goalView struct {
	domain.Goal
	Progress decimal.Decimal `json:"progress"`
}

func newGoalViews(list []domain.Goal) []goalView {
	views := make([]goalView, 0, len(list))
	for _, goal := range list {
		views = append(views, goalView{Goal: goal, Progress: goal.Progress()})
	}
	return views
}

// HandleList returns every goal with its funding progress
func (h *GoalHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goals": newGoalViews(h.goals.Goals()),
	})
}

// HandleAdd validates a candidate goal and stores it
func (h *GoalHandlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Goal
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	candidate.ID = ""

	if err := candidate.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goals.AddGoal(r.Context(), candidate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add goal")
		respondError(w, http.StatusInternalServerError, "failed to add goal")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Objectif ajouté",
		"goal":    goalView{Goal: goal, Progress: goal.Progress()},
	})
}

type goalPatchRequest struct {
	Name                *string          `json:"name"`
	TargetAmount        *decimal.Decimal `json:"targetAmount"`
	CurrentAmount       *decimal.Decimal `json:"currentAmount"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
	Priority            *int             `json:"priority"`
}

// HandlePatch applies a partial update to one goal
func (h *GoalHandlers) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req goalPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.goals.PatchGoal(r.Context(), chi.URLParam(r, "id"), goals.Patch{
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            req.Priority,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to patch goal")
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Objectif mis à jour"})
}

// HandleDelete removes one goal
func (h *GoalHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.goals.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete goal")
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Objectif supprimé"})
}
