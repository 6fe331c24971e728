package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a financial project the user is saving towards
// (apport immobilier, travaux, voyage, ...)
type Goal struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	CurrentAmount       decimal.Decimal `json:"currentAmount"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	Priority            int             `json:"priority"` // lower = more important
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Validate ensures the goal adheres to domain rules
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("goal name cannot be empty")
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("goal target amount must be positive")
	}
	if g.CurrentAmount.IsNegative() {
		return errors.New("goal current amount cannot be negative")
	}
	if g.MonthlyContribution.IsNegative() {
		return errors.New("goal monthly contribution cannot be negative")
	}
	return nil
}

// Progress returns the funded percentage of the goal, capped at 100.
// Returns zero when the target amount is zero, never a division error.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	progress := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}
