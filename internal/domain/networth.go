package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetWorthPoint is one dated valuation of the whole asset collection.
// Points are appended by the history recorder and never rewritten, so the
// series can back the net-worth chart without recomputation.
type NetWorthPoint struct {
	ID         string          `json:"id"`
	RecordedAt time.Time       `json:"recordedAt"`
	Total      decimal.Decimal `json:"total"`
}
