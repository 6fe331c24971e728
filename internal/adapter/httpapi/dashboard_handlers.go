package httpapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/usecase/aggregation"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/history"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/ledger"
)

// DashboardHandlers composes the aggregated dashboard view
type DashboardHandlers struct {
	ledger   *ledger.Service
	recorder *history.Recorder
	log      zerolog.Logger
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(ledgerService *ledger.Service, recorder *history.Recorder, log zerolog.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		ledger:   ledgerService,
		recorder: recorder,
		log:      log.With().Str("component", "dashboard_handlers").Logger(),
	}
}

type allocationPercentages struct {
	Stocks      decimal.Decimal `json:"stocks"`
	RealEstate  decimal.Decimal `json:"realEstate"`
	Crypto      decimal.Decimal `json:"crypto"`
	Cash        decimal.Decimal `json:"cash"`
	Bonds       decimal.Decimal `json:"bonds"`
	Commodities decimal.Decimal `json:"commodities"`
	Other       decimal.Decimal `json:"other"`
}

type dashboardResponse struct {
	Category           aggregation.CategoryFilter `json:"category"`
	TotalValue         decimal.Decimal            `json:"totalValue"`
	Allocation         aggregation.Allocation     `json:"allocation"`
	Percentages        allocationPercentages      `json:"percentages"`
	TopAssets          []assetView                `json:"topAssets"`
	AveragePerformance decimal.Decimal            `json:"averagePerformance"`
	History            aggregation.HistorySeries  `json:"history"`
	HistorySource      string                     `json:"historySource"` // recorded or projected
	PeriodGrowth       decimal.Decimal            `json:"periodGrowth"`
}

// HandleDashboard returns the aggregated view over the current snapshot,
// optionally narrowed with ?category=investments|savings
func (h *DashboardHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	category := aggregation.CategoryFilter(r.URL.Query().Get("category"))
	switch category {
	case aggregation.CategoryAll, aggregation.CategoryInvestments, aggregation.CategorySavings, "":
	default:
		respondError(w, http.StatusBadRequest, "unknown category filter")
		return
	}
	if category == "" {
		category = aggregation.CategoryAll
	}

	collection := h.ledger.Assets()
	filtered := aggregation.FilterCategory(collection, category)
	totalValue := aggregation.TotalValue(filtered)
	allocation := aggregation.ComputeAllocation(filtered)

	series, source := h.historySeries(r, totalValue)

	respondJSON(w, http.StatusOK, dashboardResponse{
		Category:   category,
		TotalValue: totalValue,
		Allocation: allocation,
		Percentages: allocationPercentages{
			Stocks:      aggregation.PercentageOf(allocation.Stocks, totalValue),
			RealEstate:  aggregation.PercentageOf(allocation.RealEstate, totalValue),
			Crypto:      aggregation.PercentageOf(allocation.Crypto, totalValue),
			Cash:        aggregation.PercentageOf(allocation.Cash, totalValue),
			Bonds:       aggregation.PercentageOf(allocation.Bonds, totalValue),
			Commodities: aggregation.PercentageOf(allocation.Commodities, totalValue),
			Other:       aggregation.PercentageOf(allocation.Other, totalValue),
		},
		TopAssets:          newAssetViews(collection, aggregation.TopN(filtered, 3)),
		AveragePerformance: aggregation.AveragePerformance(filtered),
		History:            series,
		HistorySource:      source,
		PeriodGrowth:       aggregation.PeriodGrowth(series.Values),
	})
}

// historySeries prefers the recorded net-worth series and falls back to the
// projected one while fewer than two points exist
func (h *DashboardHandlers) historySeries(r *http.Request, totalValue decimal.Decimal) (aggregation.HistorySeries, string) {
	points, err := h.recorder.History(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to load net-worth history, using projection")
	}
	if len(points) < 2 {
		return aggregation.ProjectedHistory(totalValue, time.Now()), "projected"
	}

	series := aggregation.HistorySeries{
		Dates:  make([]string, 0, len(points)),
		Values: make([]decimal.Decimal, 0, len(points)),
	}
	for _, point := range points {
		series.Dates = append(series.Dates, point.RecordedAt.Format("2006-01-02"))
		series.Values = append(series.Values, point.Total)
	}
	return series, "recorded"
}
