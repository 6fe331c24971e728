package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

// CategoryFilter narrows the dashboard to one side of the patrimoine
type CategoryFilter string

const (
	// CategoryAll keeps every asset
	CategoryAll CategoryFilter = "all"
	// CategoryInvestments keeps financial investments: everything except
	// bank/savings accounts and main or secondary residences
	CategoryInvestments CategoryFilter = "investments"
	// CategorySavings keeps bank accounts, savings accounts and main or
	// secondary residences
	CategorySavings CategoryFilter = "savings"
)

// FilterCategory returns the assets matching the filter, in collection order.
// Real estate splits on usage: a main or secondary residence counts as
// savings, a rental property as an investment.
func FilterCategory(assets []domain.Asset, filter CategoryFilter) []domain.Asset {
	if filter == CategoryAll || filter == "" {
		return assets
	}

	var out []domain.Asset
	for i := range assets {
		if isResidence(&assets[i]) || isCashAccount(&assets[i]) {
			if filter == CategorySavings {
				out = append(out, assets[i])
			}
			continue
		}
		if filter == CategoryInvestments {
			out = append(out, assets[i])
		}
	}
	return out
}

func isResidence(a *domain.Asset) bool {
	if a.Type != domain.AssetTypeRealEstate || a.RealEstate == nil {
		return false
	}
	return a.RealEstate.UsageType == "main" || a.RealEstate.UsageType == "secondary"
}

func isCashAccount(a *domain.Asset) bool {
	return a.Type == domain.AssetTypeBankAccount || a.Type == domain.AssetTypeSavingsAccount
}

// Growth factors shaping the projected series towards the current total
var projectionFactors = []string{
	"0.5", "0.55", "0.6", "0.65", "0.7", "0.75", "0.8", "0.85", "0.9", "0.95", "0.98", "1",
}

var frenchMonths = []string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin", "Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// HistorySeries is a chart-ready net-worth series
type HistorySeries struct {
	Dates  []string          `json:"dates"`
	Values []decimal.Decimal `json:"values"`
}

// ProjectedHistory synthesizes a coherent 12-month series ending at the
// current total, for collections that predate the recorder. Months are
// labelled in French, ending at now's month.
func ProjectedHistory(total decimal.Decimal, now time.Time) HistorySeries {
	base := total
	if base.LessThanOrEqual(decimal.Zero) {
		base = decimal.NewFromInt(1000)
	}

	series := HistorySeries{
		Dates:  make([]string, 0, len(projectionFactors)),
		Values: make([]decimal.Decimal, 0, len(projectionFactors)),
	}
	for i, factor := range projectionFactors {
		month := now.AddDate(0, i-len(projectionFactors)+1, 0)
		series.Dates = append(series.Dates,
			frenchMonths[int(month.Month())-1]+" "+month.Format("2006"))
		f, _ := decimal.NewFromString(factor)
		series.Values = append(series.Values, base.Mul(f).Round(0))
	}
	return series
}
