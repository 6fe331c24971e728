// Package aggregation provides the read-only derived views over an asset
// collection snapshot: grouping, allocation buckets, rankings and performance
// rollups. Nothing here mutates the ledger.
package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Allocation sums asset values into the dashboard's named buckets.
// Cash combines bank accounts, savings accounts and plain cash. Account
// containers (investment-account, crypto-account) map into no bucket: their
// value lives in the holdings they contain, counting both would double-count.
type Allocation struct {
	Stocks      decimal.Decimal `json:"stocks"`
	RealEstate  decimal.Decimal `json:"realEstate"`
	Crypto      decimal.Decimal `json:"crypto"`
	Cash        decimal.Decimal `json:"cash"`
	Bonds       decimal.Decimal `json:"bonds"`
	Commodities decimal.Decimal `json:"commodities"`
	Other       decimal.Decimal `json:"other"`
}

// Total returns the sum over all buckets
func (a Allocation) Total() decimal.Decimal {
	return a.Stocks.
		Add(a.RealEstate).
		Add(a.Crypto).
		Add(a.Cash).
		Add(a.Bonds).
		Add(a.Commodities).
		Add(a.Other)
}

// ComputeAllocation sums the value of every bucketed asset into its bucket.
// All buckets are always returned, zero-valued ones included; hiding empty
// buckets is the caller's concern.
func ComputeAllocation(assets []domain.Asset) Allocation {
	var alloc Allocation
	for i := range assets {
		value := assets[i].Value
		switch assets[i].Type {
		case domain.AssetTypeStock:
			alloc.Stocks = alloc.Stocks.Add(value)
		case domain.AssetTypeRealEstate:
			alloc.RealEstate = alloc.RealEstate.Add(value)
		case domain.AssetTypeCrypto:
			alloc.Crypto = alloc.Crypto.Add(value)
		case domain.AssetTypeBankAccount, domain.AssetTypeSavingsAccount, domain.AssetTypeCash:
			alloc.Cash = alloc.Cash.Add(value)
		case domain.AssetTypeBonds:
			alloc.Bonds = alloc.Bonds.Add(value)
		case domain.AssetTypeCommodities:
			alloc.Commodities = alloc.Commodities.Add(value)
		case domain.AssetTypeOther:
			alloc.Other = alloc.Other.Add(value)
		}
	}
	return alloc
}

// GroupByType splits the collection by asset type, preserving the relative
// insertion order within each group
func GroupByType(assets []domain.Asset) map[domain.AssetType][]domain.Asset {
	groups := make(map[domain.AssetType][]domain.Asset)
	for i := range assets {
		groups[assets[i].Type] = append(groups[assets[i].Type], assets[i])
	}
	return groups
}

// TotalValue sums the value of every asset in the snapshot
func TotalValue(assets []domain.Asset) decimal.Decimal {
	total := decimal.Zero
	for i := range assets {
		total = total.Add(assets[i].Value)
	}
	return total
}

// PercentageOf returns part as a percentage of total, or zero when total is
// not positive. Never divides by zero.
func PercentageOf(part, total decimal.Decimal) decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// TopN returns the n most valuable assets, ties broken by original collection
// order (stable sort). Returns fewer when the collection is smaller than n.
func TopN(assets []domain.Asset, n int) []domain.Asset {
	if n <= 0 {
		return nil
	}
	sorted := domain.CloneCollection(assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value.GreaterThan(sorted[j].Value)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// AveragePerformance returns the arithmetic mean of the performance of the
// assets carrying one, or zero when none do
func AveragePerformance(assets []domain.Asset) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for i := range assets {
		if assets[i].Performance != nil {
			sum = sum.Add(*assets[i].Performance)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// PeriodGrowth returns the growth, in percent, from the first to the last
// value of a series. Zero when the series is shorter than two points or
// starts at zero.
func PeriodGrowth(values []decimal.Decimal) decimal.Decimal {
	if len(values) < 2 {
		return decimal.Zero
	}
	first := values[0]
	if first.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	last := values[len(values)-1]
	return last.Sub(first).Div(first).Mul(hundred)
}
