package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v string) *decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return &d
}

func sampleCollection() []domain.Asset {
	return []domain.Asset{
		{ID: "a1", Name: "Compte courant", Type: domain.AssetTypeBankAccount, Value: dec(2450)},
		{ID: "a2", Name: "Livret A", Type: domain.AssetTypeSavingsAccount, Value: dec(15300), Performance: decPtr("3")},
		{ID: "a3", Name: "PEA", Type: domain.AssetTypeInvestmentAccount, Value: dec(0)},
		{ID: "a4", Name: "Air Liquide", Type: domain.AssetTypeStock, Value: dec(1720), Performance: decPtr("8.5"),
			Stock: &domain.StockHolding{Symbol: "AI.PA", Quantity: dec(10), PurchasePrice: dec(172), InvestmentAccountID: "a3"}},
		{ID: "a5", Name: "Bitcoin", Type: domain.AssetTypeCrypto, Value: dec(3200), Performance: decPtr("14.3"),
			Crypto: &domain.CryptoHolding{Symbol: "BTC", Quantity: decimal.NewFromFloat(0.08), PurchasePrice: dec(35000)}},
		{ID: "a6", Name: "Appartement Paris", Type: domain.AssetTypeRealEstate, Value: dec(320000),
			RealEstate: &domain.RealEstateDetails{UsageType: "main"}},
		{ID: "a7", Name: "Or physique", Type: domain.AssetTypeCommodities, Value: dec(4000)},
	}
}

func TestComputeAllocation_BucketsByType(t *testing.T) {
	alloc := ComputeAllocation(sampleCollection())

	assert.True(t, alloc.Stocks.Equal(dec(1720)))
	assert.True(t, alloc.Crypto.Equal(dec(3200)))
	assert.True(t, alloc.RealEstate.Equal(dec(320000)))
	assert.True(t, alloc.Cash.Equal(dec(2450+15300)))
	assert.True(t, alloc.Commodities.Equal(dec(4000)))
	assert.True(t, alloc.Bonds.IsZero())
	assert.True(t, alloc.Other.IsZero())
}

func TestComputeAllocation_AccountContainersAreExcluded(t *testing.T) {
	// Container value lives in the holdings it contains; counting both would
	// double-count, so containers map into no bucket.
	assets := []domain.Asset{
		{Type: domain.AssetTypeInvestmentAccount, Value: dec(5000)},
		{Type: domain.AssetTypeCryptoAccount, Value: dec(800)},
		{Type: domain.AssetTypeStock, Value: dec(5000)},
	}

	alloc := ComputeAllocation(assets)

	assert.True(t, alloc.Total().Equal(dec(5000)))
}

func TestAllocation_TotalCoversEveryBucketedAsset(t *testing.T) {
	assets := sampleCollection()
	alloc := ComputeAllocation(assets)

	// Every non-container asset lands in exactly one bucket, so the bucket sum
	// equals the collection total minus the containers
	containers := dec(0)
	for _, a := range assets {
		if a.Type == domain.AssetTypeInvestmentAccount || a.Type == domain.AssetTypeCryptoAccount {
			containers = containers.Add(a.Value)
		}
	}
	assert.True(t, alloc.Total().Equal(TotalValue(assets).Sub(containers)))
}

func TestGroupByType_PreservesInsertionOrder(t *testing.T) {
	assets := []domain.Asset{
		{ID: "s1", Type: domain.AssetTypeStock, Value: dec(100)},
		{ID: "b1", Type: domain.AssetTypeBankAccount, Value: dec(50)},
		{ID: "s2", Type: domain.AssetTypeStock, Value: dec(200)},
	}

	groups := GroupByType(assets)

	require.Len(t, groups, 2)
	require.Len(t, groups[domain.AssetTypeStock], 2)
	assert.Equal(t, "s1", groups[domain.AssetTypeStock][0].ID)
	assert.Equal(t, "s2", groups[domain.AssetTypeStock][1].ID)
}

func TestTotalValue(t *testing.T) {
	assert.True(t, TotalValue(nil).IsZero())
	assert.True(t, TotalValue(sampleCollection()).Equal(dec(2450+15300+1720+3200+320000+4000)))
}

func TestPercentageOf(t *testing.T) {
	assert.True(t, PercentageOf(dec(25), dec(100)).Equal(dec(25)))
	assert.True(t, PercentageOf(dec(1), dec(3)).Sub(decimal.NewFromFloat(33.33)).Abs().LessThan(decimal.NewFromFloat(0.01)))

	// Never divides by zero
	assert.True(t, PercentageOf(dec(25), dec(0)).IsZero())
	assert.True(t, PercentageOf(dec(25), dec(-10)).IsZero())
}

func TestTopN_RanksByValueDescending(t *testing.T) {
	top := TopN(sampleCollection(), 3)

	require.Len(t, top, 3)
	assert.Equal(t, "a6", top[0].ID) // 320000
	assert.Equal(t, "a2", top[1].ID) // 15300
	assert.Equal(t, "a7", top[2].ID) // 4000
}

func TestTopN_TiesKeepCollectionOrder(t *testing.T) {
	assets := []domain.Asset{
		{ID: "x", Value: dec(100)},
		{ID: "y", Value: dec(100)},
		{ID: "z", Value: dec(200)},
	}

	top := TopN(assets, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "z", top[0].ID)
	assert.Equal(t, "x", top[1].ID)
	assert.Equal(t, "y", top[2].ID)
}

func TestTopN_Bounds(t *testing.T) {
	assets := sampleCollection()

	assert.Nil(t, TopN(assets, 0))
	assert.Nil(t, TopN(assets, -1))
	assert.Len(t, TopN(assets, 100), len(assets))
	assert.Empty(t, TopN(nil, 3))
}

func TestTopN_DoesNotReorderTheInput(t *testing.T) {
	assets := sampleCollection()
	TopN(assets, 3)

	assert.Equal(t, "a1", assets[0].ID)
	assert.Equal(t, "a7", assets[len(assets)-1].ID)
}

func TestAveragePerformance_MeanOverAssetsCarryingOne(t *testing.T) {
	// (3 + 8.5 + 14.3) / 3
	got := AveragePerformance(sampleCollection())
	want, _ := decimal.NewFromString("8.6")
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestAveragePerformance_ZeroWhenNoneCarryOne(t *testing.T) {
	assets := []domain.Asset{
		{Type: domain.AssetTypeBankAccount, Value: dec(100)},
		{Type: domain.AssetTypeCash, Value: dec(50)},
	}
	assert.True(t, AveragePerformance(assets).IsZero())
	assert.True(t, AveragePerformance(nil).IsZero())
}

func TestPeriodGrowth(t *testing.T) {
	values := []decimal.Decimal{dec(1000), dec(1100), dec(1200)}
	assert.True(t, PeriodGrowth(values).Equal(dec(20)))

	assert.True(t, PeriodGrowth([]decimal.Decimal{dec(1000)}).IsZero())
	assert.True(t, PeriodGrowth(nil).IsZero())
	assert.True(t, PeriodGrowth([]decimal.Decimal{dec(0), dec(500)}).IsZero())
}

func TestFilterCategory_All(t *testing.T) {
	assets := sampleCollection()
	assert.Len(t, FilterCategory(assets, CategoryAll), len(assets))
	assert.Len(t, FilterCategory(assets, ""), len(assets))
}

func TestFilterCategory_SavingsKeepsCashAccountsAndResidences(t *testing.T) {
	filtered := FilterCategory(sampleCollection(), CategorySavings)

	ids := make([]string, 0, len(filtered))
	for _, a := range filtered {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "a6"}, ids)
}

func TestFilterCategory_InvestmentsKeepsTheRest(t *testing.T) {
	filtered := FilterCategory(sampleCollection(), CategoryInvestments)

	ids := make([]string, 0, len(filtered))
	for _, a := range filtered {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a3", "a4", "a5", "a7"}, ids)
}

func TestFilterCategory_RentalPropertyIsAnInvestment(t *testing.T) {
	assets := []domain.Asset{
		{ID: "main", Type: domain.AssetTypeRealEstate, Value: dec(300000),
			RealEstate: &domain.RealEstateDetails{UsageType: "main"}},
		{ID: "rental", Type: domain.AssetTypeRealEstate, Value: dec(150000),
			RealEstate: &domain.RealEstateDetails{UsageType: "rental"}},
	}

	investments := FilterCategory(assets, CategoryInvestments)
	require.Len(t, investments, 1)
	assert.Equal(t, "rental", investments[0].ID)

	savings := FilterCategory(assets, CategorySavings)
	require.Len(t, savings, 1)
	assert.Equal(t, "main", savings[0].ID)
}

func TestProjectedHistory_TwelveMonthsEndingAtTotal(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	series := ProjectedHistory(dec(10000), now)

	require.Len(t, series.Dates, 12)
	require.Len(t, series.Values, 12)
	assert.Equal(t, "Juil 2024", series.Dates[0])
	assert.Equal(t, "Juin 2025", series.Dates[11])
	assert.True(t, series.Values[0].Equal(dec(5000)))
	assert.True(t, series.Values[11].Equal(dec(10000)))

	// Monotonically non-decreasing towards the current total
	for i := 1; i < len(series.Values); i++ {
		assert.True(t, series.Values[i].GreaterThanOrEqual(series.Values[i-1]))
	}
}

func TestProjectedHistory_FallsBackToNominalBaseWhenEmpty(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	series := ProjectedHistory(dec(0), now)

	require.Len(t, series.Values, 12)
	assert.True(t, series.Values[11].Equal(dec(1000)))
}
