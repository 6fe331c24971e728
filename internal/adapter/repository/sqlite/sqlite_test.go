package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

var memoryDBCounter int

// newTestDB opens a fresh in-memory database with the schema applied
func newTestDB(t *testing.T) *DB {
	t.Helper()

	memoryDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", memoryDBCounter)
	db, err := NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

func TestAssetRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAssetRepository(db)

	perf := decimal.NewFromFloat(8.4)
	assets := []domain.Asset{
		{
			ID:          uuid.New().String(),
			Name:        "Air Liquide",
			Type:        domain.AssetTypeStock,
			Value:       decimal.NewFromInt(1720),
			Performance: &perf,
			CreatedAt:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			Stock: &domain.StockHolding{
				Symbol:              "AI.PA",
				Quantity:            decimal.NewFromInt(10),
				PurchasePrice:       decimal.NewFromInt(172),
				InvestmentAccountID: "acc-1",
				Transactions: []domain.Transaction{
					domain.NewBuyTransaction(decimal.NewFromInt(10), decimal.NewFromInt(172),
						time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)),
				},
			},
		},
		{
			ID:             uuid.New().String(),
			Name:           "Livret A",
			Type:           domain.AssetTypeSavingsAccount,
			Value:          decimal.NewFromInt(15300),
			SavingsAccount: &domain.SavingsAccountDetails{BankName: "Caisse d'Épargne"},
		},
	}

	require.NoError(t, repo.SaveCollection(ctx, assets))

	loaded, err := repo.LoadCollection(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, assets[0].ID, loaded[0].ID)
	assert.True(t, loaded[0].Value.Equal(decimal.NewFromInt(1720)))
	require.NotNil(t, loaded[0].Stock)
	assert.Equal(t, "AI.PA", loaded[0].Stock.Symbol)
	require.Len(t, loaded[0].Stock.Transactions, 1)
	assert.True(t, loaded[0].Stock.Transactions[0].Total.Equal(decimal.NewFromInt(1720)))
	require.NotNil(t, loaded[0].Performance)
	assert.True(t, loaded[0].Performance.Equal(perf))
	assert.Nil(t, loaded[1].Stock)
}

func TestAssetRepository_SaveReplacesThePreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAssetRepository(db)

	first := []domain.Asset{{ID: "a1", Name: "One", Type: domain.AssetTypeCash, Value: decimal.NewFromInt(1)}}
	second := []domain.Asset{
		{ID: "a2", Name: "Two", Type: domain.AssetTypeCash, Value: decimal.NewFromInt(2)},
		{ID: "a3", Name: "Three", Type: domain.AssetTypeCash, Value: decimal.NewFromInt(3)},
	}

	require.NoError(t, repo.SaveCollection(ctx, first))
	require.NoError(t, repo.SaveCollection(ctx, second))

	loaded, err := repo.LoadCollection(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a2", loaded[0].ID)
}

func TestAssetRepository_NotFoundWhenNeverSaved(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAssetRepository(db)

	_, err := repo.LoadCollection(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestAssetRepository_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAssetRepository(db)

	_, err := db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)`,
		"financial-assets", "{not valid json", time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	_, err = repo.LoadCollection(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
}

func TestGoalRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGoalRepository(db)

	goals := []domain.Goal{{
		ID:                  uuid.New().String(),
		Name:                "Épargne de précaution",
		TargetAmount:        decimal.NewFromInt(10000),
		CurrentAmount:       decimal.NewFromInt(6500),
		MonthlyContribution: decimal.NewFromInt(300),
		Priority:            1,
	}}

	require.NoError(t, repo.SaveAll(ctx, goals))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, goals[0].ID, loaded[0].ID)
	assert.True(t, loaded[0].TargetAmount.Equal(decimal.NewFromInt(10000)))
}

func TestGoalRepository_NotFoundWhenNeverSaved(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGoalRepository(db)

	_, err := repo.LoadAll(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRepositories_UseIndependentKeys(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	assetRepo := NewAssetRepository(db)
	goalRepo := NewGoalRepository(db)

	require.NoError(t, assetRepo.SaveCollection(ctx, []domain.Asset{
		{ID: "a1", Name: "Cash", Type: domain.AssetTypeCash, Value: decimal.NewFromInt(1)},
	}))

	// The goal snapshot is untouched by asset writes
	_, err := goalRepo.LoadAll(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestHistoryRepository_AppendAndListOrdered(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	// Append out of order; List returns them by recording time
	for _, offset := range []int{2, 0, 1} {
		point := domain.NetWorthPoint{
			ID:         uuid.New().String(),
			RecordedAt: base.AddDate(0, 0, offset),
			Total:      decimal.NewFromInt(int64(340000 + offset*1000)),
		}
		require.NoError(t, repo.Append(ctx, point))
	}

	points, err := repo.List(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[0].RecordedAt.Before(points[1].RecordedAt))
	assert.True(t, points[1].RecordedAt.Before(points[2].RecordedAt))
	assert.True(t, points[0].Total.Equal(decimal.NewFromInt(340000)))
}

func TestHistoryRepository_ListHonorsBounds(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	for offset := 0; offset < 5; offset++ {
		require.NoError(t, repo.Append(ctx, domain.NetWorthPoint{
			ID:         uuid.New().String(),
			RecordedAt: base.AddDate(0, 0, offset),
			Total:      decimal.NewFromInt(1000),
		}))
	}

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)

	points, err := repo.List(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	points, err = repo.List(ctx, from, time.Time{})
	require.NoError(t, err)
	assert.Len(t, points, 4)

	points, err = repo.List(ctx, time.Time{}, to)
	require.NoError(t, err)
	assert.Len(t, points, 4)
}

func TestHistoryRepository_PreservesDecimalPrecision(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	total, _ := decimal.NewFromString("340123.45")
	require.NoError(t, repo.Append(ctx, domain.NetWorthPoint{
		ID:         uuid.New().String(),
		RecordedAt: time.Now(),
		Total:      total,
	}))

	points, err := repo.List(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Total.Equal(total))
}
