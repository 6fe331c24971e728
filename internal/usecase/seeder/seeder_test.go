package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

func TestDefaultAssets_AreValidAndUnique(t *testing.T) {
	assets := DefaultAssets()
	require.NotEmpty(t, assets)

	seen := make(map[string]bool)
	for _, asset := range assets {
		assert.NoError(t, asset.Validate(), asset.Name)
		assert.False(t, seen[asset.ID], "duplicate seed identifier %s", asset.ID)
		seen[asset.ID] = true
	}
}

func TestDefaultAssets_StockInvariantsHold(t *testing.T) {
	assets := DefaultAssets()

	var stock *domain.Asset
	for i := range assets {
		if assets[i].Type == domain.AssetTypeStock {
			stock = &assets[i]
			break
		}
	}
	require.NotNil(t, stock)

	// Value equals quantity times cost basis, with the initial purchase in
	// the transaction history
	assert.True(t, stock.Value.Equal(stock.Stock.Quantity.Mul(stock.Stock.PurchasePrice)))
	require.Len(t, stock.Stock.Transactions, 1)
	assert.Equal(t, domain.TransactionKindBuy, stock.Stock.Transactions[0].Kind)

	// The holding references an account that exists in the seed collection
	found := false
	for _, a := range assets {
		if a.ID == stock.Stock.InvestmentAccountID {
			assert.Equal(t, domain.AssetTypeInvestmentAccount, a.Type)
			found = true
		}
	}
	assert.True(t, found, "seed stock must reference a seeded investment account")
}

func TestDefaultAssets_ReturnsFreshCopies(t *testing.T) {
	first := DefaultAssets()
	first[0].Name = "mutated"

	second := DefaultAssets()
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestDefaultGoals_AreValidAndUnique(t *testing.T) {
	goals := DefaultGoals()
	require.NotEmpty(t, goals)

	seen := make(map[string]bool)
	for _, goal := range goals {
		assert.NoError(t, goal.Validate(), goal.Name)
		assert.False(t, seen[goal.ID], "duplicate seed identifier %s", goal.ID)
		seen[goal.ID] = true
	}
}
