// Package seeder provides the built-in sample data shown on first start,
// before the user has persisted anything.
package seeder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/patrimoine-backend/internal/domain"
)

// Fixed UUIDs for the sample collection, so reseeding after a wiped store is
// deterministic
var (
	SeedBankAccountID       = uuid.MustParse("10000000-0000-0000-0000-000000000001").String()
	SeedSavingsAccountID    = uuid.MustParse("10000000-0000-0000-0000-000000000002").String()
	SeedInvestmentAccountID = uuid.MustParse("10000000-0000-0000-0000-000000000003").String()
	SeedStockID             = uuid.MustParse("10000000-0000-0000-0000-000000000004").String()
	SeedCryptoAccountID     = uuid.MustParse("10000000-0000-0000-0000-000000000005").String()
	SeedCryptoID            = uuid.MustParse("10000000-0000-0000-0000-000000000006").String()
	SeedRealEstateID        = uuid.MustParse("10000000-0000-0000-0000-000000000007").String()

	SeedGoalCushionID  = uuid.MustParse("20000000-0000-0000-0000-000000000001").String()
	SeedGoalPropertyID = uuid.MustParse("20000000-0000-0000-0000-000000000002").String()
)

var seedTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// DefaultAssets returns the sample collection. Every invariant the ledger
// maintains already holds here: unique identifiers, stock value equal to
// quantity times purchase price, a seeded transaction history.
func DefaultAssets() []domain.Asset {
	return []domain.Asset{
		{
			ID:        SeedBankAccountID,
			Name:      "Compte courant BNP",
			Type:      domain.AssetTypeBankAccount,
			Value:     dec("2450"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
			BankAccount: &domain.BankAccountDetails{
				BankName:    "BNP Paribas",
				AccountName: "Compte principal",
			},
		},
		{
			ID:        SeedSavingsAccountID,
			Name:      "Livret A",
			Type:      domain.AssetTypeSavingsAccount,
			Value:     dec("15300"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
			SavingsAccount: &domain.SavingsAccountDetails{
				BankName:     "Caisse d'Épargne",
				AccountName:  "Livret A",
				InterestRate: decPtr("3"),
			},
		},
		{
			ID:        SeedInvestmentAccountID,
			Name:      "PEA Boursorama",
			Type:      domain.AssetTypeInvestmentAccount,
			Value:     dec("0"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
			InvestmentAccount: &domain.InvestmentAccountDetails{
				AccountType: domain.InvestmentAccountPEA,
			},
		},
		{
			ID:          SeedStockID,
			Name:        "Air Liquide",
			Type:        domain.AssetTypeStock,
			Value:       dec("1720"),
			Performance: decPtr("8.4"),
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
			Stock: &domain.StockHolding{
				Symbol:              "AI.PA",
				Quantity:            dec("10"),
				PurchasePrice:       dec("172"),
				InvestmentAccountID: SeedInvestmentAccountID,
				Transactions: []domain.Transaction{
					{
						ID:       uuid.MustParse("30000000-0000-0000-0000-000000000001").String(),
						Date:     seedTime,
						Quantity: dec("10"),
						Price:    dec("172"),
						Total:    dec("1720"),
						Kind:     domain.TransactionKindBuy,
					},
				},
			},
		},
		{
			ID:        SeedCryptoAccountID,
			Name:      "Binance",
			Type:      domain.AssetTypeCryptoAccount,
			Value:     dec("0"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
			CryptoAccount: &domain.CryptoAccountDetails{
				Platform: "Binance",
			},
		},
		{
			ID:          SeedCryptoID,
			Name:        "Bitcoin",
			Type:        domain.AssetTypeCrypto,
			Value:       dec("3200"),
			Performance: decPtr("12.1"),
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
			Crypto: &domain.CryptoHolding{
				Symbol:          "BTC",
				Quantity:        dec("0.08"),
				PurchasePrice:   dec("35000"),
				CryptoAccountID: SeedCryptoAccountID,
				Transactions: []domain.Transaction{
					{
						ID:       uuid.MustParse("30000000-0000-0000-0000-000000000002").String(),
						Date:     seedTime,
						Quantity: dec("0.08"),
						Price:    dec("35000"),
						Total:    dec("2800"),
						Kind:     domain.TransactionKindBuy,
					},
				},
			},
		},
		{
			ID:        SeedRealEstateID,
			Name:      "Appartement Paris 11e",
			Type:      domain.AssetTypeRealEstate,
			Value:     dec("320000"),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
			RealEstate: &domain.RealEstateDetails{
				PropertyType: "apartment",
				UsageType:    "main",
				Surface:      decPtr("42"),
				PropertyTax:  decPtr("980"),
				HousingTax:   decPtr("0"),
			},
		},
	}
}

// DefaultGoals returns the sample financial projects
func DefaultGoals() []domain.Goal {
	return []domain.Goal{
		{
			ID:                  SeedGoalCushionID,
			Name:                "Épargne de précaution",
			TargetAmount:        dec("10000"),
			CurrentAmount:       dec("6500"),
			MonthlyContribution: dec("300"),
			Priority:            1,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
		{
			ID:                  SeedGoalPropertyID,
			Name:                "Apport résidence secondaire",
			TargetAmount:        dec("40000"),
			CurrentAmount:       dec("5200"),
			MonthlyContribution: dec("450"),
			Priority:            2,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
	}
}
