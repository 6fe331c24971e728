package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType discriminates the asset variants tracked by the ledger
type AssetType string

const (
	AssetTypeBankAccount       AssetType = "bank-account"
	AssetTypeSavingsAccount    AssetType = "savings-account"
	AssetTypeInvestmentAccount AssetType = "investment-account"
	AssetTypeCryptoAccount     AssetType = "crypto-account"
	AssetTypeStock             AssetType = "stock"
	AssetTypeCrypto            AssetType = "crypto"
	AssetTypeRealEstate        AssetType = "real-estate"
	AssetTypeBonds             AssetType = "bonds"
	AssetTypeCash              AssetType = "cash"
	AssetTypeCommodities       AssetType = "commodities"
	AssetTypeOther             AssetType = "other"
)

// InvestmentAccountType mirrors the French brokerage account categories
type InvestmentAccountType string

const (
	InvestmentAccountPEA          InvestmentAccountType = "PEA"
	InvestmentAccountCTO          InvestmentAccountType = "CTO"
	InvestmentAccountAssuranceVie InvestmentAccountType = "Assurance Vie"
	InvestmentAccountPER          InvestmentAccountType = "PER"
	InvestmentAccountAutre        InvestmentAccountType = "Autre"
)

// Asset represents one entry in the user's patrimoine.
// Common fields are always present; exactly one variant pointer is non-nil,
// matching Type. Variants carry only the fields relevant to their type, so
// consumers never need "is this field applicable" checks.
type Asset struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        AssetType        `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	Performance *decimal.Decimal `json:"performance,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	Stock             *StockHolding             `json:"stock,omitempty"`
	Crypto            *CryptoHolding            `json:"crypto,omitempty"`
	BankAccount       *BankAccountDetails       `json:"bankAccount,omitempty"`
	SavingsAccount    *SavingsAccountDetails    `json:"savingsAccount,omitempty"`
	InvestmentAccount *InvestmentAccountDetails `json:"investmentAccount,omitempty"`
	CryptoAccount     *CryptoAccountDetails     `json:"cryptoAccount,omitempty"`
	RealEstate        *RealEstateDetails        `json:"realEstate,omitempty"`
}

// StockHolding carries the position data for a stock asset.
// A holding is uniquely identified by (Symbol, InvestmentAccountID): at most
// one stock asset may exist per such pair, purchases of the same pair are
// merged into the existing holding by the ledger.
type StockHolding struct {
	Symbol              string          `json:"symbol"`
	Quantity            decimal.Decimal `json:"quantity"`
	PurchasePrice       decimal.Decimal `json:"purchasePrice"` // weighted-average cost per unit
	InvestmentAccountID string          `json:"investmentAccountId"`
	Transactions        []Transaction   `json:"transactions,omitempty"`
}

// CryptoHolding carries the position data for a crypto asset
type CryptoHolding struct {
	Symbol          string          `json:"symbol"`
	Quantity        decimal.Decimal `json:"quantity"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
	CryptoAccountID string          `json:"cryptoAccountId,omitempty"`
	Transactions    []Transaction   `json:"transactions,omitempty"`
}

// BankAccountDetails carries the fields specific to a current account
type BankAccountDetails struct {
	BankName    string `json:"bankName"`
	AccountName string `json:"accountName,omitempty"`
}

// SavingsAccountDetails carries the fields specific to a savings account (livret)
type SavingsAccountDetails struct {
	BankName     string           `json:"bankName"`
	AccountName  string           `json:"accountName,omitempty"`
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"` // annual, percent
}

// InvestmentAccountDetails carries the fields specific to a brokerage account container
type InvestmentAccountDetails struct {
	AccountType InvestmentAccountType `json:"accountType"`
}

// CryptoAccountDetails carries the fields specific to a crypto platform container
type CryptoAccountDetails struct {
	Platform string `json:"platform"` // Binance, Bitget, Kucoin, Coinbase, Metamask, Phantom, Ledger, Autre
}

// RealEstateDetails carries the property attributes. These are opaque to the
// ledger's algorithm; only UsageType participates in category filtering.
type RealEstateDetails struct {
	PropertyType  string           `json:"propertyType,omitempty"` // apartment, house, building, commercial, land, other
	UsageType     string           `json:"usageType,omitempty"`    // main, secondary, rental
	Surface       *decimal.Decimal `json:"surface,omitempty"`      // square meters
	PropertyTax   *decimal.Decimal `json:"propertyTax,omitempty"`
	HousingTax    *decimal.Decimal `json:"housingTax,omitempty"`
	AnnualRent    *decimal.Decimal `json:"annualRent,omitempty"`
	AnnualFees    *decimal.Decimal `json:"annualFees,omitempty"`
	AnnualCharges *decimal.Decimal `json:"annualCharges,omitempty"`
}

// Validate ensures the asset adheres to domain rules.
// Returns an error if validation fails.
// Validation runs at the ingress boundary (HTTP adapter), before the ledger
// is invoked; the ledger itself assumes already-validated input.
func (a *Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("asset name cannot be empty")
	}
	if a.Value.IsNegative() {
		return errors.New("asset value cannot be negative")
	}

	switch a.Type {
	case AssetTypeStock:
		if a.Stock == nil {
			return errors.New("stock asset must carry stock holding details")
		}
		if strings.TrimSpace(a.Stock.Symbol) == "" {
			return errors.New("stock holding must have a ticker symbol")
		}
		if a.Stock.InvestmentAccountID == "" {
			return errors.New("stock holding must reference an investment account")
		}
		if a.Stock.Quantity.LessThanOrEqual(decimal.Zero) {
			return errors.New("stock quantity must be positive")
		}
		if a.Stock.PurchasePrice.LessThanOrEqual(decimal.Zero) {
			return errors.New("stock purchase price must be positive")
		}
	case AssetTypeCrypto:
		if a.Crypto == nil {
			return errors.New("crypto asset must carry crypto holding details")
		}
		if strings.TrimSpace(a.Crypto.Symbol) == "" {
			return errors.New("crypto holding must have a symbol")
		}
		if a.Crypto.Quantity.LessThanOrEqual(decimal.Zero) {
			return errors.New("crypto quantity must be positive")
		}
	case AssetTypeBankAccount:
		if a.BankAccount == nil || strings.TrimSpace(a.BankAccount.BankName) == "" {
			return errors.New("bank account must have a bank name")
		}
	case AssetTypeSavingsAccount:
		if a.SavingsAccount == nil || strings.TrimSpace(a.SavingsAccount.BankName) == "" {
			return errors.New("savings account must have a bank name")
		}
	case AssetTypeInvestmentAccount:
		if a.InvestmentAccount == nil {
			return errors.New("investment account must carry account details")
		}
		switch a.InvestmentAccount.AccountType {
		case InvestmentAccountPEA, InvestmentAccountCTO, InvestmentAccountAssuranceVie,
			InvestmentAccountPER, InvestmentAccountAutre:
		default:
			return errors.New("investment account type must be PEA, CTO, Assurance Vie, PER or Autre")
		}
	case AssetTypeCryptoAccount:
		if a.CryptoAccount == nil || strings.TrimSpace(a.CryptoAccount.Platform) == "" {
			return errors.New("crypto account must have a platform")
		}
	case AssetTypeRealEstate:
		if a.RealEstate == nil {
			return errors.New("real estate asset must carry property details")
		}
	case AssetTypeBonds, AssetTypeCash, AssetTypeCommodities, AssetTypeOther:
		// Common fields only
	default:
		return errors.New("unknown asset type: " + string(a.Type))
	}

	return nil
}

// MatchesStockPosition reports whether this asset is the stock holding for the
// given ticker and investment account. The ticker comparison is
// case-insensitive; the account comparison is exact.
func (a *Asset) MatchesStockPosition(symbol, investmentAccountID string) bool {
	if a.Type != AssetTypeStock || a.Stock == nil {
		return false
	}
	return strings.EqualFold(a.Stock.Symbol, symbol) &&
		a.Stock.InvestmentAccountID == investmentAccountID
}

// Clone returns a deep copy of the asset. Variant pointers and transaction
// slices are duplicated so callers can mutate the copy freely.
func (a Asset) Clone() Asset {
	c := a
	if a.Performance != nil {
		p := *a.Performance
		c.Performance = &p
	}
	if a.Stock != nil {
		s := *a.Stock
		s.Transactions = append([]Transaction(nil), a.Stock.Transactions...)
		c.Stock = &s
	}
	if a.Crypto != nil {
		cr := *a.Crypto
		cr.Transactions = append([]Transaction(nil), a.Crypto.Transactions...)
		c.Crypto = &cr
	}
	if a.BankAccount != nil {
		b := *a.BankAccount
		c.BankAccount = &b
	}
	if a.SavingsAccount != nil {
		s := *a.SavingsAccount
		c.SavingsAccount = &s
	}
	if a.InvestmentAccount != nil {
		i := *a.InvestmentAccount
		c.InvestmentAccount = &i
	}
	if a.CryptoAccount != nil {
		cc := *a.CryptoAccount
		c.CryptoAccount = &cc
	}
	if a.RealEstate != nil {
		r := *a.RealEstate
		c.RealEstate = &r
	}
	return c
}

// CloneCollection deep-copies a whole snapshot
func CloneCollection(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	out := make([]Asset, len(assets))
	for i := range assets {
		out[i] = assets[i].Clone()
	}
	return out
}
