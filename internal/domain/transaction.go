package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a holding transaction
type TransactionKind string

const (
	TransactionKindBuy  TransactionKind = "buy"
	TransactionKindSell TransactionKind = "sell"
)

// Transaction is an immutable record of one buy or sell event against a
// holding. Transactions are never mutated or removed once appended; together
// they form the audit trail for a holding's cost basis.
type Transaction struct {
	ID          string           `json:"id"`
	Date        time.Time        `json:"date"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       decimal.Decimal  `json:"price"` // unit price paid or received
	Total       decimal.Decimal  `json:"total"` // Quantity * Price
	Kind        TransactionKind  `json:"type"`
	Performance *decimal.Decimal `json:"performance,omitempty"` // realized, percent
}

// NewBuyTransaction builds the record for a purchase of quantity units at the
// given unit price, dated now.
func NewBuyTransaction(quantity, price decimal.Decimal, now time.Time) Transaction {
	return Transaction{
		ID:       uuid.New().String(),
		Date:     now,
		Quantity: quantity,
		Price:    price,
		Total:    quantity.Mul(price),
		Kind:     TransactionKindBuy,
	}
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction must have an identifier")
	}
	if t.Kind != TransactionKindBuy && t.Kind != TransactionKindSell {
		return errors.New("transaction type must be buy or sell")
	}
	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction quantity must be positive")
	}
	if t.Price.IsNegative() {
		return errors.New("transaction price cannot be negative")
	}
	if !t.Total.Equal(t.Quantity.Mul(t.Price)) {
		return errors.New("transaction total must equal quantity times price")
	}
	return nil
}
