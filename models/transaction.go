package models

import (
	"time"

	"gorm.io/gorm"
)

type TransactionKind string

const (
	TransactionIncome  TransactionKind = "income"
	TransactionExpense TransactionKind = "expense"
)

type TransactionSource string

const (
	SourcePayment    TransactionSource = "payment"
	SourceSettlement TransactionSource = "settlement"
	SourceManual     TransactionSource = "manual"
)

// Transaction is an append-only ledger entry. Entries are created from
// payments and consignment settlements, or entered manually; they are never
// updated in place.
type Transaction struct {
	gorm.Model
	Kind        TransactionKind   `json:"kind"`
	Amount      float64           `json:"amount"`
	Source      TransactionSource `json:"source"`
	Description string            `json:"description"`
	PaymentID   *uint             `json:"payment_id"`
	Payment     *Payment          `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now()
	}
	if t.Source == "" {
		t.Source = SourceManual
	}
	return nil
}
