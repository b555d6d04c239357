package models

import (
	"acelera/src/types"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a ledger entry. Amount is always positive; Type carries the sign.
type Transaction struct {
	ID          string                `gorm:"primarykey" json:"id"`
	Type        types.TransactionType `gorm:"index" json:"type"`
	Amount      decimal.Decimal       `gorm:"type:numeric(12,2)" json:"amount"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Date        time.Time             `gorm:"index" json:"date"`
	BookingID   *string               `json:"booking_id,omitempty"`

	types.Timestamps
}

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == types.TRANSACTION_EXPENSE {
		return t.Amount.Neg()
	}
	return t.Amount
}
