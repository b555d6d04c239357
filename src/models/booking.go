package models

import (
	"acelera/src/types"
	"time"

	"github.com/shopspring/decimal"
)

// Booking keeps snapshots of the client and service names taken at creation
// time; they are not refreshed when the client or service changes.
type Booking struct {
	ID          string              `gorm:"primarykey" json:"id"`
	ClientID    string              `gorm:"index" json:"client_id"`
	ClientName  string              `json:"client_name"`
	ClientPhone string              `json:"client_phone,omitempty"`
	ServiceID   *string             `json:"service_id,omitempty"`
	ServiceName string              `json:"service_name"`
	StartAt     time.Time           `gorm:"index" json:"start_at"`
	EndAt       time.Time           `json:"end_at"`
	Status      types.BookingStatus `gorm:"index" json:"status"`
	Price       decimal.Decimal     `gorm:"type:numeric(12,2)" json:"price"`
	IsPaid      bool                `json:"is_paid"`
	RequestID   *string             `gorm:"index" json:"request_id,omitempty"`

	types.Timestamps
}

func (b Booking) Clone() Booking {
	if b.ServiceID != nil {
		id := *b.ServiceID
		b.ServiceID = &id
	}
	if b.RequestID != nil {
		id := *b.RequestID
		b.RequestID = &id
	}
	return b
}
