package models

import (
	"acelera/src/types"
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry. Duration is in minutes.
type Service struct {
	ID       string          `gorm:"primarykey" json:"id"`
	Name     string          `json:"name"`
	Duration int             `json:"duration"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`

	types.Timestamps
}

func (s Service) Length() time.Duration {
	return time.Duration(s.Duration) * time.Minute
}
