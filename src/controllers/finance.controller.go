package controllers

import (
	"acelera/src/common"
	"acelera/src/config"
	"acelera/src/db"
	"acelera/src/models"
	"acelera/src/types"
	"acelera/src/utils"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCategory = "Outros"

// Transactions returns the ledger, newest first.
func (s *Studio) Transactions(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return common.SortLedger(txs), nil
}

func (s *Studio) CreateTransaction(ctx context.Context, body types.CreateTransactionRequestBody) (*models.Transaction, error) {
	if body.Type != types.TRANSACTION_INCOME && body.Type != types.TRANSACTION_EXPENSE {
		return nil, types.NewValidationError("type", "unknown transaction type %q", body.Type)
	}
	if body.Amount == nil || !body.Amount.IsPositive() {
		return nil, types.NewValidationError("amount", "must be greater than zero")
	}
	if strings.TrimSpace(body.Description) == "" {
		return nil, types.NewValidationError("description", "must not be blank")
	}
	date := s.now()
	if body.Date != "" {
		d, err := common.ComposeStart(body.Date, "12:00", s.loc)
		if err != nil {
			return nil, err
		}
		date = d
	}
	category := strings.TrimSpace(body.Category)
	if category == "" {
		category = defaultCategory
	}
	tx := models.Transaction{
		ID:          uuid.NewString(),
		Type:        body.Type,
		Amount:      body.Amount.Round(2),
		Description: strings.TrimSpace(body.Description),
		Category:    category,
		Date:        date,
		BookingID:   body.BookingID,
	}
	err := s.store.Transaction(ctx, func(st db.Store) error {
		if tx.BookingID != nil {
			if _, err := st.GetBooking(ctx, *tx.BookingID); errors.Is(err, types.ErrNotFound) {
				return types.NewValidationError("booking_id", "unknown booking %s", *tx.BookingID)
			} else if err != nil {
				return err
			}
		}
		return st.CreateTransaction(ctx, &tx)
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

type FinanceSummary struct {
	Revenue decimal.Decimal      `json:"revenue"`
	Expense decimal.Decimal      `json:"expense"`
	Net     decimal.Decimal      `json:"net"`
	Weekly  [7]decimal.Decimal   `json:"weekly_revenue"`
	Ledger  []models.Transaction `json:"ledger"`
}

func (s *Studio) Finance(ctx context.Context) (*FinanceSummary, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &FinanceSummary{
		Revenue: common.TotalRevenue(txs),
		Expense: common.TotalExpense(txs),
		Net:     common.NetBalance(txs),
		Weekly:  common.WeeklyRevenue(txs, common.ComputeWeek(s.Now(), s.loc), s.loc),
		Ledger:  common.SortLedger(txs),
	}, nil
}

type Export struct {
	Name        string
	ContentType string
	Body        []byte
}

// ExportLedger renders the sorted ledger as csv (default) or xlsx.
func (s *Studio) ExportLedger(ctx context.Context, format string) (*Export, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", "csv":
		body, err := utils.LedgerCSV(txs, s.loc)
		if err != nil {
			return nil, err
		}
		return &Export{Name: utils.ExportFileName(config.STUDIO_NAME, s.Now(), "csv"), ContentType: utils.CONTENT_TYPE_CSV, Body: body}, nil
	case "xlsx":
		body, err := utils.LedgerXLSX(txs, s.loc)
		if err != nil {
			return nil, err
		}
		return &Export{Name: utils.ExportFileName(config.STUDIO_NAME, s.Now(), "xlsx"), ContentType: utils.CONTENT_TYPE_XLSX, Body: body}, nil
	}
	return nil, types.NewValidationError("format", "unsupported export format %q", format)
}
