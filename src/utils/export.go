package utils

import (
	"acelera/src/config"
	"acelera/src/models"
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
)

const (
	CONTENT_TYPE_CSV  = "text/csv; charset=utf-8"
	CONTENT_TYPE_XLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ledgerHeader = []string{"date", "description", "category", "type", "amount", "booking_id"}

func ledgerRow(tx models.Transaction, loc *time.Location) []string {
	bookingID := ""
	if tx.BookingID != nil {
		bookingID = *tx.BookingID
	}
	return []string{
		tx.Date.In(loc).Format(config.DATE_FORMAT),
		tx.Description,
		tx.Category,
		string(tx.Type),
		tx.Amount.StringFixed(2),
		bookingID,
	}
}

// LedgerCSV writes the ledger rows in the order given.
func LedgerCSV(txs []models.Transaction, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ledgerHeader); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if err := w.Write(ledgerRow(tx, loc)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LedgerXLSX writes the same columns as LedgerCSV with signed numeric amounts and
// a closing net balance row.
func LedgerXLSX(txs []models.Transaction, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Livro Caixa"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, h := range ledgerHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, tx := range txs {
		row := ledgerRow(tx, loc)
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			var val any = v
			if c == 4 {
				val = tx.Signed().InexactFloat64()
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}
	if len(txs) > 0 {
		total := len(txs) + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", total), "NET")
		if err := f.SetCellFormula(sheet, fmt.Sprintf("E%d", total), fmt.Sprintf("SUM(E2:E%d)", total-1)); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFileName is a slugged name like "acelera-tattoo-livro-caixa-2024-06-10.csv".
func ExportFileName(studio string, at time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", slug.Make(studio+" livro caixa"), at.Format(config.DATE_FORMAT), ext)
}
