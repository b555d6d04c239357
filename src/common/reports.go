package common

import (
	"acelera/src/models"
	"acelera/src/types"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func sumByType(transactions []models.Transaction, t types.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func TotalRevenue(transactions []models.Transaction) decimal.Decimal {
	return sumByType(transactions, types.TRANSACTION_INCOME)
}

func TotalExpense(transactions []models.Transaction) decimal.Decimal {
	return sumByType(transactions, types.TRANSACTION_EXPENSE)
}

func NetBalance(transactions []models.Transaction) decimal.Decimal {
	return TotalRevenue(transactions).Sub(TotalExpense(transactions))
}

func ActiveBookingCount(bookings []models.Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status.IsActive() {
			n++
		}
	}
	return n
}

// PendingRevenue sums the price of unpaid bookings that were not canceled.
func PendingRevenue(bookings []models.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bookings {
		if !b.IsPaid && b.Status != types.BOOKING_CANCELED {
			total = total.Add(b.Price)
		}
	}
	return total
}

// NextUp returns the first n bookings by start time.
func NextUp(bookings []models.Booking, n int) []models.Booking {
	sorted := slices.Clone(bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartAt.Before(sorted[j].StartAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = make([]models.Booking, 0)
	}
	return sorted
}

// WeeklyRevenue buckets income of the week per weekday, Monday first.
func WeeklyRevenue(transactions []models.Transaction, week Week, loc *time.Location) [7]decimal.Decimal {
	var out [7]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}
	for _, tx := range transactions {
		if tx.Type != types.TRANSACTION_INCOME || !week.Contains(tx.Date) {
			continue
		}
		for i, day := range week.Days {
			if SameDay(tx.Date, day, loc) {
				out[i] = out[i].Add(tx.Amount)
				break
			}
		}
	}
	return out
}

// SortLedger orders transactions newest first, ties keep input order.
func SortLedger(transactions []models.Transaction) []models.Transaction {
	sorted := slices.Clone(transactions)
	if sorted == nil {
		sorted = make([]models.Transaction, 0)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// SearchClients matches q against name or email, ignoring case.
func SearchClients(clients []models.Client, q string) []models.Client {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}
