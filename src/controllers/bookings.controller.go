package controllers

import (
	"acelera/src/common"
	"acelera/src/db"
	"acelera/src/lib"
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const serviceCategory = "Serviço"

func (s *Studio) Bookings(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx)
}

func (s *Studio) Booking(ctx context.Context, id string) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

// CreateBooking books service for client at date/time in the studio
// location. Overlapping bookings are accepted.
func (s *Studio) CreateBooking(ctx context.Context, body types.CreateBookingRequestBody) (*models.Booking, error) {
	var booking models.Booking
	err := s.store.Transaction(ctx, func(tx db.Store) error {
		client, err := tx.GetClient(ctx, body.ClientID)
		if errors.Is(err, types.ErrNotFound) {
			return types.NewValidationError("client_id", "unknown client %s", body.ClientID)
		}
		if err != nil {
			return err
		}
		service, err := tx.GetService(ctx, body.ServiceID)
		if errors.Is(err, types.ErrNotFound) {
			return types.NewValidationError("service_id", "unknown service %s", body.ServiceID)
		}
		if err != nil {
			return err
		}
		start, err := common.ComposeStart(body.Date, body.Time, s.loc)
		if err != nil {
			return err
		}
		booking = common.NewBooking(*client, *service, start)
		return tx.CreateBooking(ctx, &booking)
	})
	if err != nil {
		return nil, err
	}
	lib.IncBookingsCreated("manual")
	s.afterBooking(ctx, &booking, lib.EVENT_BOOKING_CREATED)
	return &booking, nil
}

func (s *Studio) afterBooking(ctx context.Context, b *models.Booking, kind string) {
	s.publish(ctx, kind, b.ID, types.JSONB{
		"client_id": b.ClientID,
		"status":    string(b.Status),
		"start_at":  b.StartAt.Format(time.RFC3339),
	})
	if s.calendar == nil || b.Status != types.BOOKING_CONFIRMED {
		return
	}
	eventID, err := s.calendar.PushBooking(context.WithoutCancel(ctx), b)
	if err != nil {
		log.Printf("Could not sync booking %s: %s\n", b.ID, err.Error())
		return
	}
	log.Printf("Booking %s synced as %s\n", b.ID, eventID)
}

func (s *Studio) updateBooking(ctx context.Context, id string, fn func(b *models.Booking) error) (*models.Booking, error) {
	var booking *models.Booking
	err := s.store.Transaction(ctx, func(tx db.Store) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		booking = b
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Studio) UpdateBookingStatus(ctx context.Context, id string, status types.BookingStatus) (*models.Booking, error) {
	status = types.BookingStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return nil, types.NewValidationError("status", "unknown booking status %q", status)
	}
	b, err := s.updateBooking(ctx, id, func(b *models.Booking) error {
		b.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterBooking(ctx, b, lib.EVENT_BOOKING_UPDATED)
	return b, nil
}

func (s *Studio) SetBookingPrice(ctx context.Context, id string, price decimal.Decimal) (*models.Booking, error) {
	if price.IsNegative() {
		return nil, types.NewValidationError("price", "must not be negative")
	}
	b, err := s.updateBooking(ctx, id, func(b *models.Booking) error {
		if b.IsPaid {
			return types.NewValidationError("price", "booking %s is already paid", b.ID)
		}
		b.Price = price.Round(2)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, lib.EVENT_BOOKING_UPDATED, b.ID, types.JSONB{"price": b.Price.String()})
	return b, nil
}

// MarkBookingPaid settles a booking and records its income in the ledger.
func (s *Studio) MarkBookingPaid(ctx context.Context, id string) (*models.Booking, *models.Transaction, error) {
	var booking *models.Booking
	var income models.Transaction
	err := s.store.Transaction(ctx, func(tx db.Store) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case b.IsPaid:
			return types.NewValidationError("is_paid", "booking %s is already paid", b.ID)
		case b.Status == types.BOOKING_CANCELED:
			return types.NewValidationError("status", "booking %s is canceled", b.ID)
		case !b.Price.IsPositive():
			return types.NewValidationError("price", "booking %s has no price", b.ID)
		}
		b.IsPaid = true
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		bookingID := b.ID
		income = models.Transaction{
			ID:          uuid.NewString(),
			Type:        types.TRANSACTION_INCOME,
			Amount:      b.Price,
			Description: fmt.Sprintf("%s - %s", b.ClientName, b.ServiceName),
			Category:    serviceCategory,
			Date:        s.now(),
			BookingID:   &bookingID,
		}
		booking = b
		return tx.CreateTransaction(ctx, &income)
	})
	if err != nil {
		return nil, nil, err
	}
	s.publish(ctx, lib.EVENT_BOOKING_PAID, booking.ID, types.JSONB{
		"transaction_id": income.ID,
		"amount":         income.Amount.String(),
	})
	return booking, &income, nil
}

type CalendarDay struct {
	Date     time.Time        `json:"date"`
	Bookings []models.Booking `json:"bookings"`
}

type CalendarView struct {
	Week      common.Week   `json:"week"`
	Hours     []int         `json:"hours"`
	Days      []CalendarDay `json:"days"`
	Conflicts [][2]string   `json:"conflicts"`
}

// Calendar returns the week containing ref moved by offset weeks. A zero
// ref means today.
func (s *Studio) Calendar(ctx context.Context, ref time.Time, offset int) (*CalendarView, error) {
	if ref.IsZero() {
		ref = s.Now()
	}
	week := common.ComputeWeek(common.ShiftWeeks(ref, offset), s.loc)
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	view := &CalendarView{
		Week:  week,
		Hours: common.HourGrid(),
		Days:  make([]CalendarDay, 0, len(week.Days)),
	}
	inWeek := make([]models.Booking, 0)
	for _, day := range week.Days {
		dayBookings := common.BookingsForDay(bookings, day, s.loc)
		inWeek = append(inWeek, dayBookings...)
		view.Days = append(view.Days, CalendarDay{Date: day, Bookings: dayBookings})
	}
	view.Conflicts = common.Conflicts(inWeek)
	return view, nil
}
