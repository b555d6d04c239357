package common

import (
	"acelera/src/config"
	"acelera/src/models"
	"acelera/src/types"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Week is a Monday-start, 7-day window.
type Week struct {
	Start time.Time    `json:"start"`
	End   time.Time    `json:"end"`
	Days  [7]time.Time `json:"days"`
}

// ComputeWeek returns the week containing ref in loc. Days are midnights;
// End is the last instant of Sunday.
func ComputeWeek(ref time.Time, loc *time.Location) Week {
	local := ref.In(loc)
	// time.Weekday starts on Sunday
	back := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	var w Week
	for i := range w.Days {
		w.Days[i] = time.Date(y, m, d-back+i, 0, 0, 0, 0, loc)
	}
	w.Start = w.Days[0]
	w.End = time.Date(y, m, d-back+7, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return w
}

func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func NextWeek(ref time.Time) time.Time {
	return ref.AddDate(0, 0, 7)
}

func PrevWeek(ref time.Time) time.Time {
	return ref.AddDate(0, 0, -7)
}

// ShiftWeeks moves ref by n weeks, n may be negative.
func ShiftWeeks(ref time.Time, n int) time.Time {
	return ref.AddDate(0, 0, 7*n)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// BookingsForDay keeps the bookings starting on day's calendar date and
// orders them by start, ties keep input order.
func BookingsForDay(bookings []models.Booking, day time.Time, loc *time.Location) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range bookings {
		if SameDay(b.StartAt, day, loc) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out
}

// Overlaps reports whether two intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflicts lists pairs of active bookings whose intervals intersect.
// Nothing is rejected on that basis; the pairs are only reported.
func Conflicts(bookings []models.Booking) [][2]string {
	active := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status.IsActive() {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartAt.Before(active[j].StartAt)
	})
	pairs := make([][2]string, 0)
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			if !active[j].StartAt.Before(active[i].EndAt) {
				break
			}
			if Overlaps(active[i].StartAt, active[i].EndAt, active[j].StartAt, active[j].EndAt) {
				pairs = append(pairs, [2]string{active[i].ID, active[j].ID})
			}
		}
	}
	return pairs
}

// ComposeStart joins a yyyy-MM-dd date and an HH:mm clock in loc, seconds zeroed.
func ComposeStart(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(config.DATE_FORMAT, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, types.NewValidationError("date", "expected yyyy-MM-dd, got %q", date)
	}
	c, err := time.Parse(config.CLOCK_FORMAT, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, types.NewValidationError("time", "expected HH:mm, got %q", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// NewBooking builds a confirmed, unpaid booking of service for client.
func NewBooking(client models.Client, service models.Service, start time.Time) models.Booking {
	serviceID := service.ID
	return models.Booking{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		ServiceID:   &serviceID,
		ServiceName: service.Name,
		StartAt:     start,
		EndAt:       start.Add(service.Length()),
		Status:      types.BOOKING_CONFIRMED,
		Price:       service.Price,
		IsPaid:      false,
	}
}

// HourGrid is the range of hours shown on the week view.
func HourGrid() []int {
	hours := make([]int, 0, 13)
	for h := 8; h <= 20; h++ {
		hours = append(hours, h)
	}
	return hours
}
