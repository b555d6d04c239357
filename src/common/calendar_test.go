package common

import (
	"acelera/src/models"
	"acelera/src/types"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestComputeWeek(t *testing.T) {
	for _, name := range []string{"UTC", "America/Sao_Paulo", "America/New_York"} {
		loc := mustLoad(t, name)
		start := time.Date(2024, time.January, 1, 0, 30, 0, 0, loc)
		for h := 0; h < 24*400; h += 7 {
			ref := start.Add(time.Duration(h) * time.Hour)
			w := ComputeWeek(ref, loc)

			assert.Equal(t, time.Monday, w.Days[0].Weekday(), "%s %s", name, ref)
			assert.True(t, w.Contains(ref), "%s: %s not in [%s, %s]", name, ref, w.Start, w.End)
			assert.Equal(t, time.Sunday, w.End.Weekday())
			for i := 1; i < 7; i++ {
				prev, cur := w.Days[i-1], w.Days[i]
				assert.Equal(t, prev.AddDate(0, 0, 1), cur)
				assert.Equal(t, 0, cur.Hour())
			}
		}
	}
}

func TestComputeWeekKnownDates(t *testing.T) {
	loc := time.UTC
	s := ComputeWeek(time.Date(2024, time.June, 16, 23, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, loc), s.Start)
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, loc), s.Days[6])

	m := ComputeWeek(time.Date(2024, time.June, 10, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, s.Start, m.Start)

	next := ComputeWeek(NextWeek(time.Date(2024, time.June, 12, 9, 0, 0, 0, loc)), loc)
	assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, loc), next.Start)
	prev := ComputeWeek(PrevWeek(time.Date(2024, time.June, 12, 9, 0, 0, 0, loc)), loc)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, loc), prev.Start)
	assert.Equal(t, prev.Start, ComputeWeek(ShiftWeeks(time.Date(2024, time.June, 12, 9, 0, 0, 0, loc), -1), loc).Start)
}

func TestBookingsForDay(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, loc)
	at := func(d, h, m int) time.Time { return time.Date(2024, time.June, d, h, m, 0, 0, loc) }
	bookings := []models.Booking{
		{ID: "late", StartAt: at(10, 18, 0)},
		{ID: "tie-a", StartAt: at(10, 9, 0)},
		{ID: "other-day", StartAt: at(11, 9, 0)},
		{ID: "early", StartAt: at(10, 8, 0)},
		{ID: "tie-b", StartAt: at(10, 9, 0)},
		// 23:30 local is already the 11th in UTC
		{ID: "night", StartAt: at(10, 23, 30)},
		{ID: "prev-night", StartAt: at(9, 23, 59)},
	}

	got := BookingsForDay(bookings, day, loc)
	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"early", "tie-a", "tie-b", "late", "night"}, ids)

	assert.Empty(t, BookingsForDay(nil, day, loc))
	assert.NotNil(t, BookingsForDay(nil, day, loc))
}

func TestComposeStart(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	start, err := ComposeStart("2024-06-10", "14:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 14, 0, 0, 0, loc), start)

	_, err = ComposeStart("10/06/2024", "14:00", loc)
	var verr *types.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "date", verr.Field)

	_, err = ComposeStart("2024-06-10", "2pm", loc)
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "time", verr.Field)
}

func TestNewBooking(t *testing.T) {
	loc := time.UTC
	alice := models.Client{ID: "c1", Name: "Alice", Phone: "(11) 99999-1234"}
	flash := models.Service{ID: "1", Name: "Flash Tattoo (Pequena)", Duration: 60, Price: decimal.NewFromInt(150)}
	start, err := ComposeStart("2024-06-10", "14:00", loc)
	require.NoError(t, err)

	b := NewBooking(alice, flash, start)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, time.Date(2024, time.June, 10, 14, 0, 0, 0, loc), b.StartAt)
	assert.Equal(t, time.Date(2024, time.June, 10, 15, 0, 0, 0, loc), b.EndAt)
	assert.Equal(t, time.Duration(flash.Duration)*time.Minute, b.EndAt.Sub(b.StartAt))
	assert.True(t, b.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, types.BOOKING_CONFIRMED, b.Status)
	assert.False(t, b.IsPaid)
	assert.Equal(t, "Alice", b.ClientName)
	assert.Equal(t, "1", *b.ServiceID)
	assert.Nil(t, b.RequestID)

	other := NewBooking(alice, flash, start)
	assert.NotEqual(t, b.ID, other.ID)
}

func TestConflicts(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, time.June, 10, h, 0, 0, 0, time.UTC) }
	bookings := []models.Booking{
		{ID: "a", StartAt: at(10), EndAt: at(12), Status: types.BOOKING_CONFIRMED},
		{ID: "b", StartAt: at(11), EndAt: at(13), Status: types.BOOKING_PENDING},
		{ID: "c", StartAt: at(12), EndAt: at(13), Status: types.BOOKING_CONFIRMED},
		{ID: "d", StartAt: at(10), EndAt: at(14), Status: types.BOOKING_CANCELED},
	}
	assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}}, Conflicts(bookings))
	assert.False(t, Overlaps(at(10), at(11), at(11), at(12)))
}
