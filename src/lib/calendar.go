package lib

import (
	"acelera/src/models"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarSync mirrors studio bookings as events on a Google calendar.
type CalendarSync struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
}

func NewCalendarSync(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*CalendarSync, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &CalendarSync{svc: svc, calendarID: calendarID, loc: loc}, nil
}

// NewCalendarSyncFromEnv returns nil when GOOGLE_CALENDAR_ID is not set.
func NewCalendarSyncFromEnv(ctx context.Context, loc *time.Location) *CalendarSync {
	calID := os.Getenv("GOOGLE_CALENDAR_ID")
	if calID == "" {
		return nil
	}
	secretsPath := os.Getenv("SECRETS_DIR")
	creds := path.Join(secretsPath, "calendar-credentials.json")
	cs, err := NewCalendarSync(ctx, calID, loc, option.WithCredentialsFile(creds), option.WithScopes(calendar.CalendarEventsScope))
	if err != nil {
		log.Printf("[calendar] Could not initialize service: %s\n", err.Error())
		return nil
	}
	return cs
}

func (c *CalendarSync) bookingEvent(b *models.Booking) *calendar.Event {
	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", b.ClientName, b.ServiceName),
		Description: fmt.Sprintf("Status: %s\nTelefone: %s", b.Status, b.ClientPhone),
		Start: &calendar.EventDateTime{
			DateTime: b.StartAt.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: b.EndAt.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"booking_id": b.ID},
		},
	}
}

// PushBooking inserts the booking and returns the calendar event id.
func (c *CalendarSync) PushBooking(ctx context.Context, b *models.Booking) (string, error) {
	ev, err := c.svc.Events.Insert(c.calendarID, c.bookingEvent(b)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("[calendar] could not insert booking %s: %w", b.ID, err)
	}
	return ev.Id, nil
}
