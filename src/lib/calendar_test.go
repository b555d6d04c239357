package lib

import (
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func TestCalendarSyncPushBooking(t *testing.T) {
	var got calendar.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendar/v3/calendars/primary/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	}))
	defer srv.Close()

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	cs, err := NewCalendarSync(context.Background(), "", loc,
		option.WithEndpoint(srv.URL+"/calendar/v3/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	start := time.Date(2024, time.July, 1, 14, 0, 0, 0, loc)
	id, err := cs.PushBooking(context.Background(), &models.Booking{
		ID:          "b9",
		ClientName:  "Alice Cooper",
		ServiceName: "Retoque",
		StartAt:     start,
		EndAt:       start.Add(30 * time.Minute),
		Status:      types.BOOKING_CONFIRMED,
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", id)
	assert.Equal(t, "Alice Cooper - Retoque", got.Summary)
	assert.Equal(t, "2024-07-01T14:00:00-03:00", got.Start.DateTime)
	assert.Equal(t, "America/Sao_Paulo", got.Start.TimeZone)
	assert.Equal(t, "b9", got.ExtendedProperties.Private["booking_id"])
}

func TestCalendarSyncError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cs, err := NewCalendarSync(context.Background(), "primary", time.UTC,
		option.WithEndpoint(srv.URL+"/calendar/v3/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	_, err = cs.PushBooking(context.Background(), &models.Booking{ID: "b1"})
	assert.Error(t, err)
}

func TestNewCalendarSyncFromEnvDisabled(t *testing.T) {
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	assert.Nil(t, NewCalendarSyncFromEnv(context.Background(), time.UTC))
}
