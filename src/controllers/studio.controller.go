package controllers

import (
	"acelera/src/common"
	"acelera/src/config"
	"acelera/src/db"
	"acelera/src/lib"
	"acelera/src/lib/mailer"
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

type BookingCalendar interface {
	PushBooking(ctx context.Context, b *models.Booking) (string, error)
}

type Archive interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// Studio owns the studio state. Every mutation goes through one store
// transaction; side effects run after commit and only log failures.
type Studio struct {
	store       db.Store
	loc         *time.Location
	now         func() time.Time
	guard       lib.Guard
	guardTTL    time.Duration
	events      lib.EventPublisher
	calendar    BookingCalendar
	mailer      mailer.Mailer
	archive     Archive
	submitDelay time.Duration
}

type Option func(*Studio)

func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Studio) { s.loc = loc }
}

func WithGuard(g lib.Guard) Option {
	return func(s *Studio) { s.guard = g }
}

func WithEvents(p lib.EventPublisher) Option {
	return func(s *Studio) { s.events = p }
}

func WithCalendar(c BookingCalendar) Option {
	return func(s *Studio) { s.calendar = c }
}

func WithMailer(m mailer.Mailer) Option {
	return func(s *Studio) { s.mailer = m }
}

func WithArchive(a Archive) Option {
	return func(s *Studio) { s.archive = a }
}

func WithSubmitDelay(d time.Duration) Option {
	return func(s *Studio) { s.submitDelay = d }
}

func NewStudio(store db.Store, opts ...Option) *Studio {
	s := &Studio{
		store:       store,
		loc:         config.StudioLocation(),
		now:         time.Now,
		guard:       lib.NewMemoryGuard(),
		guardTTL:    time.Minute,
		events:      lib.LogPublisher{},
		mailer:      mailer.LogMailer{},
		submitDelay: config.SubmitDelay(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Studio) Location() *time.Location {
	return s.loc
}

func (s *Studio) Now() time.Time {
	return s.now().In(s.loc)
}

// ErrorStatus maps domain errors to HTTP status codes.
func ErrorStatus(err error) int {
	var verr *types.ValidationError
	var terr *types.InvalidTransitionError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &terr), errors.Is(err, types.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// wait blocks for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Studio) acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	ok, err := s.guard.Acquire(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.ErrInFlight
	}
	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Printf("Could not release %s: %s\n", key, err.Error())
		}
	}, nil
}

func (s *Studio) publish(ctx context.Context, kind, id string, payload types.JSONB) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), lib.NewDomainEvent(kind, id, payload)); err != nil {
		log.Printf("Could not publish %s for %s: %s\n", kind, id, err.Error())
	}
}

func (s *Studio) Clients(ctx context.Context, q string) ([]models.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return common.SearchClients(clients, q), nil
}

func (s *Studio) Client(ctx context.Context, id string) (*models.Client, error) {
	return s.store.GetClient(ctx, id)
}

func (s *Studio) Services(ctx context.Context) ([]models.Service, error) {
	return s.store.ListServices(ctx)
}

func (s *Studio) Settings(ctx context.Context) (map[string]string, error) {
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.SettingKey] = st.SettingValue
	}
	return out, nil
}
