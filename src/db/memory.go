package db

import (
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

type collections struct {
	clients      []models.Client
	services     []models.Service
	bookings     []models.Booking
	requests     []models.TattooRequest
	transactions []models.Transaction
	settings     []models.Setting
	users        []models.User
}

// clone copies the collection slices. Elements are replaced, never
// modified in place, so sharing them between versions is safe.
func (c *collections) clone() *collections {
	return &collections{
		clients:      slices.Clone(c.clients),
		services:     slices.Clone(c.services),
		bookings:     slices.Clone(c.bookings),
		requests:     slices.Clone(c.requests),
		transactions: slices.Clone(c.transactions),
		settings:     slices.Clone(c.settings),
		users:        slices.Clone(c.users),
	}
}

// MemoryStore keeps every collection in process. Each write works on a copy
// of the collections that replaces the current value once it succeeds.
type MemoryStore struct {
	mu    sync.RWMutex
	state *collections
}

func NewMemoryStore(seed *Seed) *MemoryStore {
	c := &collections{}
	if seed != nil {
		c.clients = slices.Clone(seed.Clients)
		c.services = slices.Clone(seed.Services)
		c.bookings = slices.Clone(seed.Bookings)
		c.requests = slices.Clone(seed.Requests)
		c.transactions = slices.Clone(seed.Transactions)
		c.settings = slices.Clone(seed.Settings)
		c.users = slices.Clone(seed.Users)
	}
	return &MemoryStore{state: c}
}

func (s *MemoryStore) view() *memoryTx {
	return &memoryTx{c: s.state}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.state.clone()
	if err := fn(&memoryTx{c: draft}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = draft
	return nil
}

func (s *MemoryStore) ListClients(ctx context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListClients(ctx)
}

func (s *MemoryStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().GetClient(ctx, id)
}

func (s *MemoryStore) CreateClient(ctx context.Context, c *models.Client) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.CreateClient(ctx, c) })
}

func (s *MemoryStore) ListServices(ctx context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListServices(ctx)
}

func (s *MemoryStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().GetService(ctx, id)
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListBookings(ctx)
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().GetBooking(ctx, id)
}

func (s *MemoryStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.CreateBooking(ctx, b) })
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.UpdateBooking(ctx, b) })
}

func (s *MemoryStore) ListRequests(ctx context.Context) ([]models.TattooRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListRequests(ctx)
}

func (s *MemoryStore) GetRequest(ctx context.Context, id string) (*models.TattooRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().GetRequest(ctx, id)
}

func (s *MemoryStore) CreateRequest(ctx context.Context, r *models.TattooRequest) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.CreateRequest(ctx, r) })
}

func (s *MemoryStore) UpdateRequest(ctx context.Context, r *models.TattooRequest) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.UpdateRequest(ctx, r) })
}

func (s *MemoryStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListTransactions(ctx)
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.Transaction(ctx, func(tx Store) error { return tx.CreateTransaction(ctx, t) })
}

func (s *MemoryStore) ListSettings(ctx context.Context) ([]models.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().ListSettings(ctx)
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().GetUserByEmail(ctx, email)
}

// memoryTx reads and writes one version of the collections without locking.
// Callers hold the store lock.
type memoryTx struct {
	c *collections
}

func (t *memoryTx) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func (t *memoryTx) ListClients(ctx context.Context) ([]models.Client, error) {
	out := make([]models.Client, 0, len(t.c.clients))
	for _, c := range t.c.clients {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (t *memoryTx) GetClient(ctx context.Context, id string) (*models.Client, error) {
	for _, c := range t.c.clients {
		if c.ID == id {
			out := c.Clone()
			return &out, nil
		}
	}
	return nil, types.ErrNotFound
}

func (t *memoryTx) CreateClient(ctx context.Context, c *models.Client) error {
	if _, err := t.GetClient(ctx, c.ID); err == nil {
		return types.NewValidationError("id", "client %s already exists", c.ID)
	}
	stamp(&c.Timestamps, time.Now())
	t.c.clients = append(t.c.clients, c.Clone())
	return nil
}

func (t *memoryTx) ListServices(ctx context.Context) ([]models.Service, error) {
	return slices.Clone(t.c.services), nil
}

func (t *memoryTx) GetService(ctx context.Context, id string) (*models.Service, error) {
	for _, s := range t.c.services {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, types.ErrNotFound
}

func (t *memoryTx) ListBookings(ctx context.Context) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(t.c.bookings))
	for _, b := range t.c.bookings {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (t *memoryTx) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	i := slices.IndexFunc(t.c.bookings, func(b models.Booking) bool { return b.ID == id })
	if i < 0 {
		return nil, types.ErrNotFound
	}
	out := t.c.bookings[i].Clone()
	return &out, nil
}

func (t *memoryTx) CreateBooking(ctx context.Context, b *models.Booking) error {
	if slices.ContainsFunc(t.c.bookings, func(e models.Booking) bool { return e.ID == b.ID }) {
		return types.NewValidationError("id", "booking %s already exists", b.ID)
	}
	stamp(&b.Timestamps, time.Now())
	t.c.bookings = append(t.c.bookings, b.Clone())
	return nil
}

func (t *memoryTx) UpdateBooking(ctx context.Context, b *models.Booking) error {
	i := slices.IndexFunc(t.c.bookings, func(e models.Booking) bool { return e.ID == b.ID })
	if i < 0 {
		return types.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	t.c.bookings[i] = b.Clone()
	return nil
}

func (t *memoryTx) ListRequests(ctx context.Context) ([]models.TattooRequest, error) {
	out := make([]models.TattooRequest, 0, len(t.c.requests))
	for _, r := range t.c.requests {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (t *memoryTx) GetRequest(ctx context.Context, id string) (*models.TattooRequest, error) {
	i := slices.IndexFunc(t.c.requests, func(r models.TattooRequest) bool { return r.ID == id })
	if i < 0 {
		return nil, types.ErrNotFound
	}
	out := t.c.requests[i].Clone()
	return &out, nil
}

// CreateRequest puts the new request in front of the collection.
func (t *memoryTx) CreateRequest(ctx context.Context, r *models.TattooRequest) error {
	if slices.ContainsFunc(t.c.requests, func(e models.TattooRequest) bool { return e.ID == r.ID }) {
		return types.NewValidationError("id", "request %s already exists", r.ID)
	}
	stamp(&r.Timestamps, time.Now())
	t.c.requests = slices.Insert(t.c.requests, 0, r.Clone())
	return nil
}

func (t *memoryTx) UpdateRequest(ctx context.Context, r *models.TattooRequest) error {
	i := slices.IndexFunc(t.c.requests, func(e models.TattooRequest) bool { return e.ID == r.ID })
	if i < 0 {
		return types.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	t.c.requests[i] = r.Clone()
	return nil
}

func (t *memoryTx) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(t.c.transactions))
	for _, tx := range t.c.transactions {
		out = append(out, cloneTransaction(tx))
	}
	return out, nil
}

func (t *memoryTx) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if slices.ContainsFunc(t.c.transactions, func(e models.Transaction) bool { return e.ID == tx.ID }) {
		return types.NewValidationError("id", "transaction %s already exists", tx.ID)
	}
	stamp(&tx.Timestamps, time.Now())
	t.c.transactions = append(t.c.transactions, cloneTransaction(*tx))
	return nil
}

func (t *memoryTx) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return slices.Clone(t.c.settings), nil
}

func (t *memoryTx) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range t.c.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			out := u
			return &out, nil
		}
	}
	return nil, types.ErrNotFound
}

func cloneTransaction(tx models.Transaction) models.Transaction {
	if tx.BookingID != nil {
		id := *tx.BookingID
		tx.BookingID = &id
	}
	return tx
}

func stamp(ts *types.Timestamps, now time.Time) {
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}
