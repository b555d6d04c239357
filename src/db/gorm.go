package db

import (
	"acelera/src/models"
	"acelera/src/models/scopes"
	"acelera/src/types"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// GormStore keeps the collections in postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{db: d}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}
	return err
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	err := s.db.WithContext(ctx).Scopes(scopes.OldestFirst).Find(&clients).Error
	return clients, err
}

func (s *GormStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (s *GormStore) CreateClient(ctx context.Context, c *models.Client) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) ListServices(ctx context.Context) ([]models.Service, error) {
	services := make([]models.Service, 0)
	err := s.db.WithContext(ctx).Scopes(scopes.OldestFirst).Find(&services).Error
	return services, err
}

func (s *GormStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&service).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (s *GormStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := s.db.WithContext(ctx).Scopes(scopes.OldestFirst).Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&booking).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *GormStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	res := s.db.WithContext(ctx).Model(b).Select("*").Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *GormStore) ListRequests(ctx context.Context) ([]models.TattooRequest, error) {
	requests := make([]models.TattooRequest, 0)
	err := s.db.WithContext(ctx).Scopes(scopes.NewestFirst).Find(&requests).Error
	return requests, err
}

func (s *GormStore) GetRequest(ctx context.Context, id string) (*models.TattooRequest, error) {
	var request models.TattooRequest
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&request).Error; err != nil {
		return nil, notFound(err)
	}
	return &request, nil
}

func (s *GormStore) CreateRequest(ctx context.Context, r *models.TattooRequest) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) UpdateRequest(ctx context.Context, r *models.TattooRequest) error {
	res := s.db.WithContext(ctx).Model(r).Select("*").Updates(r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *GormStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	err := s.db.WithContext(ctx).Scopes(scopes.OldestFirst).Find(&transactions).Error
	return transactions, err
}

func (s *GormStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStore) ListSettings(ctx context.Context) ([]models.Setting, error) {
	settings := make([]models.Setting, 0)
	err := s.db.WithContext(ctx).Order("setting_key").Find(&settings).Error
	return settings, err
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
