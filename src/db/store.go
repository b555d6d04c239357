package db

import (
	"acelera/src/models"
	"context"
)

// Store holds the studio collections. List methods return copies in
// collection order; requests come newest first.
type Store interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error

	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)

	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBooking(ctx context.Context, b *models.Booking) error

	ListRequests(ctx context.Context) ([]models.TattooRequest, error)
	GetRequest(ctx context.Context, id string) (*models.TattooRequest, error)
	CreateRequest(ctx context.Context, r *models.TattooRequest) error
	UpdateRequest(ctx context.Context, r *models.TattooRequest) error

	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Transaction runs fn against a store whose writes become visible
	// only if fn returns nil.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
