package db

import (
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"errors"
	"log"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func TestDB(t *testing.T) {
	gormDB, _ := NewMockDB()
	NewDB(gormDB)

	assert.Equal(t, gormDB, GetDb())
	assert.Equal(t, "postgres", GetDb().Name())
}

func TestGormStoreCreateBooking(t *testing.T) {
	gormDB, mock := NewMockDB()
	store := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "bookings"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	start := time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ID:          "b9",
		ClientID:    "c1",
		ClientName:  "Alice Cooper",
		ServiceName: "Retoque",
		StartAt:     start,
		EndAt:       start.Add(30 * time.Minute),
		Status:      types.BOOKING_CONFIRMED,
		Price:       decimal.NewFromInt(50),
	}
	err := store.CreateBooking(context.Background(), b)
	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetClient(t *testing.T) {
	gormDB, mock := NewMockDB()
	store := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "photo_urls", "total_sessions"}).
			AddRow("c1", "Alice Cooper", "alice@example.com", `["a.jpg"]`, 3))

	c, err := store.GetClient(context.Background(), "c1")
	assert.Nil(t, err)
	assert.Equal(t, "Alice Cooper", c.Name)
	assert.Equal(t, types.StringArray{"a.jpg"}, c.PhotoURLs)
	assert.Equal(t, 3, c.TotalSessions)

	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = store.GetClient(context.Background(), "nope")
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestGormStoreTransactionRollback(t *testing.T) {
	gormDB, mock := NewMockDB()
	store := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tattoo_requests"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := store.Transaction(context.Background(), func(tx Store) error {
		if err := tx.CreateRequest(context.Background(), &models.TattooRequest{ID: "r9", Status: types.REQUEST_PENDING}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, mock.ExpectationsWereMet())
}
