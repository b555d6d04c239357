package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type JSONB map[string]any

// StringArray is stored as a jsonb array.
type StringArray []string

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}

func scanBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.New("type assertion to []byte failed")
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequestBody struct {
	ClientID  string `json:"client_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required,isodate"`
	Time      string `json:"time" binding:"required,hhmm"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required,oneof=PENDING CONFIRMED COMPLETED CANCELED"`
}

type SetBookingPriceRequestBody struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type TransitionRequestBody struct {
	Action RequestAction `json:"action" binding:"required,oneof=approve negotiate reject"`
	Reply  string        `json:"reply,omitempty"`
}

type CreateTransactionRequestBody struct {
	Type        TransactionType  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Category    string           `json:"category,omitempty"`
	Date        string           `json:"date,omitempty" binding:"omitempty,isodate"`
	BookingID   *string          `json:"booking_id,omitempty"`
}

// SubmitRequestBody is the public intake form.
type SubmitRequestBody struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	BodyPart      string `json:"body_part" binding:"required"`
	Size          string `json:"size" binding:"required"`
	Style         string `json:"style" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Availability  string `json:"availability,omitempty"`
	Budget        string `json:"budget,omitempty"`
	TermsAccepted bool   `json:"terms_accepted" binding:"required"`
}

type CalendarQuery struct {
	Date   string `form:"date" binding:"omitempty,isodate"`
	Offset int    `form:"offset"`
}

type ViewQuery struct {
	Date  string `form:"date" binding:"omitempty,isodate"`
	Query string `form:"q"`
}

type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "PENDING"
	BOOKING_CONFIRMED BookingStatus = "CONFIRMED"
	BOOKING_COMPLETED BookingStatus = "COMPLETED"
	BOOKING_CANCELED  BookingStatus = "CANCELED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_COMPLETED, BOOKING_CANCELED:
		return true
	}
	return false
}

// IsActive reports whether the booking still occupies the agenda.
func (s BookingStatus) IsActive() bool {
	return s == BOOKING_CONFIRMED || s == BOOKING_PENDING
}

type RequestStatus string

const (
	REQUEST_PENDING     RequestStatus = "PENDING"
	REQUEST_NEGOTIATING RequestStatus = "NEGOTIATING"
	REQUEST_APPROVED    RequestStatus = "APPROVED"
	REQUEST_REJECTED    RequestStatus = "REJECTED"
)

func (s RequestStatus) IsTerminal() bool {
	return s == REQUEST_APPROVED || s == REQUEST_REJECTED
}

type RequestAction string

const (
	ACTION_APPROVE   RequestAction = "approve"
	ACTION_NEGOTIATE RequestAction = "negotiate"
	ACTION_REJECT    RequestAction = "reject"
)

type TransactionType string

const (
	TRANSACTION_INCOME  TransactionType = "INCOME"
	TRANSACTION_EXPENSE TransactionType = "EXPENSE"
)

type Role string

const (
	ROLE_TATTOOIST Role = "TATTOOIST"
	ROLE_ADMIN     Role = "ADMIN"
)
