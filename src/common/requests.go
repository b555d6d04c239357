package common

import (
	"acelera/src/models"
	"acelera/src/types"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	approvedSlotHour   = 14
	approvedSlotDays   = 2
	approvedSlotLength = 3 * time.Hour
)

var transitions = map[types.RequestStatus]map[types.RequestAction]types.RequestStatus{
	types.REQUEST_PENDING: {
		types.ACTION_APPROVE:   types.REQUEST_APPROVED,
		types.ACTION_NEGOTIATE: types.REQUEST_NEGOTIATING,
		types.ACTION_REJECT:    types.REQUEST_REJECTED,
	},
	types.REQUEST_NEGOTIATING: {
		types.ACTION_APPROVE:   types.REQUEST_APPROVED,
		types.ACTION_NEGOTIATE: types.REQUEST_NEGOTIATING,
		types.ACTION_REJECT:    types.REQUEST_REJECTED,
	},
}

func ParseAction(s string) (types.RequestAction, error) {
	a := types.RequestAction(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case types.ACTION_APPROVE, types.ACTION_NEGOTIATE, types.ACTION_REJECT:
		return a, nil
	}
	return "", types.NewValidationError("action", "unknown action %q", s)
}

// NextStatus looks the action up in the transition table.
func NextStatus(from types.RequestStatus, action types.RequestAction) (types.RequestStatus, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return "", err
	}
	next, ok := transitions[from][action]
	if !ok {
		return "", &types.InvalidTransitionError{From: from, Action: action}
	}
	return next, nil
}

// Transition returns an updated copy of req. A non-empty reply replaces the
// admin notes, an empty one keeps them.
func Transition(req models.TattooRequest, action types.RequestAction, reply string) (models.TattooRequest, error) {
	next, err := NextStatus(req.Status, action)
	if err != nil {
		return req, err
	}
	out := req.Clone()
	out.Status = next
	if reply != "" {
		out.AdminNotes = reply
	}
	return out, nil
}

// ApprovedSlot is the provisional start given to bookings created from an
// approval: two calendar days after now at 14:00 in loc.
func ApprovedSlot(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+approvedSlotDays, approvedSlotHour, 0, 0, 0, loc)
}

// SynthesizeBooking creates the provisional booking of an approved request.
// Price stays zero until it is set by hand.
func SynthesizeBooking(req models.TattooRequest, clientID string, now time.Time, loc *time.Location) models.Booking {
	start := ApprovedSlot(now, loc)
	requestID := req.ID
	return models.Booking{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceName: fmt.Sprintf("%s – %s", req.Style, req.BodyPart),
		StartAt:     start,
		EndAt:       start.Add(approvedSlotLength),
		Status:      types.BOOKING_CONFIRMED,
		Price:       decimal.Zero,
		IsPaid:      false,
		RequestID:   &requestID,
	}
}

// NewProspect turns the contact info of a request into a client record.
func NewProspect(req models.TattooRequest) models.Client {
	return models.Client{
		ID:        uuid.NewString(),
		Name:      req.ClientName,
		Email:     strings.TrimSpace(req.ClientEmail),
		Phone:     req.ClientPhone,
		Notes:     req.Description,
		PhotoURLs: types.StringArray{},
		Prospect:  true,
	}
}

// FindClientByEmail matches case-insensitively, ignoring surrounding spaces.
func FindClientByEmail(clients []models.Client, email string) (models.Client, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Client{}, false
	}
	for _, c := range clients {
		if strings.EqualFold(strings.TrimSpace(c.Email), email) {
			return c, true
		}
	}
	return models.Client{}, false
}

// NewRequest builds a pending request from the public form.
func NewRequest(body types.SubmitRequestBody, now time.Time) models.TattooRequest {
	days := types.StringArray{}
	if a := strings.TrimSpace(body.Availability); a != "" {
		days = append(days, a)
	}
	r := models.TattooRequest{
		ID:            uuid.NewString(),
		ClientName:    strings.TrimSpace(body.Name),
		ClientEmail:   strings.TrimSpace(body.Email),
		ClientPhone:   strings.TrimSpace(body.Phone),
		Description:   strings.TrimSpace(body.Description),
		BodyPart:      strings.TrimSpace(body.BodyPart),
		Size:          strings.TrimSpace(body.Size),
		Style:         strings.TrimSpace(body.Style),
		Budget:        strings.TrimSpace(body.Budget),
		PhotoURLs:     types.StringArray{},
		AvailableDays: days,
		Status:        types.REQUEST_PENDING,
	}
	r.CreatedAt = now
	return r
}

// RequestBoard splits requests into the three columns of the review board,
// keeping collection order inside each column.
type RequestBoard struct {
	Pending     []models.TattooRequest `json:"pending"`
	Negotiating []models.TattooRequest `json:"negotiating"`
	History     []models.TattooRequest `json:"history"`
}

func BuildBoard(requests []models.TattooRequest) RequestBoard {
	board := RequestBoard{
		Pending:     make([]models.TattooRequest, 0),
		Negotiating: make([]models.TattooRequest, 0),
		History:     make([]models.TattooRequest, 0),
	}
	for _, r := range requests {
		switch r.Status {
		case types.REQUEST_PENDING:
			board.Pending = append(board.Pending, r)
		case types.REQUEST_NEGOTIATING:
			board.Negotiating = append(board.Negotiating, r)
		case types.REQUEST_APPROVED, types.REQUEST_REJECTED:
			board.History = append(board.History, r)
		}
	}
	return board
}
