package controllers

import (
	"acelera/src/common"
	"acelera/src/config"
	"acelera/src/models"
	"acelera/src/types"
	"context"

	"github.com/shopspring/decimal"
)

const nextUpSize = 5

type Dashboard struct {
	Revenue         decimal.Decimal    `json:"revenue"`
	ActiveBookings  int                `json:"active_bookings"`
	ClientCount     int                `json:"client_count"`
	PendingRevenue  decimal.Decimal    `json:"pending_revenue"`
	PendingRequests int                `json:"pending_requests"`
	WeeklyRevenue   [7]decimal.Decimal `json:"weekly_revenue"`
	NextUp          []models.Booking   `json:"next_up"`
}

func (s *Studio) Dashboard(ctx context.Context) (*Dashboard, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Revenue:         common.TotalRevenue(txs),
		ActiveBookings:  common.ActiveBookingCount(bookings),
		ClientCount:     len(clients),
		PendingRevenue:  common.PendingRevenue(bookings),
		PendingRequests: len(common.BuildBoard(requests).Pending),
		WeeklyRevenue:   common.WeeklyRevenue(txs, common.ComputeWeek(s.Now(), s.loc), s.loc),
		NextUp:          common.NextUp(bookings, nextUpSize),
	}, nil
}

type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type FormStep struct {
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

type PublicForm struct {
	Studio string     `json:"studio"`
	Steps  []FormStep `json:"steps"`
}

func (s *Studio) PublicForm() *PublicForm {
	return &PublicForm{
		Studio: config.STUDIO_NAME,
		Steps: []FormStep{
			{Title: "Contato", Fields: []FormField{
				{Name: "name", Label: "Nome Completo", Required: true},
				{Name: "phone", Label: "WhatsApp", Required: true},
				{Name: "email", Label: "E-mail", Required: true},
			}},
			{Title: "Tatuagem", Fields: []FormField{
				{Name: "body_part", Label: "Parte do Corpo", Required: true},
				{Name: "size", Label: "Tamanho (cm)", Required: true},
				{Name: "style", Label: "Estilo", Required: true},
				{Name: "description", Label: "Descrição da Ideia", Required: true},
			}},
			{Title: "Detalhes", Fields: []FormField{
				{Name: "availability", Label: "Disponibilidade"},
				{Name: "budget", Label: "Orçamento Estimado (R$)"},
				{Name: "terms_accepted", Label: "Termos", Required: true},
			}},
		},
	}
}

// RenderView returns the data of one screen.
func (s *Studio) RenderView(ctx context.Context, view types.View) (any, error) {
	switch view.Kind {
	case types.VIEW_DASHBOARD:
		return s.Dashboard(ctx)
	case types.VIEW_CALENDAR:
		ref := s.Now()
		if view.Date != nil {
			ref = *view.Date
		}
		return s.Calendar(ctx, ref, 0)
	case types.VIEW_CLIENTS:
		return s.Clients(ctx, view.Query)
	case types.VIEW_FINANCE:
		return s.Finance(ctx)
	case types.VIEW_REQUESTS:
		return s.RequestBoard(ctx)
	case types.VIEW_SETTINGS:
		return s.Settings(ctx)
	case types.VIEW_PUBLIC_FORM:
		return s.PublicForm(), nil
	}
	return nil, types.NewValidationError("view", "unknown view %q", view.Kind)
}
