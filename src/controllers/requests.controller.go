package controllers

import (
	"acelera/src/common"
	"acelera/src/db"
	"acelera/src/lib"
	"acelera/src/models"
	"acelera/src/types"
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

func (s *Studio) Requests(ctx context.Context) ([]models.TattooRequest, error) {
	return s.store.ListRequests(ctx)
}

func (s *Studio) Request(ctx context.Context, id string) (*models.TattooRequest, error) {
	return s.store.GetRequest(ctx, id)
}

func (s *Studio) RequestBoard(ctx context.Context) (*common.RequestBoard, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	board := common.BuildBoard(requests)
	return &board, nil
}

type TransitionResult struct {
	Request *models.TattooRequest `json:"request"`
	Client  *models.Client        `json:"client,omitempty"`
	Booking *models.Booking       `json:"booking,omitempty"`
}

// TransitionRequest applies a triage action. Approval links the request to
// the client with the same email, creating a prospect when there is none,
// and books a provisional session for it.
func (s *Studio) TransitionRequest(ctx context.Context, id string, action string, reply string) (*TransitionResult, error) {
	a, err := common.ParseAction(action)
	if err != nil {
		return nil, err
	}
	release, err := s.acquire(ctx, "request:"+id, s.guardTTL)
	if err != nil {
		lib.IncRequestTransition(string(a), "busy")
		return nil, err
	}
	defer release()

	result := &TransitionResult{}
	err = s.store.Transaction(ctx, func(tx db.Store) error {
		req, err := tx.GetRequest(ctx, id)
		if err != nil {
			return err
		}
		next, err := common.Transition(*req, a, strings.TrimSpace(reply))
		if err != nil {
			return err
		}
		if err := tx.UpdateRequest(ctx, &next); err != nil {
			return err
		}
		result.Request = &next
		if a != types.ACTION_APPROVE {
			return nil
		}
		clients, err := tx.ListClients(ctx)
		if err != nil {
			return err
		}
		client, ok := common.FindClientByEmail(clients, next.ClientEmail)
		if !ok {
			client = common.NewProspect(next)
			if err := tx.CreateClient(ctx, &client); err != nil {
				return err
			}
		}
		booking := common.SynthesizeBooking(next, client.ID, s.now(), s.loc)
		if err := tx.CreateBooking(ctx, &booking); err != nil {
			return err
		}
		result.Client = &client
		result.Booking = &booking
		return nil
	})
	if err != nil {
		var terr *types.InvalidTransitionError
		if errors.As(err, &terr) {
			lib.IncRequestTransition(string(a), "rejected")
		}
		return nil, err
	}
	lib.IncRequestTransition(string(a), "ok")
	if result.Booking != nil {
		lib.IncBookingsCreated("request")
		s.publish(ctx, lib.EVENT_REQUEST_APPROVED, id, types.JSONB{
			"booking_id": result.Booking.ID,
			"client_id":  result.Client.ID,
			"prospect":   result.Client.Prospect,
		})
		s.afterBooking(ctx, result.Booking, lib.EVENT_BOOKING_CREATED)
	} else {
		s.publish(ctx, lib.EVENT_REQUEST_UPDATED, id, types.JSONB{"status": string(result.Request.Status)})
	}
	return result, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return types.NewValidationError(f.Field(), "failed on %s", f.Tag())
	}
	return err
}

// SubmitRequest stores a request from the public form after the intake
// delay. One submission per email may be in flight at a time.
func (s *Studio) SubmitRequest(ctx context.Context, body types.SubmitRequestBody) (*models.TattooRequest, error) {
	if err := validate.Struct(body); err != nil {
		return nil, validationError(err)
	}
	if !body.TermsAccepted {
		return nil, types.NewValidationError("terms_accepted", "terms must be accepted")
	}
	for field, v := range map[string]string{
		"name":        body.Name,
		"phone":       body.Phone,
		"body_part":   body.BodyPart,
		"size":        body.Size,
		"style":       body.Style,
		"description": body.Description,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, types.NewValidationError(field, "must not be blank")
		}
	}
	key := "intake:" + strings.ToLower(strings.TrimSpace(body.Email))
	release, err := s.acquire(ctx, key, s.submitDelay+s.guardTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := wait(ctx, s.submitDelay); err != nil {
		return nil, err
	}
	req := common.NewRequest(body, s.now())
	if err := s.store.CreateRequest(ctx, &req); err != nil {
		return nil, err
	}
	lib.IncRequestsSubmitted()
	s.publish(ctx, lib.EVENT_REQUEST_SUBMITTED, req.ID, types.JSONB{
		"client_email": req.ClientEmail,
		"style":        req.Style,
	})
	return &req, nil
}
