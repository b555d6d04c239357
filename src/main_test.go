package main

import (
	"acelera/src/controllers"
	"acelera/src/db"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type TestSuite struct {
	suite.Suite
	Router *gin.Engine
	Studio *controllers.Studio
	Token  string
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("LOGIN_DELAY_MS", "0")
	os.Setenv("SUBMIT_DELAY_MS", "0")
	os.Setenv("JWT_SECRET", "test-secret")
	registerValidators()
}

func (s *TestSuite) SetupTest() {
	store := db.NewMemoryStore(db.DefaultSeed(time.Now()))
	s.Studio = controllers.NewStudio(store, controllers.WithSubmitDelay(0))
	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	publicRoutes(router, s.Studio)
	authorizedRoutes(router, s.Studio)
	s.Router = router

	w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"artista@aceleratattoo.com","password":"secret"}`, false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Token = gjson.Get(w.Body.String(), "token").String()
}

func (s *TestSuite) TearDownSuite() {
	os.Unsetenv("LOGIN_DELAY_MS")
	os.Unsetenv("SUBMIT_DELAY_MS")
	os.Unsetenv("JWT_SECRET")
}

func (s *TestSuite) do(method, url, body string, auth bool) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestPing() {
	w := s.do(http.MethodGet, "/", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(`"ok"`, w.Body.String())
}

func (s *TestSuite) TestMaintenanceMode() {
	s.Run("Should return 503 while under maintenance", func() {
		os.Setenv("MAINTENANCE_MODE", "true")
		defer os.Unsetenv("MAINTENANCE_MODE")
		w := s.do(http.MethodGet, "/api/v1/public/views/form", "", false)
		s.Equal(http.StatusServiceUnavailable, w.Code)
		s.Equal("server is under maintenance", gjson.Get(w.Body.String(), "error").String())
	})
	s.Run("Should serve requests when maintenance is off", func() {
		os.Setenv("MAINTENANCE_MODE", "false")
		defer os.Unsetenv("MAINTENANCE_MODE")
		w := s.do(http.MethodGet, "/api/v1/public/views/form", "", false)
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *TestSuite) TestAuth() {
	s.Run("Should issue a token for a known user", func() {
		w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"ARTISTA@aceleratattoo.com","password":"x"}`, false)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("u1", gjson.Get(w.Body.String(), "user.id").String())
		s.NotEmpty(gjson.Get(w.Body.String(), "token").String())
	})
	s.Run("Should issue a token for any email", func() {
		w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"guest@studio.com","password":"x"}`, false)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("guest@studio.com", gjson.Get(w.Body.String(), "user.id").String())
		s.Equal("TATTOOIST", gjson.Get(w.Body.String(), "user.role").String())
	})
	s.Run("Should return a 400 error for a malformed login", func() {
		w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email"}`, false)
		s.Equal(http.StatusBadRequest, w.Code)
	})
	s.Run("Should return 401 without a token", func() {
		w := s.do(http.MethodGet, "/api/v1/bookings", "", false)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
	s.Run("Should return the current user", func() {
		w := s.do(http.MethodGet, "/api/v1/me", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("artista@aceleratattoo.com", gjson.Get(w.Body.String(), "data.email").String())
	})
}

func (s *TestSuite) TestClients() {
	s.Run("Should filter clients by query", func() {
		w := s.do(http.MethodGet, "/api/v1/clients?q=themyscira", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Equal(int64(1), gjson.Get(w.Body.String(), "count").Int())
		s.Equal("c4", gjson.Get(w.Body.String(), "data.0.id").String())
	})
	s.Run("Should return 404 for an unknown client", func() {
		w := s.do(http.MethodGet, "/api/v1/clients/nope", "", true)
		s.Equal(http.StatusNotFound, w.Code)
	})
	s.Run("Should list services", func() {
		w := s.do(http.MethodGet, "/api/v1/services", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Equal(int64(4), gjson.Get(w.Body.String(), "count").Int())
	})
}

func (s *TestSuite) TestBookings() {
	s.Run("Should create a booking with 201 status", func() {
		w := s.do(http.MethodPost, "/api/v1/bookings", `{"client_id":"c3","service_id":"4","date":"2030-01-10","time":"10:00"}`, true)
		s.Equal(http.StatusCreated, w.Code)
		body := w.Body.String()
		s.Equal("Charlie Brown", gjson.Get(body, "data.client_name").String())
		s.Equal("CONFIRMED", gjson.Get(body, "data.status").String())

		w = s.do(http.MethodGet, "/api/v1/bookings", "", true)
		s.Equal(int64(4), gjson.Get(w.Body.String(), "count").Int())
	})
	s.Run("Should return a 400 error response", func() {
		w := s.do(http.MethodPost, "/api/v1/bookings", `{"client_id":"c3","service_id":"4","date":"10/01/2030","time":"10:00"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.NotEmpty(gjson.Get(w.Body.String(), "error").String())

		w = s.do(http.MethodPost, "/api/v1/bookings", `{"client_id":"zz","service_id":"4","date":"2030-01-10","time":"10:00"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
	s.Run("Should mark a booking as paid once", func() {
		w := s.do(http.MethodPut, "/api/v1/bookings/b2/pay", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.True(gjson.Get(w.Body.String(), "data.is_paid").Bool())
		s.Equal("INCOME", gjson.Get(w.Body.String(), "transaction.type").String())

		w = s.do(http.MethodPut, "/api/v1/bookings/b2/pay", "", true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
	s.Run("Should update the status", func() {
		w := s.do(http.MethodPut, "/api/v1/bookings/b2/status", `{"status":"COMPLETED"}`, true)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("COMPLETED", gjson.Get(w.Body.String(), "data.status").String())

		w = s.do(http.MethodPut, "/api/v1/bookings/b2/status", `{"status":"LOST"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
	s.Run("Should render the calendar week", func() {
		w := s.do(http.MethodGet, "/api/v1/calendar?date=2024-06-12", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Len(gjson.Get(w.Body.String(), "data.days").Array(), 7)
	})
}

func (s *TestSuite) TestRequests() {
	s.Run("Should approve a request once", func() {
		w := s.do(http.MethodPut, "/api/v1/requests/r1/transition", `{"action":"approve"}`, true)
		s.Equal(http.StatusOK, w.Code)
		body := w.Body.String()
		s.Equal("APPROVED", gjson.Get(body, "data.request.status").String())
		s.True(gjson.Get(body, "data.client.prospect").Bool())
		s.Equal("CONFIRMED", gjson.Get(body, "data.booking.status").String())

		w = s.do(http.MethodPut, "/api/v1/requests/r1/transition", `{"action":"approve"}`, true)
		s.Equal(http.StatusConflict, w.Code)
	})
	s.Run("Should group requests into a board", func() {
		w := s.do(http.MethodGet, "/api/v1/requests?board=true", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Len(gjson.Get(w.Body.String(), "data.negotiating").Array(), 1)
		s.Len(gjson.Get(w.Body.String(), "data.history").Array(), 1)
	})
	s.Run("Should return 404 for an unknown request", func() {
		w := s.do(http.MethodPut, "/api/v1/requests/nope/transition", `{"action":"reject"}`, true)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *TestSuite) TestPublicSubmission() {
	s.Run("Should return a 400 error response", func() {
		w := s.do(http.MethodPost, "/api/v1/public/requests", `{"name":"Maria"}`, false)
		s.Equal(http.StatusBadRequest, w.Code)
	})
	s.Run("Should accept a complete submission", func() {
		body := `{"name":"Maria","phone":"(21) 99876-5432","email":"maria@email.com","body_part":"Ombro",` +
			`"size":"Pequena","style":"Fineline","description":"Rosas","terms_accepted":true}`
		w := s.do(http.MethodPost, "/api/v1/public/requests", body, false)
		s.Equal(http.StatusCreated, w.Code)
		id := gjson.Get(w.Body.String(), "data.id").String()
		s.NotEmpty(id)

		w = s.do(http.MethodGet, "/api/v1/requests", "", true)
		s.Equal(id, gjson.Get(w.Body.String(), "data.0.id").String())
	})
}

func (s *TestSuite) TestFinance() {
	s.Run("Should record an expense", func() {
		w := s.do(http.MethodPost, "/api/v1/transactions", `{"type":"EXPENSE","amount":"80.50","description":"Agulhas","date":"2024-06-10"}`, true)
		s.Equal(http.StatusCreated, w.Code)
		s.Equal("EXPENSE", gjson.Get(w.Body.String(), "data.type").String())
	})
	s.Run("Should export the ledger as csv", func() {
		w := s.do(http.MethodGet, "/api/v1/finance/export?format=csv", "", true)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Header().Get("Content-Type"), "text/csv")
		s.Contains(w.Header().Get("Content-Disposition"), "attachment")
		s.True(strings.HasPrefix(w.Body.String(), "date,description,category,type,amount,booking_id"))
	})
	s.Run("Should reject unknown formats", func() {
		w := s.do(http.MethodGet, "/api/v1/finance/export?format=pdf", "", true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *TestSuite) TestViews() {
	for _, kind := range []string{"dashboard", "calendar", "clients", "finance", "requests", "settings", "public-form"} {
		s.Run(fmt.Sprintf("Should render the %s view", kind), func() {
			w := s.do(http.MethodGet, "/api/v1/views/"+kind, "", true)
			s.Equal(http.StatusOK, w.Code)
			s.True(gjson.Get(w.Body.String(), "data").Exists())
		})
	}
	s.Run("Should return a 400 error for an unknown view", func() {
		w := s.do(http.MethodGet, "/api/v1/views/profile", "", true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *TestSuite) TestMetrics() {
	s.do(http.MethodGet, "/", "", false)
	w := s.do(http.MethodGet, "/metrics", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "acelera_http_request_duration_seconds")
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
