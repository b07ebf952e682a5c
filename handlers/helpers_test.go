package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"bookingflow/models"
	"bookingflow/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubSessions struct {
	opened    models.Identifier
	lastPatch models.FormPatch
	option    string
	closed    string
	openErr   error
	err       error
}

func (s *stubSessions) view(id string) (*models.SessionView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionView{SessionID: id}, nil
}

func (s *stubSessions) Open(_ context.Context, id models.Identifier) (*models.SessionView, error) {
	s.opened = id
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &models.SessionView{SessionID: "sess-1"}, nil
}

func (s *stubSessions) Get(_ context.Context, id string) (*models.SessionView, error) {
	return s.view(id)
}

func (s *stubSessions) ChooseOption(_ context.Context, id, optionID string) (*models.SessionView, error) {
	s.option = optionID
	return s.view(id)
}

func (s *stubSessions) UpdateForm(_ context.Context, id string, patch models.FormPatch) (*models.SessionView, error) {
	s.lastPatch = patch
	return s.view(id)
}

func (s *stubSessions) Next(_ context.Context, id string) (*models.SessionView, error) {
	return s.view(id)
}

func (s *stubSessions) Back(_ context.Context, id string) (*models.SessionView, error) {
	return s.view(id)
}

func (s *stubSessions) LoadSlots(_ context.Context, id string) (*models.SessionView, error) {
	return s.view(id)
}

func (s *stubSessions) Submit(_ context.Context, id string) (*models.SessionView, error) {
	return s.view(id)
}

func (s *stubSessions) Close(_ context.Context, id string) error {
	s.closed = id
	return s.err
}

type stubCancellations struct {
	reason *string
	res    *booking.LookupResult
	err    error
}

func (s *stubCancellations) Lookup(context.Context, string) (*booking.LookupResult, error) {
	return s.res, s.err
}

func (s *stubCancellations) Cancel(_ context.Context, _ string, reason *string) (*booking.LookupResult, error) {
	s.reason = reason
	return s.res, s.err
}

type stubThemes struct{ email string }

func (s *stubThemes) ClientTheme(_ context.Context, email string) models.Theme {
	s.email = email
	return models.Theme{Branding: models.Branding{AppName: "Iron Temple"}}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("logger", zap.NewNop())
		c.Next()
	})
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
