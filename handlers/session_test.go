package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"bookingflow/models"
	"bookingflow/services/booking"
	"bookingflow/services/flow"
	"bookingflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sessionRouter(s *stubSessions) *gin.Engine {
	h := NewSessionHandler(s, zap.NewNop())
	r := newTestRouter()
	r.POST("/sessions", h.OpenSession)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.CloseSession)
	r.POST("/sessions/:id/option", h.ChooseOption)
	r.PATCH("/sessions/:id/form", h.UpdateForm)
	r.POST("/sessions/:id/next", h.Next)
	r.POST("/sessions/:id/submit", h.Submit)
	return r
}

func TestOpenSession(t *testing.T) {
	s := &stubSessions{}
	r := sessionRouter(s)

	w := perform(r, http.MethodPost, "/sessions", `{"domain":"irontemple.example","clientEmail":"owner@irontemple.example"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "owner@irontemple.example", s.opened.ClientEmail)

	var view models.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "sess-1", view.SessionID)
}

func TestOpenSession_EmptyBody(t *testing.T) {
	s := &stubSessions{}
	w := perform(sessionRouter(s), http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "default", s.opened.Key())
}

func TestOpenSession_MalformedBody(t *testing.T) {
	w := perform(sessionRouter(&stubSessions{}), http.MethodPost, "/sessions", `{"domain":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenSession_StoreFailure(t *testing.T) {
	s := &stubSessions{openErr: errors.New("save session sess-1: redis: connection refused")}
	w := perform(sessionRouter(s), http.MethodPost, "/sessions", `{"domain":"irontemple.example"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Message, "redis")
}

func TestChooseOption_RequiresOptionID(t *testing.T) {
	s := &stubSessions{}
	r := sessionRouter(s)

	w := perform(r, http.MethodPost, "/sessions/abc/option", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/sessions/abc/option", `{"optionId":"pt"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pt", s.option)
}

func TestUpdateForm_BindsPatch(t *testing.T) {
	s := &stubSessions{}
	w := perform(sessionRouter(s), http.MethodPatch, "/sessions/abc/form", `{"date":"2025-03-04","partySize":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, s.lastPatch.Date)
	assert.Equal(t, "2025-03-04", *s.lastPatch.Date)
	require.NotNil(t, s.lastPatch.PartySize)
	assert.Equal(t, 4, *s.lastPatch.PartySize)
	assert.Nil(t, s.lastPatch.Name)
}

func TestSessionErrors_MapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"gate refusal", flow.NewValidationError("Please select a time slot"), http.StatusBadRequest, booking.CodeValidation},
		{"backend rejection", booking.NewSubmissionError("Slot no longer available", nil), http.StatusConflict, booking.CodeSubmission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sessionRouter(&stubSessions{err: tt.err})
			w := perform(r, http.MethodPost, "/sessions/abc/next", "")
			require.Equal(t, tt.status, w.Code)

			var body utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, booking.ErrorMessage(tt.err), body.Message)
			assert.Equal(t, tt.code, body.Details)
		})
	}
}

func TestSubmit_UnclassifiedErrorIsHidden(t *testing.T) {
	r := sessionRouter(&stubSessions{err: errors.New("dial tcp: connection refused")})
	w := perform(r, http.MethodPost, "/sessions/abc/submit", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestCloseSession(t *testing.T) {
	s := &stubSessions{}
	w := perform(sessionRouter(s), http.MethodDelete, "/sessions/abc", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "abc", s.closed)
}
