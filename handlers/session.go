package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"bookingflow/models"
	"bookingflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionManager drives booking sessions on behalf of the widget.
type SessionManager interface {
	Open(ctx context.Context, id models.Identifier) (*models.SessionView, error)
	Get(ctx context.Context, sessionID string) (*models.SessionView, error)
	ChooseOption(ctx context.Context, sessionID, optionID string) (*models.SessionView, error)
	UpdateForm(ctx context.Context, sessionID string, patch models.FormPatch) (*models.SessionView, error)
	Next(ctx context.Context, sessionID string) (*models.SessionView, error)
	Back(ctx context.Context, sessionID string) (*models.SessionView, error)
	LoadSlots(ctx context.Context, sessionID string) (*models.SessionView, error)
	Submit(ctx context.Context, sessionID string) (*models.SessionView, error)
	Close(ctx context.Context, sessionID string) error
}

// SessionHandler serves the widget session endpoints.
type SessionHandler struct {
	Sessions SessionManager
	Logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions SessionManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Logger: logger}
}

// OpenSession handles POST /api/widget/sessions.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	var id models.Identifier
	if err := c.ShouldBindJSON(&id); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	view, err := h.Sessions.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/widget/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, view, err)
}

// CloseSession handles DELETE /api/widget/sessions/:id.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	if err := h.Sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChooseOption handles POST /api/widget/sessions/:id/option.
func (h *SessionHandler) ChooseOption(c *gin.Context) {
	var body struct {
		OptionID string `json:"optionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "optionId is required", err.Error())
		return
	}

	view, err := h.Sessions.ChooseOption(c.Request.Context(), c.Param("id"), body.OptionID)
	h.respond(c, view, err)
}

// UpdateForm handles PATCH /api/widget/sessions/:id/form.
func (h *SessionHandler) UpdateForm(c *gin.Context) {
	var patch models.FormPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	view, err := h.Sessions.UpdateForm(c.Request.Context(), c.Param("id"), patch)
	h.respond(c, view, err)
}

// Next handles POST /api/widget/sessions/:id/next.
func (h *SessionHandler) Next(c *gin.Context) {
	view, err := h.Sessions.Next(c.Request.Context(), c.Param("id"))
	h.respond(c, view, err)
}

// Back handles POST /api/widget/sessions/:id/back.
func (h *SessionHandler) Back(c *gin.Context) {
	view, err := h.Sessions.Back(c.Request.Context(), c.Param("id"))
	h.respond(c, view, err)
}

// LoadSlots handles GET /api/widget/sessions/:id/slots.
func (h *SessionHandler) LoadSlots(c *gin.Context) {
	view, err := h.Sessions.LoadSlots(c.Request.Context(), c.Param("id"))
	h.respond(c, view, err)
}

// Submit handles POST /api/widget/sessions/:id/submit.
func (h *SessionHandler) Submit(c *gin.Context) {
	sessionID := c.Param("id")
	view, err := h.Sessions.Submit(c.Request.Context(), sessionID)
	if err != nil {
		h.Logger.Warn("Booking submission rejected", zap.String("sessionId", sessionID), zap.Error(err))
	}
	h.respond(c, view, err)
}

func (h *SessionHandler) respond(c *gin.Context, view *models.SessionView, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
