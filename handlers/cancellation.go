package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"bookingflow/services/booking"
	"bookingflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CancellationManager resolves and cancels bookings by token.
type CancellationManager interface {
	Lookup(ctx context.Context, token string) (*booking.LookupResult, error)
	Cancel(ctx context.Context, token string, reason *string) (*booking.LookupResult, error)
}

// CancellationHandler serves the self-service cancellation page.
type CancellationHandler struct {
	Cancellations CancellationManager
	Logger        *zap.Logger
}

func NewCancellationHandler(cancellations CancellationManager, logger *zap.Logger) *CancellationHandler {
	return &CancellationHandler{Cancellations: cancellations, Logger: logger}
}

// LookupBooking handles GET /api/widget/bookings/:token.
func (h *CancellationHandler) LookupBooking(c *gin.Context) {
	res, err := h.Cancellations.Lookup(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelBooking handles POST /api/widget/bookings/:token/cancel.
func (h *CancellationHandler) CancelBooking(c *gin.Context) {
	var body struct {
		Reason *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	res, err := h.Cancellations.Cancel(c.Request.Context(), c.Param("token"), body.Reason)
	if err != nil {
		h.Logger.Info("Cancellation refused", zap.String("code", booking.ErrorCode(err)), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Your booking has been cancelled.",
		"booking": res.Booking,
		"client":  res.Client,
	})
}
