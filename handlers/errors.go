package handlers

import (
	"net/http"

	"bookingflow/services/booking"
	"bookingflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps an engine error to its HTTP status.
func statusFor(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeValidation, booking.CodeTemporalGuard:
		return http.StatusBadRequest
	case booking.CodeFlowConfiguration:
		return http.StatusUnprocessableEntity
	case booking.CodeCancellationWindow:
		return http.StatusForbidden
	case booking.CodeSubmission:
		return http.StatusConflict
	case booking.CodeSessionNotFound, booking.CodeBookingNotFound:
		return http.StatusNotFound
	case booking.CodeBookingFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Unclassified errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	code := booking.ErrorCode(err)
	if code == "" {
		getLogger(c).Error("Unhandled widget error", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, "Something went wrong. Please try again.", "")
		return
	}
	utils.JSONError(c, status, booking.ErrorMessage(err), code)
}
