package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bookingflow/services/booking"
	"bookingflow/services/flow"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", flow.NewValidationError("pick a date"), http.StatusBadRequest},
		{"temporal guard", booking.NewTemporalGuardError("too late"), http.StatusBadRequest},
		{"flow configuration", flow.NewConfigurationError("no steps"), http.StatusUnprocessableEntity},
		{"cancellation window", booking.NewCancellationWindowError("too close"), http.StatusForbidden},
		{"submission", booking.NewSubmissionError("slot taken", nil), http.StatusConflict},
		{"wrapped submission", fmt.Errorf("submit: %w", booking.NewSubmissionError("slot taken", nil)), http.StatusConflict},
		{"booking not found", &booking.Error{Code: booking.CodeBookingNotFound, Message: "Booking not found"}, http.StatusNotFound},
		{"booking fetch", &booking.Error{Code: booking.CodeBookingFetch, Message: "Could not load booking details."}, http.StatusBadGateway},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
