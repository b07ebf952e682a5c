package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bookingflow/models"

	"go.uber.org/zap"
)

// CancellationDecision says whether a looked-up booking may be cancelled and,
// if not, why.
type CancellationDecision struct {
	CanCancel bool   `json:"canCancel"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Reasons a cancellation is refused.
const (
	ReasonAlreadyCancelled = "already_cancelled"
	ReasonCompleted        = "completed"
	ReasonWindow           = "window"
	ReasonNotAllowed       = "not_allowed"
)

// EvaluateCancellation decides cancel eligibility. HoursUntilBooking comes
// from the backend and is not recomputed against the local clock. A backend
// that explicitly refuses is never overridden.
func EvaluateCancellation(b models.LookupBooking) CancellationDecision {
	switch {
	case b.Status == models.StatusCancelled:
		return CancellationDecision{Reason: ReasonAlreadyCancelled, Message: "This appointment has already been cancelled."}
	case b.Status == models.StatusCompleted:
		return CancellationDecision{Reason: ReasonCompleted, Message: "This appointment can no longer be cancelled."}
	case b.HoursUntilBooking < b.CancellationWindow:
		return CancellationDecision{
			Reason: ReasonWindow,
			Message: fmt.Sprintf("You can only cancel if the appointment is at least %d hours away. Your appointment starts in %d hours.",
				b.CancellationWindow, b.HoursUntilBooking),
		}
	case b.CanCancel != nil && !*b.CanCancel:
		return CancellationDecision{Reason: ReasonNotAllowed, Message: "This appointment can no longer be cancelled."}
	default:
		return CancellationDecision{CanCancel: true}
	}
}

// LookupResult is a booking reached through a cancellation link.
type LookupResult struct {
	Booking  models.LookupBooking `json:"booking"`
	Client   models.LookupClient  `json:"client"`
	Decision CancellationDecision `json:"decision"`
}

// CancellationService handles the self-service cancellation page.
type CancellationService struct {
	api          API
	availability *AvailabilityService
	logger       *zap.Logger
}

func NewCancellationService(api API, availability *AvailabilityService, logger *zap.Logger) *CancellationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CancellationService{api: api, availability: availability, logger: logger}
}

// Lookup resolves a cancellation token.
func (s *CancellationService) Lookup(ctx context.Context, token string) (*LookupResult, error) {
	res, err := s.api.LookupBooking(ctx, token)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, newError(CodeBookingNotFound, messageOr(err, "Booking not found"), err)
		}
		s.logger.Warn("booking lookup failed", zap.Error(err))
		return nil, newError(CodeBookingFetch, "Could not load booking details. Please try again later.", err)
	}
	if !res.Success {
		return nil, newError(CodeBookingNotFound, orDefault(res.Error, "Booking not found"), nil)
	}
	return &LookupResult{
		Booking:  res.Booking,
		Client:   res.Client,
		Decision: EvaluateCancellation(res.Booking),
	}, nil
}

// Cancel re-checks eligibility and only then asks the backend to cancel. A
// refused cancellation issues no cancel request.
func (s *CancellationService) Cancel(ctx context.Context, token string, reason *string) (*LookupResult, error) {
	found, err := s.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if !found.Decision.CanCancel {
		return found, NewCancellationWindowError(found.Decision.Message)
	}

	res, err := s.api.CancelBooking(ctx, token, reason)
	if err != nil {
		return found, NewSubmissionError(messageOr(err, "Cancellation failed"), err)
	}
	if !res.Success {
		return found, NewSubmissionError(orDefault(res.Error, "Cancellation failed"), nil)
	}

	id := models.Identifier{Domain: found.Client.Domain, ClientEmail: found.Client.Email}
	if _, err := s.availability.InvalidateDate(ctx, id, found.Booking.BookingDate); err != nil {
		s.logger.Warn("invalidate availability after cancellation", zap.String("identifier", id.Key()), zap.Error(err))
	}

	s.logger.Info("booking cancelled", zap.String("bookingId", found.Booking.ID))
	found.Booking.Status = models.StatusCancelled
	found.Decision = EvaluateCancellation(found.Booking)
	return found, nil
}

// messageOr returns the backend's message for API errors and fallback for
// transport failures.
func messageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
