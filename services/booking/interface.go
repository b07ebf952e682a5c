package booking

import (
	"context"

	"bookingflow/models"
)

// API is the public booking backend the widget talks to.
type API interface {
	GetConfig(ctx context.Context, id models.Identifier) (*models.BookingConfig, error)
	GetAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResponse, error)
	CreateBooking(ctx context.Context, payload models.BookingPayload) (models.Response, error)
	LookupBooking(ctx context.Context, token string) (models.BookingLookup, error)
	CancelBooking(ctx context.Context, token string, reason *string) (models.Response, error)
}

// Prefetcher warms the availability cache for the days following a chosen
// date. Implementations must not block the caller.
type Prefetcher interface {
	Prefetch(ctx context.Context, id models.Identifier, fromDate, resourceID string)
}

var (
	_ API        = (*Client)(nil)
	_ Prefetcher = (*InlinePrefetcher)(nil)
	_ Prefetcher = (*QueuePrefetcher)(nil)
)
