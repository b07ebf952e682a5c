package models

// Identifier names the business a widget books for. ClientEmail is preferred
// over Domain because it is the more reliable key.
type Identifier struct {
	Domain      string `json:"domain,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
}

// Key returns the cache identifier: client email, then domain, then "default".
func (i Identifier) Key() string {
	switch {
	case i.ClientEmail != "":
		return i.ClientEmail
	case i.Domain != "":
		return i.Domain
	default:
		return "default"
	}
}

// BookingPayload is the outbound POST /public/bookings body. Optional fields
// are present only when the step producing them was traversed and carries a
// value. A payload is built once and never mutated.
type BookingPayload struct {
	CustomerName  string      `json:"customer_name"`
	BookingDate   string      `json:"booking_date"` // YYYY-MM-DD
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	PartySize     int         `json:"party_size,omitempty"`
	ResourceID    string      `json:"resource_id,omitempty"`
	ResourceName  string      `json:"resource_name,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	CustomData    *CustomData `json:"custom_data,omitempty"`
	Domain        string      `json:"domain,omitempty"`
	ClientEmail   string      `json:"clientEmail,omitempty"`
}

// CustomData carries flow-specific answers.
type CustomData struct {
	ReservationType string            `json:"reservationType,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
}

// Response is the success/error envelope used by the public booking API.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Booking statuses reported by the lookup endpoint.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// BookingLookup is the body of GET /public/bookings/lookup/:token.
type BookingLookup struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Booking LookupBooking `json:"booking"`
	Client  LookupClient  `json:"client"`
}

// LookupBooking is the booking as seen through a cancellation link.
// HoursUntilBooking is computed by the backend and trusted as-is.
type LookupBooking struct {
	ID                 string `json:"id"`
	CustomerName       string `json:"customerName,omitempty"`
	BookingDate        string `json:"bookingDate"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime,omitempty"`
	ResourceName       string `json:"resourceName,omitempty"`
	Status             string `json:"status"`
	CanCancel          *bool  `json:"canCancel,omitempty"`
	HoursUntilBooking  int    `json:"hoursUntilBooking"`
	CancellationWindow int    `json:"cancellationWindow"`
}

// LookupClient is the business owning a looked-up booking.
type LookupClient struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// CancelRequest is the POST /public/bookings/cancel/:token body.
type CancelRequest struct {
	Reason *string `json:"reason"`
}
