package models

// TimeSlot is a bookable start time, optionally with an end time, both in
// HH:MM (24h). Slots are produced by the backend or by the local generator
// and are never mutated afterwards.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

// AvailabilityRequest identifies one availability lookup.
type AvailabilityRequest struct {
	Identifier Identifier `json:"identifier"`
	Date       string     `json:"date"` // YYYY-MM-DD
	ResourceID string     `json:"resourceId,omitempty"`
}

// AvailabilityResponse is the body of GET /public/bookings/availability.
// Slots is a pointer so that a missing array can be told apart from an
// empty one.
type AvailabilityResponse struct {
	Slots *[]TimeSlot `json:"slots"`
}
