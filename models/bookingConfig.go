package models

// BookingConfig is the business-side description of a booking widget as
// served by GET /public/bookings/config. A fetched config is an immutable
// snapshot owned by the session that loaded it.
type BookingConfig struct {
	Enabled               bool                `json:"enabled"`
	BusinessType          string              `json:"businessType"`
	SlotDuration          int                 `json:"slotDuration"` // minutes
	BufferTime            int                 `json:"bufferTime"`   // minutes
	AllowSameDayBooking   bool                `json:"allowSameDayBooking"`
	MaxAdvanceBookingDays int                 `json:"maxAdvanceBookingDays,omitempty"`
	CapacityType          string              `json:"capacityType"` // e.g. "per_resource"
	Resources             []Resource          `json:"resources"`
	OperatingHours        map[string]DayHours `json:"operatingHours"` // keyed by lowercase weekday, e.g. "monday"
	CancellationWindow    int                 `json:"cancellationWindow,omitempty"` // hours
	RequireApproval       bool                `json:"requireApproval"`
	FlowSteps             []FlowStep          `json:"flowSteps"`
	FlowStartStepID       string              `json:"flowStartStepId"`
	FlowWarnings          []string            `json:"flowWarnings,omitempty"`
}

// Resource is something a customer books against: a trainer, a table, a room.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// IsActive reports whether the resource can be booked. Resources that do not
// state it are active.
func (r Resource) IsActive() bool {
	return r.Active == nil || *r.Active
}

// DayHours holds opening hours for one weekday in HH:MM (24h).
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// DefaultMaxAdvanceBookingDays applies when a config leaves the horizon unset.
const DefaultMaxAdvanceBookingDays = 30

// MaxAdvanceDays returns the booking horizon in days.
func (c BookingConfig) MaxAdvanceDays() int {
	if c.MaxAdvanceBookingDays > 0 {
		return c.MaxAdvanceBookingDays
	}
	return DefaultMaxAdvanceBookingDays
}

// ActiveResources returns the resources a customer may choose from.
func (c BookingConfig) ActiveResources() []Resource {
	out := make([]Resource, 0, len(c.Resources))
	for _, r := range c.Resources {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

// ActiveResource looks up a bookable resource by id.
func (c BookingConfig) ActiveResource(id string) (Resource, bool) {
	for _, r := range c.Resources {
		if r.ID == id && r.IsActive() {
			return r, true
		}
	}
	return Resource{}, false
}

// RequiresResource reports whether availability can only be queried once a
// resource is chosen. Restaurants book tables by party size instead.
func (c BookingConfig) RequiresResource() bool {
	return c.BusinessType != "restaurant"
}

// ResourceLabel is the prompt shown above the resource-choice step.
func (c BookingConfig) ResourceLabel() string {
	switch c.BusinessType {
	case "gym", "fitness":
		return "Choose the personal trainer you want to book with"
	case "salon":
		return "Choose the specialist you want to book with"
	case "medical":
		return "Choose the doctor or specialist you want to book with"
	default:
		return "Choose an option"
	}
}
