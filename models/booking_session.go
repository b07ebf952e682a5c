package models

import "time"

// FormData accumulates everything the customer has entered so far.
type FormData struct {
	Date            string            `json:"date,omitempty"` // YYYY-MM-DD
	Resource        *Resource         `json:"resource,omitempty"`
	Slot            *TimeSlot         `json:"slot,omitempty"`
	PartySize       int               `json:"partySize"`
	Name            string            `json:"name,omitempty"`
	Email           string            `json:"email,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CustomFields    map[string]string `json:"customFields,omitempty"`
	ReservationType string            `json:"reservationType,omitempty"` // chosen option id
}

// DefaultPartySize is the party size a fresh form starts with.
const DefaultPartySize = 2

// NewFormData returns the initial form.
func NewFormData() FormData {
	return FormData{PartySize: DefaultPartySize}
}

// NavigationState is the serialisable position of a navigator.
type NavigationState struct {
	Index  int    `json:"index"`
	Branch Branch `json:"activeBranch,omitempty"`
}

// BookingSession holds one open widget between requests.
type BookingSession struct {
	SessionID      string          `json:"sessionId"`
	Identifier     Identifier      `json:"identifier"`
	Config         BookingConfig   `json:"config"`
	Steps          []FlowStep      `json:"steps"`
	FlowError      string          `json:"flowError,omitempty"`
	Navigation     NavigationState `json:"navigation"`
	Form           FormData        `json:"form"`
	AvailableSlots []TimeSlot      `json:"availableSlots,omitempty"`
	// SlotsGeneration is bumped whenever an input of the slot query changes;
	// availability responses issued under an older generation are dropped.
	SlotsGeneration uint64    `json:"slotsGeneration"`
	SuccessMessage  string    `json:"successMessage,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FormPatch is a partial form update; nil fields are left untouched.
type FormPatch struct {
	Date         *string           `json:"date,omitempty"`
	ResourceID   *string           `json:"resourceId,omitempty"`
	Slot         *TimeSlot         `json:"slot,omitempty"`
	PartySize    *int              `json:"partySize,omitempty"`
	Name         *string           `json:"name,omitempty"`
	Email        *string           `json:"email,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// SessionView is what the widget renders.
type SessionView struct {
	SessionID      string     `json:"sessionId"`
	VisibleSteps   []FlowStep `json:"visibleSteps"`
	CurrentStep    *FlowStep  `json:"currentStep,omitempty"`
	Index          int        `json:"index"`
	ActiveBranch   Branch     `json:"activeBranch,omitempty"`
	CanAdvance     bool       `json:"canAdvance"`
	IsTerminal     bool       `json:"isTerminal"`
	Form           FormData   `json:"form"`
	Slots          []TimeSlot `json:"slots"`
	FlowError      string     `json:"flowError,omitempty"`
	SuccessMessage string     `json:"successMessage,omitempty"`
	ResourceLabel  string     `json:"resourceLabel,omitempty"`
	Resources      []Resource `json:"resources,omitempty"`
}
