package flow

import (
	"strings"

	"bookingflow/models"
)

// CanAdvance reports whether the customer may leave step given the form.
func CanAdvance(step models.FlowStep, form models.FormData) bool {
	return CheckAdvance(step, form) == nil
}

// CheckAdvance is CanAdvance with the reason attached. Unknown step types
// never pass.
func CheckAdvance(step models.FlowStep, form models.FormData) error {
	switch step.Type {
	case models.StepReservationType:
		if form.ReservationType != "" || step.HasFallback() {
			return nil
		}
		return NewValidationError("choose an option to continue")
	case models.StepCalendar:
		if form.Date != "" {
			return nil
		}
		return NewValidationError("choose a date to continue")
	case models.StepPartySize:
		if form.PartySize >= 1 {
			return nil
		}
		return NewValidationError("party size must be at least 1")
	case models.StepResource:
		if form.Resource != nil {
			return nil
		}
		return NewValidationError("choose an option to continue")
	case models.StepTimeSlot:
		if form.Slot != nil {
			return nil
		}
		return NewValidationError("choose a time to continue")
	case models.StepPersonalInfo:
		email := strings.TrimSpace(form.Email)
		if strings.TrimSpace(form.Name) != "" && email != "" && strings.Contains(email, "@") {
			return nil
		}
		return NewValidationError("enter your name and a valid email address")
	case models.StepCustomFields:
		// Per-field requirements are not enforced yet.
		return nil
	case models.StepConfirmation:
		return nil
	default:
		return NewValidationError("unsupported step type: " + string(step.Type))
	}
}
