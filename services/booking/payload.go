package booking

import (
	"time"

	"bookingflow/models"
	"bookingflow/services/flow"
)

// CheckTemporalGuards rejects a submission whose date lies before today, or
// whose start time today has already passed. Dates and times are read in
// now's location.
func CheckTemporalGuards(form models.FormData, now time.Time) error {
	if form.Date == "" || form.Slot == nil {
		return flow.NewValidationError("choose a date and time before submitting")
	}

	day, err := time.ParseInLocation(dateLayout, form.Date, now.Location())
	if err != nil {
		return flow.NewValidationError("the booking date is not a valid date")
	}
	today := startOfDay(now)
	if day.Before(today) {
		return NewTemporalGuardError("the selected date is in the past")
	}
	if !day.Equal(today) {
		return nil
	}

	minutes, err := parseClock(form.Slot.StartTime)
	if err != nil {
		return flow.NewValidationError("the selected time is not valid")
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, minutes/60, minutes%60, 0, 0, now.Location())
	if start.Before(now) {
		return NewTemporalGuardError("the selected time has already passed")
	}
	return nil
}

// BuildPayload assembles the booking request from the form. Optional fields
// are included only when a step of the producing type is on the traversed
// path and the value is present; notes are included whenever given.
func BuildPayload(traversed []models.FlowStep, form models.FormData, id models.Identifier) models.BookingPayload {
	taken := make(map[models.StepType]bool, len(traversed))
	for _, s := range traversed {
		taken[s.Type] = true
	}

	p := models.BookingPayload{
		CustomerName: form.Name,
		BookingDate:  form.Date,
		Domain:       id.Domain,
		ClientEmail:  id.ClientEmail,
		Notes:        form.Notes,
	}
	if form.Slot != nil {
		p.StartTime = form.Slot.StartTime
		if taken[models.StepTimeSlot] {
			p.EndTime = form.Slot.EndTime
		}
	}
	if taken[models.StepPersonalInfo] {
		p.CustomerEmail = form.Email
		p.CustomerPhone = form.Phone
	}
	if taken[models.StepPartySize] && form.PartySize > 0 {
		p.PartySize = form.PartySize
	}
	if taken[models.StepResource] && form.Resource != nil {
		p.ResourceID = form.Resource.ID
		p.ResourceName = form.Resource.Name
	}

	var custom models.CustomData
	if taken[models.StepReservationType] {
		custom.ReservationType = form.ReservationType
	}
	if taken[models.StepCustomFields] {
		for k, v := range form.CustomFields {
			if v == "" {
				continue
			}
			if custom.Fields == nil {
				custom.Fields = make(map[string]string)
			}
			custom.Fields[k] = v
		}
	}
	if custom.ReservationType != "" || len(custom.Fields) > 0 {
		p.CustomData = &custom
	}
	return p
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
