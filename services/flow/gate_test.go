package flow

import (
	"testing"

	"bookingflow/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvance(t *testing.T) {
	withFallback := models.FlowStep{Type: models.StepReservationType, Next: []models.FlowEdge{{IsFallback: true}}}

	cases := []struct {
		name string
		step models.FlowStep
		form func(*models.FormData)
		want bool
	}{
		{"choice without option", models.FlowStep{Type: models.StepReservationType}, nil, false},
		{"choice with option", models.FlowStep{Type: models.StepReservationType}, func(f *models.FormData) { f.ReservationType = "pt" }, true},
		{"choice with fallback edge", withFallback, nil, true},
		{"calendar empty", models.FlowStep{Type: models.StepCalendar}, nil, false},
		{"calendar set", models.FlowStep{Type: models.StepCalendar}, func(f *models.FormData) { f.Date = "2025-03-01" }, true},
		{"party size zero", models.FlowStep{Type: models.StepPartySize}, func(f *models.FormData) { f.PartySize = 0 }, false},
		{"party size default", models.FlowStep{Type: models.StepPartySize}, nil, true},
		{"resource empty", models.FlowStep{Type: models.StepResource}, nil, false},
		{"resource set", models.FlowStep{Type: models.StepResource}, func(f *models.FormData) { f.Resource = &models.Resource{ID: "r"} }, true},
		{"slot empty", models.FlowStep{Type: models.StepTimeSlot}, nil, false},
		{"slot set", models.FlowStep{Type: models.StepTimeSlot}, func(f *models.FormData) { f.Slot = &models.TimeSlot{StartTime: "09:00"} }, true},
		{"personal info empty", models.FlowStep{Type: models.StepPersonalInfo}, nil, false},
		{"personal info blank name", models.FlowStep{Type: models.StepPersonalInfo}, func(f *models.FormData) { f.Name = "  "; f.Email = "a@b.c" }, false},
		{"personal info bad email", models.FlowStep{Type: models.StepPersonalInfo}, func(f *models.FormData) { f.Name = "Ann"; f.Email = "ann" }, false},
		{"personal info ok", models.FlowStep{Type: models.StepPersonalInfo}, func(f *models.FormData) { f.Name = "Ann"; f.Email = "ann@example.com" }, true},
		{"custom fields", models.FlowStep{Type: models.StepCustomFields}, nil, true},
		{"confirmation", models.FlowStep{Type: models.StepConfirmation}, nil, true},
		{"unknown type", models.FlowStep{Type: "payment"}, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := models.NewFormData()
			if tc.form != nil {
				tc.form(&form)
			}
			assert.Equal(t, tc.want, CanAdvance(tc.step, form))
		})
	}
}
