package flow

import "bookingflow/models"

func intp(i int) *int { return &i }

func step(id string, typ models.StepType, branch string, order int) models.FlowStep {
	return models.FlowStep{ID: id, Type: typ, Branch: models.Branch(branch), Order: intp(order)}
}

func ids(steps []models.FlowStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.ID
	}
	return out
}

// gymFlow is a two-option flow: a reservation-type entry step leading either
// to a trainer session or to a group class.
func gymFlow() []models.FlowStep {
	entry := step("choose", models.StepReservationType, "", 0)
	entry.Config.Options = []models.ChoiceOption{
		{ID: "pt", Label: "Personal training"},
		{ID: "class", Label: "Group class"},
	}
	return []models.FlowStep{
		step("pt-confirm", models.StepConfirmation, "option:pt", 5),
		step("pt-date", models.StepCalendar, "option:pt", 1),
		step("pt-trainer", models.StepResource, "option:pt", 2),
		step("pt-slot", models.StepTimeSlot, "option:pt", 3),
		step("pt-info", models.StepPersonalInfo, "option:pt", 4),
		entry,
		step("class-date", models.StepCalendar, "option:class", 1),
		step("class-size", models.StepPartySize, "option:class", 2),
		step("class-slot", models.StepTimeSlot, "option:class", 3),
		step("class-info", models.StepPersonalInfo, "option:class", 4),
		step("class-confirm", models.StepConfirmation, "option:class", 5),
	}
}
