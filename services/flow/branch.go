package flow

import "bookingflow/models"

// VisibleSteps projects canonical steps onto the active branch.
//
// With no active branch exactly one step is visible: the root step whose id
// is entryID, or the first step when none matches. With an active branch the
// visible steps are those whose label matches it, in canonical order; root
// steps are hidden.
func VisibleSteps(steps []models.FlowStep, entryID string, active models.Branch) []models.FlowStep {
	if len(steps) == 0 {
		return nil
	}

	if active.IsRoot() {
		entry, _ := EntryStep(steps, entryID)
		return []models.FlowStep{entry}
	}

	visible := make([]models.FlowStep, 0, len(steps))
	for _, s := range steps {
		if s.Branch.Matches(active) {
			visible = append(visible, s)
		}
	}
	return visible
}

// EntryStep returns the root step with id entryID, falling back to the first
// step. The boolean is false only when steps is empty.
func EntryStep(steps []models.FlowStep, entryID string) (models.FlowStep, bool) {
	if len(steps) == 0 {
		return models.FlowStep{}, false
	}
	for _, s := range steps {
		if s.ID == entryID && s.Branch.IsRoot() {
			return s, true
		}
	}
	return steps[0], true
}
