package flow

import "bookingflow/models"

// Navigator is the step state machine over a canonical step list.
//
// It is in one of two states: no branch, where only the entry step is
// visible and the index is 0, or inside a branch, where the index ranges over
// the branch's visible steps. Every mutation ends with the index inside the
// visible range (or 0 when nothing is visible).
type Navigator struct {
	steps   []models.FlowStep
	entryID string
	state   models.NavigationState
}

// NewNavigator starts at the entry step with no branch active.
func NewNavigator(steps []models.FlowStep, entryID string) *Navigator {
	return &Navigator{steps: steps, entryID: entryID}
}

// RestoreNavigator resumes from a saved state, clamping it to the steps.
func RestoreNavigator(steps []models.FlowStep, entryID string, state models.NavigationState) *Navigator {
	n := &Navigator{steps: steps, entryID: entryID, state: state}
	n.Recover()
	return n
}

// State returns the serialisable navigation state.
func (n *Navigator) State() models.NavigationState {
	return n.state
}

// ActiveBranch returns the active branch label, empty when none.
func (n *Navigator) ActiveBranch() models.Branch {
	return n.state.Branch
}

// Index returns the position inside the visible steps.
func (n *Navigator) Index() int {
	return n.state.Index
}

// Visible returns the currently navigable steps.
func (n *Navigator) Visible() []models.FlowStep {
	return VisibleSteps(n.steps, n.entryID, n.state.Branch)
}

// Current returns the step under the index.
func (n *Navigator) Current() (models.FlowStep, bool) {
	visible := n.Visible()
	if n.state.Index < 0 || n.state.Index >= len(visible) {
		return models.FlowStep{}, false
	}
	return visible[n.state.Index], true
}

// Traversed returns the path that led to the current position: the entry
// step that resolved the active branch followed by the branch's steps. With
// no branch active it is the entry step alone.
func (n *Navigator) Traversed() []models.FlowStep {
	visible := n.Visible()
	if n.state.Branch.IsRoot() {
		return visible
	}
	entry, ok := EntryStep(n.steps, n.entryID)
	if !ok {
		return visible
	}
	path := make([]models.FlowStep, 0, len(visible)+1)
	path = append(path, entry)
	return append(path, visible...)
}

// EnterBranch activates b and moves to its first step. Entering the root
// label is the same as ExitBranch.
func (n *Navigator) EnterBranch(b models.Branch) {
	if b.IsRoot() {
		n.ExitBranch()
		return
	}
	n.state = models.NavigationState{Branch: b, Index: 0}
}

// ExitBranch returns to the entry step.
func (n *Navigator) ExitBranch() {
	n.state = models.NavigationState{}
}

// Advance moves one step forward if the gate lets the current step go.
//
// At the entry step the move enters a branch: the chosen option's branch, or
// the fallback branch when the step declares a fallback edge. An entry step
// with neither cannot advance; that is a dead end and reported as moved ==
// false without an error, as is advancing from the last step.
func (n *Navigator) Advance(form models.FormData) (moved bool, err error) {
	cur, ok := n.Current()
	if !ok {
		return false, NewValidationError("there is no step to continue from")
	}
	if err := CheckAdvance(cur, form); err != nil {
		return false, err
	}

	if n.state.Branch.IsRoot() {
		switch {
		case cur.Type == models.StepReservationType && form.ReservationType != "":
			n.EnterBranch(models.OptionBranch(form.ReservationType))
		case cur.HasFallback():
			n.EnterBranch(models.FallbackBranch)
		default:
			return false, nil
		}
		return true, nil
	}

	last := len(n.Visible()) - 1
	if n.state.Index >= last {
		n.state.Index = max(last, 0)
		return false, nil
	}
	n.state.Index++
	return true, nil
}

// Retreat moves one step back. At the first step of a branch it leaves the
// branch instead; at the entry step it does nothing. exited reports whether
// a branch was left.
func (n *Navigator) Retreat() (exited bool) {
	if n.state.Index > 0 {
		n.state.Index--
		return false
	}
	if !n.state.Branch.IsRoot() {
		n.ExitBranch()
		return true
	}
	return false
}

// Recover clamps the index into the visible range, or resets it to 0 when
// nothing is visible.
func (n *Navigator) Recover() {
	visible := n.Visible()
	switch {
	case len(visible) == 0:
		n.state.Index = 0
	case n.state.Branch.IsRoot():
		n.state.Index = 0
	case n.state.Index >= len(visible):
		n.state.Index = len(visible) - 1
	case n.state.Index < 0:
		n.state.Index = 0
	}
}

// IsTerminal reports whether the current step is the final confirmation.
func (n *Navigator) IsTerminal() bool {
	visible := n.Visible()
	if len(visible) == 0 || n.state.Index != len(visible)-1 {
		return false
	}
	return visible[n.state.Index].Type == models.StepConfirmation
}

// Reset returns to the initial state.
func (n *Navigator) Reset() {
	n.state = models.NavigationState{}
}
