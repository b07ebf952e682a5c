package models

import "strings"

// StepType is the closed set of step kinds a flow may contain.
type StepType string

const (
	StepReservationType StepType = "reservationType"
	StepCalendar        StepType = "calendar"
	StepTimeSlot        StepType = "timeSlot"
	StepResource        StepType = "resource"
	StepPartySize       StepType = "partySize"
	StepPersonalInfo    StepType = "personalInfo"
	StepCustomFields    StepType = "customFields"
	StepConfirmation    StepType = "confirmation"
)

// StepTypes lists every supported step type in canonical order.
var StepTypes = []StepType{
	StepReservationType,
	StepCalendar,
	StepTimeSlot,
	StepResource,
	StepPartySize,
	StepPersonalInfo,
	StepCustomFields,
	StepConfirmation,
}

// Valid reports whether t belongs to the supported set.
func (t StepType) Valid() bool {
	switch t {
	case StepReservationType, StepCalendar, StepTimeSlot, StepResource,
		StepPartySize, StepPersonalInfo, StepCustomFields, StepConfirmation:
		return true
	}
	return false
}

// Branch is the label that scopes a step to one outcome of the entry choice.
// The empty label marks a root step.
type Branch string

const (
	// NoBranch is the root label.
	NoBranch Branch = ""
	// FallbackBranch is entered when the entry step resolves through its
	// fallback edge instead of an explicit option.
	FallbackBranch Branch = "fallback"

	optionBranchPrefix = "option:"
)

// OptionBranch returns the label for a reservation-type option.
func OptionBranch(optionID string) Branch {
	return Branch(optionBranchPrefix + optionID)
}

// IsRoot reports whether the label marks a shared root step.
func (b Branch) IsRoot() bool {
	return b == NoBranch
}

// Tokens splits a comma-joined label into its individual branch labels.
func (b Branch) Tokens() []Branch {
	if b.IsRoot() {
		return nil
	}
	parts := strings.Split(string(b), ",")
	tokens := make([]Branch, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, Branch(p))
		}
	}
	return tokens
}

// Matches reports whether a step labelled b is visible while active is the
// active branch. Matching is whole-token equality, so "option:opt1" never
// matches a step labelled "option:opt10".
func (b Branch) Matches(active Branch) bool {
	if active.IsRoot() || b.IsRoot() {
		return false
	}
	for _, tok := range b.Tokens() {
		if tok == active {
			return true
		}
	}
	return false
}

// FlowStep is one unit of the intake process.
type FlowStep struct {
	ID     string     `json:"id"`
	Type   StepType   `json:"type"`
	Title  string     `json:"title,omitempty"`
	Branch Branch     `json:"branch,omitempty"`
	Order  *int       `json:"order,omitempty"`
	Next   []FlowEdge `json:"next,omitempty"`
	Config StepConfig `json:"config,omitzero"`
}

// FlowEdge connects a step to its successor. Edges on the entry step carry
// either an option id or the fallback marker.
type FlowEdge struct {
	Target     string `json:"target,omitempty"`
	OptionID   string `json:"optionId,omitempty"`
	IsFallback bool   `json:"isFallback,omitempty"`
}

// StepConfig is the type-specific sub-configuration of a step.
type StepConfig struct {
	Options []ChoiceOption `json:"options,omitempty"`
	Fields  []CustomField  `json:"fields,omitempty"`
}

// ChoiceOption is one selectable answer of a reservation-type step.
type ChoiceOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// CustomField describes a free-form field of a custom-fields step.
type CustomField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// OrderValue returns the declared order, or fallback when none was given.
func (s FlowStep) OrderValue(fallback int) int {
	if s.Order != nil {
		return *s.Order
	}
	return fallback
}

// HasFallback reports whether the step declares a fallback edge.
func (s FlowStep) HasFallback() bool {
	for _, e := range s.Next {
		if e.IsFallback {
			return true
		}
	}
	return false
}

// Option finds a choice option by id.
func (s FlowStep) Option(id string) (ChoiceOption, bool) {
	for _, o := range s.Config.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ChoiceOption{}, false
}
