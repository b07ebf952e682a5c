package flow

import (
	"fmt"
	"sort"
	"strings"

	"bookingflow/models"
)

// Normalize validates raw steps and returns them in canonical order with the
// entry step first.
//
// Every step must carry a supported type; otherwise no step is returned and
// the error is a flow configuration error. Steps without a declared order
// take their original position. Sorting is by order, then root steps before
// branched ones, then by branch label, then by id. Finally the list is
// rotated so that the root step whose id equals entryID leads; when no root
// step matches, the sorted order is kept.
//
// Normalize is deterministic and idempotent.
func Normalize(raw []models.FlowStep, entryID string) ([]models.FlowStep, error) {
	if len(raw) == 0 {
		return nil, NewConfigurationError("no flow has been configured yet")
	}

	var unsupported []string
	for _, s := range raw {
		if !s.Type.Valid() {
			unsupported = append(unsupported, string(s.Type))
		}
	}
	if len(unsupported) > 0 {
		return nil, NewConfigurationError(fmt.Sprintf("flow contains unsupported steps: %s", strings.Join(unsupported, ", ")))
	}

	ordered := make([]models.FlowStep, len(raw))
	for i, s := range raw {
		order := s.OrderValue(i)
		s.Order = &order
		s.Branch = models.Branch(strings.TrimSpace(string(s.Branch)))
		ordered[i] = s
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	start := -1
	for i, s := range ordered {
		if s.ID == entryID && s.Branch.IsRoot() {
			start = i
			break
		}
	}
	if start <= 0 {
		return ordered, nil
	}

	rotated := make([]models.FlowStep, 0, len(ordered))
	rotated = append(rotated, ordered[start:]...)
	rotated = append(rotated, ordered[:start]...)
	return rotated, nil
}

func less(a, b models.FlowStep) bool {
	ao, bo := *a.Order, *b.Order
	if ao != bo {
		return ao < bo
	}
	if a.Branch == b.Branch {
		return a.ID < b.ID
	}
	if a.Branch.IsRoot() {
		return true
	}
	if b.Branch.IsRoot() {
		return false
	}
	return a.Branch < b.Branch
}
