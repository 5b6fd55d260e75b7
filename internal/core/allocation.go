package core

import (
	"fmt"
	"math"
)

// MaxSelectedProjects bounds how many projects a day can be split across.
const MaxSelectedProjects = 6

// Selection tracks which projects are picked for a day and their percentage
// shares. The zero value is empty; percentage writes are plain overwrites,
// siblings are never renormalized.
type Selection struct {
	selected    []string
	percentages map[string]int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{percentages: make(map[string]int)}
}

// Toggle flips a project in or out of the selection. Deselecting removes
// the project's percentage entry so no orphaned allocation survives.
// Selecting beyond the project limit is refused.
func (s *Selection) Toggle(projectID string) error {
	for i, id := range s.selected {
		if id == projectID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			delete(s.percentages, projectID)
			return nil
		}
	}

	if len(s.selected) >= MaxSelectedProjects {
		return fmt.Errorf("cannot select more than %d projects", MaxSelectedProjects)
	}
	s.selected = append(s.selected, projectID)
	s.percentages[projectID] = 0
	return nil
}

// SetPercentage overwrites one project's share.
func (s *Selection) SetPercentage(projectID string, pct int) {
	s.percentages[projectID] = pct
}

// Percentage returns a project's share, 0 when absent.
func (s *Selection) Percentage(projectID string) int {
	return s.percentages[projectID]
}

// Selected returns the selected project IDs in selection order.
func (s *Selection) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// TotalPercentage sums all percentage entries.
func (s *Selection) TotalPercentage() int {
	total := 0
	for _, pct := range s.percentages {
		total += pct
	}
	return total
}

// Valid reports whether the selection forms a saveable allocation:
// percentages summing to exactly 100 over 1 to 6 selected projects.
func (s *Selection) Valid() bool {
	if len(s.selected) < 1 || len(s.selected) > MaxSelectedProjects {
		return false
	}
	return s.TotalPercentage() == 100
}

// ComputeAllocations turns the selection into per-project hour breakdowns.
// Hours are rounded to 2 decimals for display. names maps project IDs to
// display names; unknown IDs stay unnamed.
func (s *Selection) ComputeAllocations(totalHours float64, names map[string]string) []ProjectAllocation {
	allocations := make([]ProjectAllocation, 0, len(s.selected))
	for _, id := range s.selected {
		pct := s.percentages[id]
		allocations = append(allocations, ProjectAllocation{
			ProjectID:   id,
			ProjectName: names[id],
			Percentage:  pct,
			Hours:       round2(float64(pct) / 100 * totalHours),
		})
	}
	return allocations
}

// ValidateAllocations checks a saved allocation payload the same way a
// live Selection would: 1 to 6 entries summing to exactly 100.
func ValidateAllocations(allocations []ProjectAllocation) error {
	if len(allocations) < 1 {
		return fmt.Errorf("at least one project allocation is required")
	}
	if len(allocations) > MaxSelectedProjects {
		return fmt.Errorf("at most %d project allocations are allowed", MaxSelectedProjects)
	}

	total := 0
	for _, a := range allocations {
		total += a.Percentage
	}
	if total != 100 {
		return fmt.Errorf("allocation percentages must sum to 100, got %d", total)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
