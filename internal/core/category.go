package core

import "strings"

// Categorize maps a task's label set to its kanban category. Matching is
// case-insensitive and substring-based, so "@putting-off", "Putting_Off"
// and "putting-off-for-now" all land in the same column. Tasks carrying no
// reserved label default to timely; that catch-all is deliberate, not an
// error state.
func Categorize(labels []string) Category {
	for _, label := range labels {
		l := strings.ToLower(label)
		if strings.Contains(l, "putting-off") || strings.Contains(l, "putting_off") {
			return CategoryPuttingOff
		}
	}
	for _, label := range labels {
		if strings.Contains(strings.ToLower(label), "strategy") {
			return CategoryStrategy
		}
	}
	return CategoryTimely
}

// ApplyCategory returns the label set with the reserved category labels
// stripped and the target category's label appended. Non-category labels
// keep their order.
func ApplyCategory(labels []string, cat Category) []string {
	out := make([]string, 0, len(labels)+1)
	for _, label := range labels {
		if isCategoryLabel(label) {
			continue
		}
		out = append(out, label)
	}
	return append(out, cat.Label())
}

func isCategoryLabel(label string) bool {
	for _, reserved := range CategoryLabels {
		if label == reserved {
			return true
		}
	}
	return false
}
