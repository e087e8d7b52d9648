package models

import (
	"sort"
	"strings"
)

// Normalize maps case variants of the known priorities ("high", " LOW ") to
// their canonical form. Other values are returned unchanged.
func (p TaskPriority) Normalize() TaskPriority {
	for _, known := range []TaskPriority{TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow} {
		if strings.EqualFold(strings.TrimSpace(string(p)), string(known)) {
			return known
		}
	}
	return p
}

// PriorityRank maps a priority to its sort rank. Unknown or absent priorities rank lowest.
func PriorityRank(p TaskPriority) int {
	switch p {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 1
	default:
		return 0
	}
}

// SortByPriority returns a copy of tasks ordered High, Medium, Low, then everything else.
// The input slice is not modified.
func SortByPriority(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PriorityRank(sorted[i].Priority) > PriorityRank(sorted[j].Priority)
	})
	return sorted
}
