package models

// Partitions groups tasks by status for display.
// Membership is derived from Status on every call and never stored.
type Partitions struct {
	Active    []Task
	Completed []Task
	Archived  []Task
}

// Len returns the total number of tasks across all partitions
func (p Partitions) Len() int {
	return len(p.Active) + len(p.Completed) + len(p.Archived)
}

// Partition splits tasks into active, completed and archived groups.
// Every task lands in exactly one group and input order is kept within each group.
func Partition(tasks []Task) Partitions {
	var p Partitions
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusCompleted:
			p.Completed = append(p.Completed, t)
		case TaskStatusArchived:
			p.Archived = append(p.Archived, t)
		default:
			p.Active = append(p.Active, t)
		}
	}
	return p
}
