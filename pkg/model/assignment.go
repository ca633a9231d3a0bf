package model

import "sort"

// Assignment is a piece of pending work. Values are never mutated after
// construction; a refresh builds new ones.
type Assignment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     Date   `json:"due_date"`
	Course      string `json:"course"`
	Attachment  string `json:"attachment,omitempty"`
	Link        string `json:"link"`
}

// HasAttachment reports whether the assignment carries an attached file.
func (a Assignment) HasAttachment() bool {
	return a.Attachment != ""
}

// Snapshot is every assignment known as of the last refresh or load, in the
// order it was produced.
type Snapshot []Assignment

// Equal compares two snapshots element by element. Order matters: the same
// assignments produced in a different order are a different snapshot.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Sorted returns a copy ordered by due date. Assignments due on the same day
// keep their relative order.
func (s Snapshot) Sorted() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}
