package refresh

import "github.com/harrisonrobin/classwork/pkg/model"

// WindowRadius is how many days either side of today count as current.
const WindowRadius = 7

// Window is the closed set of due dates worth surfacing: today and the
// WindowRadius days on either side of it.
type Window map[model.Date]struct{}

// NewWindow returns the window centred on today.
func NewWindow(today model.Date) Window {
	w := make(Window, 2*WindowRadius+1)
	for i := -WindowRadius; i <= WindowRadius; i++ {
		w[today.AddDays(i)] = struct{}{}
	}
	return w
}

// Contains reports whether due is one of the window's dates. Work without a
// due date is never in the window.
func (w Window) Contains(due *model.Date) bool {
	if due == nil {
		return false
	}
	_, ok := w[*due]
	return ok
}

// Truncate cuts work, which the service orders by due date, at the first item
// outside the window. Everything after that item is dropped, even items that
// would be inside the window on their own; this relies on the ordering.
func (w Window) Truncate(work []model.CourseWork) []model.CourseWork {
	for i := range work {
		if !w.Contains(work[i].DueDate) {
			return work[:i]
		}
	}
	return work
}
