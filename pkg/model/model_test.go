package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAddDaysCrossesMonthAndYear(t *testing.T) {
	d := Date{Year: 2026, Month: 12, Day: 28}
	assert.Equal(t, Date{Year: 2027, Month: 1, Day: 4}, d.AddDays(7))
	assert.Equal(t, Date{Year: 2026, Month: 12, Day: 21}, d.AddDays(-7))
	assert.Equal(t, Date{Year: 2024, Month: 2, Day: 29}, Date{Year: 2024, Month: 3, Day: 1}.AddDays(-1))
}

func TestDateBefore(t *testing.T) {
	a := Date{Year: 2026, Month: 10, Day: 18}
	assert.True(t, a.Before(Date{Year: 2026, Month: 10, Day: 19}))
	assert.True(t, a.Before(Date{Year: 2026, Month: 11, Day: 1}))
	assert.True(t, a.Before(Date{Year: 2027, Month: 1, Day: 1}))
	assert.False(t, a.Before(a))
	assert.False(t, a.Before(Date{Year: 2026, Month: 9, Day: 30}))
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, Date{Year: 2026, Month: 10, Day: 18}, DateOf(ts))
}

func TestDateValid(t *testing.T) {
	assert.True(t, Date{Year: 2024, Month: 2, Day: 29}.Valid())
	assert.False(t, Date{Year: 2026, Month: 2, Day: 29}.Valid())
	assert.False(t, Date{Year: 2026, Month: 0, Day: 1}.Valid())
	assert.False(t, Date{}.Valid())
}

func TestAssignmentDueDateJSONShape(t *testing.T) {
	a := Assignment{Name: "Essay", DueDate: Date{Year: 2026, Month: 10, Day: 18}, Course: "English", Link: "https://c/1"}
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"due_date":{"year":2026,"month":10,"day":18}`)
	assert.NotContains(t, string(b), "attachment")
}

func TestSnapshotEqualIsOrderSensitive(t *testing.T) {
	x := Assignment{Name: "x", DueDate: Date{Year: 2026, Month: 10, Day: 1}}
	y := Assignment{Name: "y", DueDate: Date{Year: 2026, Month: 10, Day: 2}}

	assert.True(t, Snapshot{x, y}.Equal(Snapshot{x, y}))
	assert.False(t, Snapshot{x, y}.Equal(Snapshot{y, x}))
	assert.False(t, Snapshot{x}.Equal(Snapshot{x, y}))
	assert.True(t, Snapshot(nil).Equal(Snapshot{}))

	changed := y
	changed.Description = "new"
	assert.False(t, Snapshot{x, y}.Equal(Snapshot{x, changed}))
}

func TestSnapshotSortedIsStableAndCopies(t *testing.T) {
	oct2 := Date{Year: 2026, Month: 10, Day: 2}
	oct1 := Date{Year: 2026, Month: 10, Day: 1}
	s := Snapshot{
		{Name: "a", DueDate: oct2},
		{Name: "b", DueDate: oct1},
		{Name: "c", DueDate: oct2},
		{Name: "d", DueDate: oct1},
	}

	sorted := s.Sorted()

	var names []string
	for _, a := range sorted {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, names)
	assert.Equal(t, "a", s[0].Name, "Sorted must not reorder the receiver")
}
