package util

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/classwork/pkg/model"
)

// DaySuffix returns the English ordinal suffix for a day of the month.
func DaySuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// FormatDueDate renders d as "October 18th".
func FormatDueDate(d model.Date) string {
	return fmt.Sprintf("%s %d%s", time.Month(d.Month), d.Day, DaySuffix(d.Day))
}

// RelativeDay describes d relative to today: "today", "tomorrow",
// "yesterday", "in 3 days" or "2 days ago".
func RelativeDay(d, today model.Date) string {
	days := int(d.Time(time.UTC).Sub(today.Time(time.UTC)).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}
