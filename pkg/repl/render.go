package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harrisonrobin/classwork/pkg/model"
	"github.com/harrisonrobin/classwork/pkg/util"
)

var (
	dividerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const dividerText = "---------------- TODAY ----------------"

// entry renders "Name --- Due: October 18th (Course)".
func entry(a model.Assignment) string {
	return fmt.Sprintf("%s --- Due: %s (%s)", a.Name, util.FormatDueDate(a.DueDate), a.Course)
}

// renderList writes the sorted assignments, numbered from 1, with a TODAY
// divider just before the first one due today or later.
func renderList(w io.Writer, sorted model.Snapshot, today model.Date) {
	divided := false
	for i, a := range sorted {
		overdue := a.DueDate.Before(today)
		if !divided && !overdue {
			fmt.Fprintln(w, dividerStyle.Render(dividerText))
			divided = true
		}
		line := fmt.Sprintf("%d. %s", i+1, entry(a))
		if overdue {
			line = overdueStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

// renderDetail writes everything known about a.
func renderDetail(w io.Writer, a model.Assignment, today model.Date) {
	attachment := a.Attachment
	if !a.HasAttachment() {
		attachment = mutedStyle.Render("none")
	}
	fmt.Fprintln(w, labelStyle.Render(a.Name))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Course:"), a.Course)
	fmt.Fprintf(w, "%s %s (%s)\n", labelStyle.Render("Due:"), util.FormatDueDate(a.DueDate), util.RelativeDay(a.DueDate, today))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Attachment:"), attachment)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Link:"), a.Link)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimRight(a.Description, "\n"))
}

func renderHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands (any unambiguous prefix of two or more letters works):")
	for _, c := range Vocabulary {
		fmt.Fprintln(w, "  "+usage[c])
	}
}
