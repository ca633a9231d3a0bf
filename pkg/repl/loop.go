// Package repl is the interactive prompt: it reads one command per line and
// acts on the current assignment snapshot and the course ignore list.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/classwork/pkg/catalog"
	"github.com/harrisonrobin/classwork/pkg/ignore"
	"github.com/harrisonrobin/classwork/pkg/model"
)

const prompt = "-> "

// Assignments is the read side of the assignment store.
type Assignments interface {
	Ready() bool
	Sorted() model.Snapshot
}

// CourseRefresher forces a catalog refresh.
type CourseRefresher interface {
	Refresh(ctx context.Context) (catalog.Report, error)
}

// IgnoreList is edited by the ignore and remove commands.
type IgnoreList interface {
	Add(name string) error
	Remove(name string) error
}

// Opener shows a URL to the user.
type Opener interface {
	Open(url string) error
}

// UserInputError is a problem with what the user typed. Its message is shown
// as is.
type UserInputError struct {
	Message string
}

func (e *UserInputError) Error() string {
	return e.Message
}

func inputErrorf(format string, args ...any) error {
	return &UserInputError{Message: fmt.Sprintf(format, args...)}
}

// Deps are the collaborators a Loop acts on.
type Deps struct {
	Assignments Assignments
	Catalog     CourseRefresher
	Ignore      IgnoreList
	Opener      Opener
	// Now defaults to time.Now.
	Now func() time.Time
}

// Loop is the foreground command loop. Output is serialised so background
// notifications never interleave with a command's output.
type Loop struct {
	in   io.Reader
	deps Deps
	log  *log.Logger

	mu  sync.Mutex
	out io.Writer
}

// New returns a loop reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, deps Deps, logger *log.Logger) *Loop {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Loop{in: in, out: out, deps: deps, log: logger.WithPrefix("repl")}
}

// Run reads and executes commands until exit, end of input or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(l.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		l.write("\n" + prompt)
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			l.write("\n")
			return err
		case line := <-lines:
			if l.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// Notify clears the current line, prints msg and redraws the prompt. Text the
// user had half typed stays in the terminal's input buffer but is not drawn
// again. It is safe to call from any goroutine.
func (l *Loop) Notify(msg string) {
	l.write(clearLine + noticeStyle.Render(msg) + "\n" + prompt)
}

// clearLine returns the cursor to column zero and erases the line.
const clearLine = "\r\x1b[K"

func (l *Loop) write(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, s)
}

// Execute runs one line. It reports whether the loop should stop.
func (l *Loop) Execute(ctx context.Context, line string) bool {
	token, target := parse(line)
	if token == "" {
		return false
	}

	cmd := Resolve(token)
	if cmd == CmdExit {
		return true
	}

	var b strings.Builder
	err := l.dispatch(ctx, &b, cmd, target)
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
	if err != nil {
		var uerr *UserInputError
		if !errors.As(err, &uerr) {
			l.log.Error("command failed", "command", string(cmd), "err", err)
		}
		fmt.Fprintln(l.out, errorStyle.Render(err.Error()))
	}
	return false
}

func (l *Loop) dispatch(ctx context.Context, w io.Writer, cmd Command, target string) error {
	switch {
	case cmd == CmdNone:
		renderHelp(w)
		return inputErrorf("Invalid command")
	case cmd.numberTarget():
		a, err := l.resolveAssignment(target)
		if err != nil {
			return err
		}
		return l.runAssignmentCommand(w, cmd, a)
	case cmd.courseTarget():
		name := unquote(target)
		if name == "" {
			return inputErrorf("Missing course name")
		}
		return l.runIgnoreCommand(w, cmd, name)
	case cmd == CmdList:
		return l.list(w)
	case cmd == CmdCourse:
		return l.refreshCourses(ctx, w)
	}
	return inputErrorf("Invalid command")
}

func (l *Loop) today() model.Date {
	return model.DateOf(l.deps.Now())
}

func (l *Loop) list(w io.Writer) error {
	if !l.deps.Assignments.Ready() {
		fmt.Fprintln(w, "Still gathering data...")
		return nil
	}
	sorted := l.deps.Assignments.Sorted()
	if len(sorted) == 0 {
		fmt.Fprintln(w, "No pending assignments")
		return nil
	}
	renderList(w, sorted, l.today())
	return nil
}

// resolveAssignment turns a 1-based index into an assignment of the current
// sorted view, the same numbering list shows.
func (l *Loop) resolveAssignment(target string) (model.Assignment, error) {
	if target == "" {
		return model.Assignment{}, inputErrorf("Missing assignment number")
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		return model.Assignment{}, inputErrorf("Assignment number must be a number, got %q", target)
	}
	if !l.deps.Assignments.Ready() {
		return model.Assignment{}, inputErrorf("Still gathering data...")
	}
	sorted := l.deps.Assignments.Sorted()
	if n < 1 || n > len(sorted) {
		return model.Assignment{}, inputErrorf("No assignment numbered %d", n)
	}
	return sorted[n-1], nil
}

func (l *Loop) runAssignmentCommand(w io.Writer, cmd Command, a model.Assignment) error {
	switch cmd {
	case CmdLook:
		renderDetail(w, a, l.today())
	case CmdAttachment:
		if !a.HasAttachment() {
			fmt.Fprintln(w, "This assignment has no attachment")
			return nil
		}
		if err := l.deps.Opener.Open(a.Attachment); err != nil {
			return err
		}
		fmt.Fprintf(w, "Opened attachment for %s\n", a.Name)
	case CmdOpen:
		if a.Link == "" {
			fmt.Fprintln(w, "This assignment has no link")
			return nil
		}
		if err := l.deps.Opener.Open(a.Link); err != nil {
			return err
		}
		fmt.Fprintf(w, "Opened %s\n", a.Name)
	}
	return nil
}

func (l *Loop) runIgnoreCommand(w io.Writer, cmd Command, name string) error {
	switch cmd {
	case CmdIgnore:
		if err := l.deps.Ignore.Add(name); err != nil {
			return err
		}
		fmt.Fprintf(w, "Ignoring %s. Run 'course' to refresh the course list.\n", name)
	case CmdRemove:
		if err := l.deps.Ignore.Remove(name); err != nil {
			if errors.Is(err, ignore.ErrNotIgnored) {
				return inputErrorf("%s is not on the ignore list", name)
			}
			return err
		}
		fmt.Fprintf(w, "No longer ignoring %s. Run 'course' to refresh the course list.\n", name)
	}
	return nil
}

func (l *Loop) refreshCourses(ctx context.Context, w io.Writer) error {
	report, err := l.deps.Catalog.Refresh(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrBusy) {
			return inputErrorf("Courses are being refreshed right now, try again later")
		}
		return err
	}
	for _, name := range report.MissingIgnored {
		fmt.Fprintf(w, "Ignored course %q no longer exists\n", name)
	}
	switch {
	case report.Removed == 1:
		fmt.Fprintln(w, "1 course was removed")
	case report.Removed > 1:
		fmt.Fprintf(w, "%d courses were removed\n", report.Removed)
	}
	for _, name := range report.Added {
		fmt.Fprintf(w, "New course: %s\n", name)
	}
	if report.Empty() {
		fmt.Fprintln(w, "Courses are up to date")
	}
	return nil
}
