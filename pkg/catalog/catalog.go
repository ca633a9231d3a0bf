// Package catalog keeps the cached list of active courses the refresh walks.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/classwork/pkg/ignore"
	"github.com/harrisonrobin/classwork/pkg/jsonfile"
	"github.com/harrisonrobin/classwork/pkg/model"
)

var (
	// ErrBusy means a catalog refresh or an assignment fetch is in flight.
	// Try again later.
	ErrBusy = errors.New("course refresh already in progress, try again later")
	// ErrNoCatalog means no course list could be established at all.
	ErrNoCatalog = errors.New("no course catalog available")
)

// CourseLister is the remote call a refresh needs.
type CourseLister interface {
	ListActiveCourses(ctx context.Context) ([]model.Course, error)
}

type record struct {
	Courses []model.Course `json:"courses"`
}

// Report describes how the course set moved during a refresh.
type Report struct {
	// MissingIgnored are ignored names that no active course has any more.
	MissingIgnored []string
	// Removed is how many fewer courses there are than before.
	Removed int
	// Added are the names of new courses, set when the count did not drop.
	Added []string
}

// Empty reports whether nothing worth telling the user happened.
func (r Report) Empty() bool {
	return len(r.MissingIgnored) == 0 && r.Removed == 0 && len(r.Added) == 0
}

// Catalog is the course list cached on disk, filtered by the ignore list.
type Catalog struct {
	path   string
	client CourseLister
	ignore *ignore.List
	log    *log.Logger

	// busy is held for the whole of a catalog refresh or an assignment
	// fetch cycle. Nobody ever waits on it.
	busy sync.Mutex

	mu      sync.RWMutex
	courses []model.Course
}

// New returns a catalog cached at path and filtered by ignored.
func New(path string, client CourseLister, ignored *ignore.List, logger *log.Logger) *Catalog {
	return &Catalog{
		path:   path,
		client: client,
		ignore: ignored,
		log:    logger.WithPrefix("catalog"),
	}
}

// TryAcquire takes the in-flight guard if it is free. The caller must call
// release when done.
func (c *Catalog) TryAcquire() (release func(), ok bool) {
	if !c.busy.TryLock() {
		return nil, false
	}
	return c.busy.Unlock, true
}

// Load reads the cached catalog. When there is none it refreshes from the
// remote service and reads once more.
func (c *Catalog) Load(ctx context.Context) ([]model.Course, error) {
	courses, err := c.read()
	if err == nil {
		c.set(courses)
		return c.Courses(), nil
	}
	if !jsonfile.IsNotExist(err) {
		return nil, err
	}

	c.log.Info("no cached catalog, fetching courses")
	report, err := c.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	c.logReport(report)

	courses, err = c.read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	c.set(courses)
	return c.Courses(), nil
}

// Refresh fetches the active courses, drops ignored ones, compares the result
// with the cached set and writes it back. It returns ErrBusy without doing
// anything when another refresh or a fetch cycle is running.
func (c *Catalog) Refresh(ctx context.Context) (Report, error) {
	release, ok := c.TryAcquire()
	if !ok {
		return Report{}, ErrBusy
	}
	defer release()

	if err := c.ignore.Reload(); err != nil {
		return Report{}, err
	}
	ignored := c.ignore.Set()

	remote, err := c.client.ListActiveCourses(ctx)
	if err != nil {
		return Report{}, err
	}

	filtered := filter(remote, ignored)

	var report Report
	previous, err := c.read()
	switch {
	case err == nil:
		report = compare(previous, filtered)
	case !jsonfile.IsNotExist(err):
		c.log.Warn("could not read previous catalog", "err", err)
	}
	report.MissingIgnored = missingIgnored(c.ignore.Names(), remote)

	if err := jsonfile.Write(c.path, record{Courses: filtered}); err != nil {
		return report, err
	}
	c.set(filtered)
	c.log.Info("catalog refreshed", "courses", len(filtered), "ignored", len(remote)-len(filtered))
	return report, nil
}

// Courses returns the cached courses minus any the ignore list names now.
func (c *Catalog) Courses() []model.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filter(c.courses, c.ignore.Set())
}

func (c *Catalog) set(courses []model.Course) {
	c.mu.Lock()
	c.courses = courses
	c.mu.Unlock()
}

func (c *Catalog) read() ([]model.Course, error) {
	var rec record
	if err := jsonfile.Read(c.path, &rec); err != nil {
		return nil, err
	}
	return rec.Courses, nil
}

func (c *Catalog) logReport(r Report) {
	if len(r.MissingIgnored) > 0 {
		c.log.Warn("ignored courses no longer exist", "names", r.MissingIgnored)
	}
	if r.Removed > 0 {
		c.log.Info("courses removed", "count", r.Removed)
	}
	if len(r.Added) > 0 {
		c.log.Info("courses added", "names", r.Added)
	}
}

func filter(courses []model.Course, ignored map[string]struct{}) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, course := range courses {
		if _, skip := ignored[course.Name]; skip {
			continue
		}
		out = append(out, course)
	}
	return out
}

func compare(previous, current []model.Course) Report {
	if len(current) < len(previous) {
		return Report{Removed: len(previous) - len(current)}
	}
	known := make(map[string]bool, len(previous))
	for _, course := range previous {
		known[course.ID] = true
	}
	var added []string
	for _, course := range current {
		if !known[course.ID] {
			added = append(added, course.Name)
		}
	}
	return Report{Added: added}
}

func missingIgnored(ignored []string, remote []model.Course) []string {
	names := make(map[string]bool, len(remote))
	for _, course := range remote {
		names[course.Name] = true
	}
	var missing []string
	for _, name := range ignored {
		if !names[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
