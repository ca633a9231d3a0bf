// Package refresh runs the background fetch loop that keeps the assignment
// store in step with Classroom.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/classwork/pkg/catalog"
	"github.com/harrisonrobin/classwork/pkg/config"
	"github.com/harrisonrobin/classwork/pkg/model"
)

// Classroom is the part of the remote service a cycle reads.
type Classroom interface {
	ListCourseWork(ctx context.Context, courseID string) ([]model.CourseWork, error)
	ListSubmissions(ctx context.Context, courseID string) ([]model.Submission, error)
}

// Courses supplies the courses to walk and the guard that keeps a cycle from
// overlapping a catalog refresh.
type Courses interface {
	TryAcquire() (release func(), ok bool)
	Courses() []model.Course
}

// Store receives each candidate snapshot.
type Store interface {
	Replace(next model.Snapshot) (changed bool, err error)
}

// Options tunes an Engine. The zero value is usable.
type Options struct {
	// Interval between cycles. Zero means config.DefaultPollInterval.
	Interval time.Duration
	// Now returns the current time; the window is centred on its date.
	Now func() time.Time
	// OnUpdate is called with the new snapshot after it replaced the old one.
	OnUpdate func(model.Snapshot)
}

// Engine fetches pending work for every catalog course, builds a candidate
// snapshot and hands it to the store. The store is only touched when the
// candidate differs from what it holds.
type Engine struct {
	client   Classroom
	courses  Courses
	store    Store
	log      *log.Logger
	interval time.Duration
	now      func() time.Time
	onUpdate func(model.Snapshot)
}

// New returns an engine that polls client for the courses in courses and
// hands each new snapshot to store.
func New(client Classroom, courses Courses, store Store, logger *log.Logger, opts Options) *Engine {
	e := &Engine{
		client:   client,
		courses:  courses,
		store:    store,
		log:      logger.WithPrefix("refresh"),
		interval: opts.Interval,
		now:      opts.Now,
		onUpdate: opts.OnUpdate,
	}
	if e.interval <= 0 {
		e.interval = config.DefaultPollInterval
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Start runs the loop on its own goroutine until ctx is done.
func (e *Engine) Start(ctx context.Context) {
	go e.Run(ctx)
}

// Run runs a cycle straight away and then once per interval until ctx is
// done. A failed cycle is logged and retried on the next tick.
func (e *Engine) Run(ctx context.Context) {
	e.log.Info("refresh loop started", "interval", e.interval)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		if _, err := e.Cycle(ctx); err != nil {
			switch {
			case errors.Is(err, catalog.ErrBusy):
				e.log.Debug("catalog refresh in progress, skipping cycle")
			case ctx.Err() != nil:
			default:
				e.log.Error("refresh cycle failed", "err", err)
			}
		}

		select {
		case <-ctx.Done():
			e.log.Debug("refresh loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// Cycle performs one fetch and reconcile pass. It reports whether the store
// changed. Any remote error abandons the cycle before the store is touched.
func (e *Engine) Cycle(ctx context.Context) (bool, error) {
	release, ok := e.courses.TryAcquire()
	if !ok {
		return false, catalog.ErrBusy
	}
	candidate, err := e.collect(ctx)
	release()
	if err != nil {
		return false, err
	}

	changed, err := e.store.Replace(candidate)
	if err != nil {
		return false, fmt.Errorf("saving snapshot: %w", err)
	}
	if !changed {
		e.log.Debug("no changes", "assignments", len(candidate))
		return false, nil
	}

	e.log.Info("assignments updated", "assignments", len(candidate))
	if e.onUpdate != nil {
		e.onUpdate(candidate)
	}
	return true, nil
}

func (e *Engine) collect(ctx context.Context) (model.Snapshot, error) {
	start := e.now()
	window := NewWindow(model.DateOf(start))
	candidate := model.Snapshot{}

	courses := e.courses.Courses()
	e.log.Debug("cycle started", "courses", len(courses))
	for _, course := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := e.collectCourse(ctx, course, window)
		if err != nil {
			return nil, err
		}
		candidate = append(candidate, found...)
	}
	e.log.Debug("cycle finished", "assignments", len(candidate), "took", e.now().Sub(start))
	return candidate, nil
}

func (e *Engine) collectCourse(ctx context.Context, course model.Course, window Window) ([]model.Assignment, error) {
	subs, err := e.client.ListSubmissions(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	work, err := e.client.ListCourseWork(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	work = window.Truncate(work)

	var found []model.Assignment
	for _, sub := range subs {
		a, ok, err := build(course, sub, work)
		if err != nil {
			e.log.Warn("dropping malformed coursework", "course", course.Name, "err", err)
			continue
		}
		if ok {
			found = append(found, a)
		}
	}
	return found, nil
}
