// Package store holds the current assignment snapshot and its copy on disk.
package store

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/classwork/pkg/jsonfile"
	"github.com/harrisonrobin/classwork/pkg/model"
)

type record struct {
	Assignments model.Snapshot `json:"assignments"`
}

// Store is the authoritative assignment snapshot. Readers get whichever
// snapshot was current when they asked; a replacement is a single pointer
// swap, so no reader ever sees a half-built one.
type Store struct {
	path    string
	current atomic.Pointer[model.Snapshot]
	log     *log.Logger
}

// New returns a store backed by the JSON file at path. Call Load to read it.
func New(path string, logger *log.Logger) *Store {
	return &Store{path: path, log: logger.WithPrefix("store")}
}

// Load reads the persisted snapshot. A missing file leaves the store empty
// and not ready.
func (s *Store) Load() error {
	var rec record
	if err := jsonfile.Read(s.path, &rec); err != nil {
		if jsonfile.IsNotExist(err) {
			s.log.Debug("no saved snapshot", "path", s.path)
			return nil
		}
		return err
	}
	snap := rec.Assignments
	if snap == nil {
		snap = model.Snapshot{}
	}
	s.current.Store(&snap)
	s.log.Debug("loaded snapshot", "assignments", len(snap))
	return nil
}

// Ready reports whether a snapshot has been loaded or produced yet.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Snapshot returns the current snapshot in production order. It is nil
// until the store is ready. Callers must not modify it.
func (s *Store) Snapshot() model.Snapshot {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return nil
}

// Sorted returns the current snapshot ordered by due date.
func (s *Store) Sorted() model.Snapshot {
	return s.Snapshot().Sorted()
}

// Replace installs next if it differs from the current snapshot. The new
// snapshot is written to disk before it becomes visible; when the write fails
// the current snapshot stays in place and the error is returned.
func (s *Store) Replace(next model.Snapshot) (bool, error) {
	prev := s.current.Load()
	if prev != nil && prev.Equal(next) {
		return false, nil
	}

	if next == nil {
		next = model.Snapshot{}
	}
	if err := jsonfile.Write(s.path, record{Assignments: next}); err != nil {
		return false, err
	}
	if !s.current.CompareAndSwap(prev, &next) {
		// Another writer got in between. There is only one writer in
		// practice; keep its snapshot.
		s.log.Warn("snapshot replaced concurrently, dropping update")
		return false, nil
	}
	return true, nil
}
