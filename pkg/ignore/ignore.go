// Package ignore keeps the set of course names the user does not want to see.
// The set lives in a plain text file, one course name per line, so it can be
// edited by hand as well as through the prompt.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harrisonrobin/classwork/pkg/jsonfile"
)

var (
	// ErrNotIgnored is returned by Remove for a name that is not in the list.
	ErrNotIgnored = errors.New("course is not ignored")
	// ErrEmptyName is returned for a blank course name.
	ErrEmptyName = errors.New("course name is empty")
)

// List is the ignore-list file and its in-memory copy.
type List struct {
	path  string
	mu    sync.RWMutex
	names []string
}

// Load reads the ignore list at path. A missing file is an empty list.
func Load(path string) (*List, error) {
	l := &List{path: path}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads the file, picking up edits made outside the program.
func (l *List) Reload() error {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.mu.Lock()
			l.names = nil
			l.mu.Unlock()
			return nil
		}
		return &jsonfile.PersistenceError{Op: "open", Path: l.path, Err: err}
	}
	defer f.Close()

	names, err := parse(f)
	if err != nil {
		return &jsonfile.PersistenceError{Op: "read", Path: l.path, Err: err}
	}

	l.mu.Lock()
	l.names = names
	l.mu.Unlock()
	return nil
}

func parse(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, scanner.Err()
}

// Path returns the location of the ignore-list file.
func (l *List) Path() string {
	return l.path
}

// Names returns the ignored course names in file order.
func (l *List) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Set returns the ignored names as a set.
func (l *List) Set() map[string]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	set := make(map[string]struct{}, len(l.names))
	for _, n := range l.names {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether name is ignored.
func (l *List) Contains(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(name) >= 0
}

func (l *List) indexOf(name string) int {
	for i, n := range l.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Add appends name to the file. Adding a name that is already present is a
// no-op.
func (l *List) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(name) >= 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return &jsonfile.PersistenceError{Op: "mkdir", Path: l.path, Err: err}
	}
	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return &jsonfile.PersistenceError{Op: "open", Path: l.path, Err: err}
	}
	defer f.Close()

	line := name + "\n"
	unterminated, err := missingFinalNewline(f)
	if err != nil {
		return &jsonfile.PersistenceError{Op: "read", Path: l.path, Err: err}
	}
	if unterminated {
		line = "\n" + line
	}
	if _, err := io.WriteString(f, line); err != nil {
		return &jsonfile.PersistenceError{Op: "append", Path: l.path, Err: err}
	}
	l.names = append(l.names, name)
	return nil
}

// missingFinalNewline reports whether a hand-edited file ends without a
// newline, in which case an append would join two names on one line.
func missingFinalNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// Remove rewrites the file without name.
func (l *List) Remove(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotIgnored, name)
	}

	remaining := make([]string, 0, len(l.names)-1)
	remaining = append(remaining, l.names[:i]...)
	remaining = append(remaining, l.names[i+1:]...)

	var b strings.Builder
	for _, n := range remaining {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(l.path, []byte(b.String()), 0600); err != nil {
		return &jsonfile.PersistenceError{Op: "write", Path: l.path, Err: err}
	}
	l.names = remaining
	return nil
}
