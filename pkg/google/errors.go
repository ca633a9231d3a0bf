package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// RemoteError wraps a failed Classroom call: network trouble, an expired or
// revoked grant, or an exhausted quota.
type RemoteError struct {
	Op       string
	CourseID string
	Code     int // HTTP status, 0 when the request never got a response
	Err      error
}

func (e *RemoteError) Error() string {
	if e.CourseID != "" {
		return fmt.Sprintf("classroom %s (course %s): %v", e.Op, e.CourseID, e.Err)
	}
	return fmt.Sprintf("classroom %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Auth reports whether the failure was an authentication or permission problem.
func (e *RemoteError) Auth() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

// Quota reports whether the service rejected the call for rate or quota reasons.
func (e *RemoteError) Quota() bool {
	return e.Code == http.StatusTooManyRequests
}

// IsRemote reports whether err came from the Classroom service.
func IsRemote(err error) bool {
	var rerr *RemoteError
	return errors.As(err, &rerr)
}

func remoteError(op, courseID string, err error) error {
	rerr := &RemoteError{Op: op, CourseID: courseID, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		rerr.Code = gerr.Code
	}
	return rerr
}
