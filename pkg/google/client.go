package google

import (
	"context"
	"time"

	"github.com/harrisonrobin/classwork/pkg/auth"
)

// NewClient authenticates against Google and returns a Classroom client.
// Credentials and the cached token are read from dataDir.
func NewClient(ctx context.Context, dataDir string, timeout time.Duration) (*ClassroomClient, error) {
	srv, err := auth.GetClassroomService(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	return NewClassroomClient(srv, timeout), nil
}
