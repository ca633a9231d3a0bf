package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	args []string
	err  error
}

func (r *recorder) run(name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestOpenUsesPlatformCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"https://classroom.google.com/c/1"}},
		{"darwin", "open", []string{"https://classroom.google.com/c/1"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://classroom.google.com/c/1"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			o := &Opener{goos: tt.goos, run: rec.run}

			require.NoError(t, o.Open("https://classroom.google.com/c/1"))
			assert.Equal(t, tt.name, rec.name)
			assert.Equal(t, tt.args, rec.args)
		})
	}
}

func TestOpenRejectsNonWebURLs(t *testing.T) {
	rec := &recorder{}
	o := &Opener{goos: "linux", run: rec.run}

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		err := o.Open(raw)
		assert.ErrorIs(t, err, ErrUnsupportedURL, raw)
	}
	assert.Empty(t, rec.name, "nothing should have been launched")
}

func TestOpenWrapsLaunchFailure(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	o := &Opener{goos: "linux", run: rec.run}

	err := o.Open("https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
