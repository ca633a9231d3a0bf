// Package browser hands URLs to the desktop's default browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything that is not an http(s) URL.
var ErrUnsupportedURL = errors.New("only http and https links can be opened")

// Opener launches the platform's URL handler.
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, run: start}
}

// Open validates rawURL and opens it without waiting for the browser to exit.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	name, args := command(o.goos, u.String())
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("could not open %s: %w", u, err)
	}
	return nil
}

func command(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s not found in PATH: %w", name, err)
		}
		return err
	}
	go cmd.Wait()
	return nil
}
