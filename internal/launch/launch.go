// Package launch resolves the companion application's install location
// and hands download targets to it.
package launch

import (
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"
)

// Locator resolves the companion application's install location.
type Locator interface {
	Locate() (string, bool)
}

// PathLocator probes an ordered list of candidate paths; the first one
// that exists wins. Paths may be swapped at runtime by the config
// watcher.
type PathLocator struct {
	mu    sync.RWMutex
	paths []string
}

func NewPathLocator(paths []string) *PathLocator {
	l := &PathLocator{}
	l.SetPaths(paths)
	return l
}

func (l *PathLocator) SetPaths(paths []string) {
	next := make([]string, len(paths))
	copy(next, paths)
	l.mu.Lock()
	l.paths = next
	l.mu.Unlock()
}

func (l *PathLocator) Locate() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.paths {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Invoker launches the companion application for download targets. Every
// fault collapses to a boolean result; nothing propagates past this
// boundary.
type Invoker struct {
	locator Locator
	log     zerolog.Logger
	run     func(app, url string) error
}

func NewInvoker(locator Locator, log zerolog.Logger) *Invoker {
	return &Invoker{locator: locator, log: log, run: runOpen}
}

// Launch opens the companion application with url as its argument,
// waiting for the platform open command itself to finish. It returns
// false without side effects when url is empty or no candidate path
// exists.
func (inv *Invoker) Launch(url string) bool {
	if url == "" {
		inv.log.Warn().Msg("launch skipped, no target url")
		return false
	}
	app, ok := inv.locator.Locate()
	if !ok {
		inv.log.Error().Str("url", url).Msg("companion app not found at any candidate path")
		return false
	}
	if err := inv.run(app, url); err != nil {
		inv.log.Error().Err(err).Str("app", app).Str("url", url).Msg("launch failed")
		return false
	}
	inv.log.Info().Str("app", app).Str("url", url).Msg("companion app launched")
	return true
}

// runOpen invokes the platform "open this application with this
// argument" mechanism, falling back to a direct command when the
// library path fails.
func runOpen(app, url string) error {
	err := open.RunWith(url, app)
	if err == nil {
		return nil
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", "-a", app, url).Run()
	default:
		return exec.Command(app, url).Run()
	}
}
