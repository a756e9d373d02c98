// Package loader implements the module loader hook: an explicit registry of
// extension handlers and the content-addressed compile pipeline behind them.
package loader

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/coil/internal/core/ports"
)

var _ ports.HandlerLookup = (*Registry)(nil)

// Registry maps file extensions to load handlers.
// It is created once at startup and consulted on every module resolution.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ports.LoadHandler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]ports.LoadHandler),
	}
}

// Install registers handler for ext, replacing any previous handler.
// Empty extensions are ignored.
func (r *Registry) Install(ext string, handler ports.LoadHandler) {
	ext = NormalizeExtension(ext)
	if ext == "" || handler == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[ext] = handler
}

// Unregister removes the handlers for the given extensions.
func (r *Registry) Unregister(exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range exts {
		delete(r.handlers, NormalizeExtension(ext))
	}
}

// Lookup returns the handler whose extension is the longest suffix of path.
func (r *Registry) Lookup(path string) (ports.LoadHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := ""
	for ext := range r.handlers {
		if len(ext) > len(best) && strings.HasSuffix(path, ext) && len(path) > len(ext) {
			best = ext
		}
	}
	if best == "" {
		return nil, false
	}
	return r.handlers[best], true
}

// Handles reports whether a handler is registered for path.
func (r *Registry) Handles(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.handlers))
	for ext := range r.handlers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// NormalizeExtension trims ext and adds a missing leading dot.
// It returns "" for blank input.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
