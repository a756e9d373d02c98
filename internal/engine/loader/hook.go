package loader

import "slices"

// Hook is the handle returned by Loader.Register.
// It can be re-invoked to re-install the loader and removed again.
type Hook struct {
	loader     *Loader
	extensions []string
}

// Register re-installs the loader for its primary extension and the given
// extensions. It is equivalent to calling Loader.Register again.
func (h *Hook) Register(extensions ...string) *Hook {
	return h.loader.Register(extensions...)
}

// Unregister removes every extension this hook installed.
func (h *Hook) Unregister() {
	h.loader.registry.Unregister(h.extensions...)
}

// Extensions returns the extensions this hook installed.
func (h *Hook) Extensions() []string {
	return slices.Clone(h.extensions)
}
