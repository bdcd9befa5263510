package recording

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for unregistered names.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory returns a fresh backend. A backend replays one picture,
// so NewBackend calls the factory every time.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = map[string]BackendFactory{}
)

// Register makes a backend available under name. Backend packages call
// it from init, so a blank import is enough to select one:
//
//	import _ "github.com/gogpu/svgfx/recording/backends/trace"
//
// It panics on a nil factory or a name registered twice.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: nil factory for backend " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := backends[name]; dup {
		panic("recording: backend " + name + " registered twice")
	}
	backends[name] = factory
}

// Unregister removes name. Removing an unknown name does nothing.
func Unregister(name string) {
	registryMu.Lock()
	delete(backends, name)
	registryMu.Unlock()
}

// NewBackend returns a new instance of the backend registered as name.
// The error wraps ErrUnknownBackend when nothing imported registers it.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory := backends[name]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("%w %q (missing blank import of its package?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// Backends lists the registered names in sorted order, for usage and
// error messages.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
