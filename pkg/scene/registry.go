package scene

import (
	"fmt"
	"sort"
	"sync"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Backend converts a drawing into an external representation. Render must
// not modify the drawing and must either return the complete output or an
// error.
type Backend interface {
	Render(d *Drawing) (string, error)
}

// BackendFunc adapts a function to [Backend].
type BackendFunc func(d *Drawing) (string, error)

// Render calls f(d).
func (f BackendFunc) Render(d *Drawing) (string, error) { return f(d) }

// Extensioner is implemented by backends that claim file extensions for
// [Drawing.RenderToFile] target inference. Extensions include the dot.
type Extensioner interface {
	Extensions() []string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register makes b available under name. Registering a name again replaces
// the previous backend. It panics if name is not a valid target name or b
// is nil.
func Register(name string, b Backend) {
	if err := errors.ValidateTargetName(name); err != nil {
		panic(fmt.Sprintf("scene: Register: %v", err))
	}
	if b == nil {
		panic("scene: Register backend is nil for " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = b
}

// Unregister removes the backend registered as name, if any.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Lookup returns the backend registered as name.
func Lookup(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[name]
	if !ok {
		return nil, errors.UnknownTargetError(name)
	}
	return b, nil
}

// Targets returns the registered target names in sorted order.
func Targets() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
