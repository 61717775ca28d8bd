package directive

import (
	"slices"
	"sync"
)

// Handler runs one directive occurrence and returns the raw HTML it expands to.
type Handler interface {
	OptionSpec() OptionSpec
	Run(opts Options) (string, error)
}

// Registrar is the capability directives need to install themselves.
type Registrar interface {
	Register(name string, h Handler)
}

// Registry maps directive names to their handlers.
// It is filled once during setup and only read while documents are parsed.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register installs h under name, replacing any previous handler with that name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered directive names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run executes the named directive against raw, unconverted options.
func (r *Registry) Run(name string, raw Options) (string, error) {
	h, ok := r.Lookup(name)
	if !ok {
		return "", &UnknownDirectiveError{Name: name}
	}

	opts, err := h.OptionSpec().Coerce(raw)
	if err != nil {
		return "", err
	}

	return h.Run(opts)
}
