package keymap

// Binding maps a key to a command within an activation context.
type Binding struct {
	Key     string // bubbletea key string (e.g., "ctrl+c", "t")
	Command string // command ID (e.g., "cycle-theme")
	Context string // "global" or a page ID
}

// Registry resolves keys to commands. User overrides beat defaults, and a
// page context beats the global one.
type Registry struct {
	bindings  []Binding
	overrides map[string]string // key -> command, applies in every context
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		overrides: make(map[string]string),
	}
}

// Register adds a binding.
func (r *Registry) Register(b Binding) {
	r.bindings = append(r.bindings, b)
}

// SetUserOverride maps key to command regardless of context.
func (r *Registry) SetUserOverride(key, command string) {
	r.overrides[key] = command
}

// Lookup resolves key within context. Precedence: user override, context
// binding, global binding.
func (r *Registry) Lookup(key, context string) (string, bool) {
	if cmd, ok := r.overrides[key]; ok {
		return cmd, true
	}
	for _, b := range r.bindings {
		if b.Key == key && b.Context == context {
			return b.Command, true
		}
	}
	for _, b := range r.bindings {
		if b.Key == key && b.Context == "global" {
			return b.Command, true
		}
	}
	return "", false
}

// Hints returns the bindings visible in context, for the footer: the
// context's own bindings first, then globals whose keys the context does
// not shadow.
func (r *Registry) Hints(context string) []Binding {
	var hints []Binding
	shadowed := make(map[string]bool)
	for _, b := range r.bindings {
		if b.Context == context {
			hints = append(hints, b)
			shadowed[b.Key] = true
		}
	}
	for _, b := range r.bindings {
		if b.Context == "global" && !shadowed[b.Key] {
			hints = append(hints, b)
		}
	}
	return hints
}
