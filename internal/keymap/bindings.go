package keymap

// RegisterDefaults installs the default key bindings.
func RegisterDefaults(r *Registry) {
	for _, b := range []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "tab", Command: "next-page", Context: "global"},
		{Key: "shift+tab", Command: "prev-page", Context: "global"},
		{Key: "1", Command: "focus-page-1", Context: "global"},
		{Key: "2", Command: "focus-page-2", Context: "global"},
		{Key: "3", Command: "focus-page-3", Context: "global"},
		{Key: "t", Command: "cycle-theme", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},
		{Key: "r", Command: "refresh", Context: "global"},
		{Key: "j", Command: "cursor-down", Context: "global"},
		{Key: "down", Command: "cursor-down", Context: "global"},
		{Key: "k", Command: "cursor-up", Context: "global"},
		{Key: "up", Command: "cursor-up", Context: "global"},
		{Key: "esc", Command: "back", Context: "global"},

		// Search page
		{Key: "/", Command: "focus-query", Context: "search"},
		{Key: "enter", Command: "run-search", Context: "search"},

		// Chat page
		{Key: "enter", Command: "send-message", Context: "chat"},
		{Key: "i", Command: "focus-input", Context: "chat"},
		{Key: "y", Command: "yank-answer", Context: "chat"},
		{Key: "g", Command: "scroll-top", Context: "chat"},
		{Key: "G", Command: "scroll-bottom", Context: "chat"},

		// Domains page
		{Key: "enter", Command: "select-domain", Context: "domains"},
	} {
		r.Register(b)
	}
}
