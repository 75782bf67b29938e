package keymap

import "testing"

func TestLookupPrecedence(t *testing.T) {
	r := NewRegistry()
	r.Register(Binding{Key: "enter", Command: "select", Context: "global"})
	r.Register(Binding{Key: "enter", Command: "run-search", Context: "search"})

	tests := []struct {
		name    string
		key     string
		context string
		want    string
		ok      bool
	}{
		{"context beats global", "enter", "search", "run-search", true},
		{"global fallback", "enter", "chat", "select", true},
		{"unknown key", "z", "search", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.key, tt.context)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q, %q) ok = %v, want %v", tt.key, tt.context, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q, %q) = %q, want %q", tt.key, tt.context, got, tt.want)
			}
		})
	}
}

func TestUserOverrideWins(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("t", "quit")

	got, ok := r.Lookup("t", "search")
	if !ok || got != "quit" {
		t.Errorf("Lookup(t) = %q ok=%v, want quit via override", got, ok)
	}
}

func TestDefaultsIncludeThemeCycle(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	got, ok := r.Lookup("t", "chat")
	if !ok || got != "cycle-theme" {
		t.Errorf("Lookup(t) = %q ok=%v, want cycle-theme", got, ok)
	}
}

func TestHintsShadowing(t *testing.T) {
	r := NewRegistry()
	r.Register(Binding{Key: "enter", Command: "select", Context: "global"})
	r.Register(Binding{Key: "q", Command: "quit", Context: "global"})
	r.Register(Binding{Key: "enter", Command: "send-message", Context: "chat"})

	hints := r.Hints("chat")
	if len(hints) != 2 {
		t.Fatalf("Hints returned %d bindings, want 2", len(hints))
	}
	if hints[0].Command != "send-message" {
		t.Errorf("first hint = %q, want context binding first", hints[0].Command)
	}
	for _, h := range hints[1:] {
		if h.Key == "enter" {
			t.Error("shadowed global binding leaked into hints")
		}
	}
}
