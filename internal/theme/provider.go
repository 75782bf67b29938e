package theme

import "sync"

// Store persists the user's preference. Implementations absorb storage
// failures: Get falls back to PreferenceSystem when the value is missing or
// unreadable, Set keeps the in-memory value when the write fails.
type Store interface {
	Get() Preference
	Set(Preference)
}

// Watcher exposes the environment's ambient appearance signal. The returned
// unsubscribe func is idempotent and safe to call after the watcher is torn
// down.
type Watcher interface {
	Current() Ambient
	Subscribe(fn func(Ambient)) (unsubscribe func())
}

// Applier pushes a resolved appearance into the presentation layer.
type Applier interface {
	Apply(Resolved)
}

// Provider owns the authoritative {preference, resolved} record. All writes
// flow through SetPreference or the ambient subscription; any number of
// readers share the one instance and never write directly.
//
// Ambient watchers may deliver notifications from their own goroutine, so
// the provider serializes every state-mutating operation behind a mutex:
// a SetPreference call's persist, resolve and apply steps all complete
// before the call returns, and no ambient notification interleaves
// mid-update.
type Provider struct {
	store   Store
	watcher Watcher
	applier Applier

	mu       sync.Mutex
	pref     Preference
	ambient  Ambient
	resolved Resolved
	closed   bool

	unsub func()
}

// New constructs a ready provider: it loads the persisted preference
// (anything missing or malformed becomes system), snapshots the ambient
// signal, applies the resolved appearance and subscribes for ambient
// changes. It never fails; storage and detection problems degrade to
// defaults inside the collaborators.
func New(store Store, watcher Watcher, applier Applier) *Provider {
	p := &Provider{store: store, watcher: watcher, applier: applier}
	p.pref = NormalizePreference(store.Get())
	p.ambient = watcher.Current()
	p.applyLocked()
	p.unsub = watcher.Subscribe(p.onAmbient)
	return p
}

// applyLocked recomputes the resolved appearance and pushes it to the
// presentation layer. Callers hold p.mu (or, during New, have exclusive
// access).
func (p *Provider) applyLocked() {
	p.resolved = Resolve(p.pref, p.ambient)
	p.applier.Apply(p.resolved)
}

// Preference returns the current user preference.
func (p *Provider) Preference() Preference {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pref
}

// Resolved returns the appearance currently applied.
func (p *Provider) Resolved() Resolved {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}

// SetPreference persists and applies a new preference. Values outside
// light, dark and system are rejected and leave the state untouched. On
// success the persist, recompute and re-apply steps have all completed by
// the time SetPreference returns.
func (p *Provider) SetPreference(pref Preference) bool {
	if !ValidPreference(pref) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.pref = pref
	p.store.Set(pref)
	p.applyLocked()
	return true
}

// Cycle advances the preference to the next value in the light, dark,
// system cycle and returns the new preference.
func (p *Provider) Cycle() Preference {
	next := p.Preference().Next()
	p.SetPreference(next)
	return next
}

func (p *Provider) onAmbient(a Ambient) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.ambient = a
	if p.pref != PreferenceSystem {
		// Fixed preference: the signal is observed but nothing changes.
		return
	}
	p.applyLocked()
}

// Close unsubscribes from the ambient watcher. Safe to call more than
// once; notifications delivered after Close produce no state change.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unsub := p.unsub
	p.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
