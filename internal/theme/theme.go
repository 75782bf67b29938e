package theme

// Preference is the user's stored appearance choice.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system" // defer to the ambient signal
)

// Ambient is the appearance the host environment reports. It is owned by
// the environment and read-only from this package's point of view.
type Ambient string

const (
	AmbientLight Ambient = "light"
	AmbientDark  Ambient = "dark"
)

// Resolved is the concrete appearance actually applied to the presentation
// layer. It is always light or dark, never system.
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

// ValidPreference reports whether p is one of the three recognized values.
func ValidPreference(p Preference) bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	}
	return false
}

// NormalizePreference maps anything outside the three recognized values to
// PreferenceSystem. Malformed persisted strings are not an error.
func NormalizePreference(p Preference) Preference {
	if !ValidPreference(p) {
		return PreferenceSystem
	}
	return p
}

// Next returns the preference after p in the cycle light, dark, system.
func (p Preference) Next() Preference {
	switch p {
	case PreferenceLight:
		return PreferenceDark
	case PreferenceDark:
		return PreferenceSystem
	default:
		return PreferenceLight
	}
}

// Resolve maps a preference and an ambient signal to the appearance to
// apply. A fixed light or dark preference wins outright; system mirrors the
// ambient signal. Pure and total: identical inputs always yield identical
// output.
func Resolve(p Preference, a Ambient) Resolved {
	switch p {
	case PreferenceLight:
		return ResolvedLight
	case PreferenceDark:
		return ResolvedDark
	default:
		if a == AmbientDark {
			return ResolvedDark
		}
		return ResolvedLight
	}
}
