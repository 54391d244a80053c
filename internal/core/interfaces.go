package core

// StoredState is what survives across invocations: the session token and the
// last known preference map. The Go stand-in for the browser's local storage.
type StoredState struct {
	Token       string         `json:"token,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// PreferenceStore persists StoredState between runs.
type PreferenceStore interface {
	Load() (StoredState, error)
	Save(StoredState) error
	Clear() error
}

// Visibility gates background auto-refresh. The terminal analog of the
// browser's page-visibility API: refreshing makes no sense when nobody is
// looking at the output.
type Visibility interface {
	Visible() bool
}
