package tabs

import "github.com/colonyops/fitsel/internal/core/fragment"

// State is the load state of a tab's content pane.
type State int

const (
	NotLoaded State = iota
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Source records where the pane's current content came from.
type Source int

const (
	SourceNone      Source = iota
	SourceDefault          // search-wide first load
	SourceSelection        // derived from a file selection
)

// Spec describes one tab. Specs come from configuration and do not change
// for the life of a Controller.
type Spec struct {
	ID                string
	PaneID            string
	Title             string
	Endpoint          string // empty for tabs whose content is never fetched
	SelectionEndpoint string // defaults to Endpoint
	SelectionDriven   bool
	SourceGroup       string
	Allow             bool
	HideDownloadBar   bool
	Eager             bool // fetched by Start, never by Activate
}

func (s Spec) fetches() bool {
	return s.Endpoint != "" && s.Allow
}

func (s Spec) selectionEndpoint() string {
	if s.SelectionEndpoint != "" {
		return s.SelectionEndpoint
	}
	return s.Endpoint
}

// Tab is the runtime state of one configured tab.
type Tab struct {
	Spec

	state   State
	source  Source
	content fragment.Content
	groups  []string
	err     error
}

func (t *Tab) State() State              { return t.state }
func (t *Tab) Source() Source            { return t.source }
func (t *Tab) Content() fragment.Content { return t.content }

// Groups returns the selection groups registered from this tab's content.
func (t *Tab) Groups() []string { return t.groups }

// Err returns the error from the most recent failed fetch, if any.
func (t *Tab) Err() error { return t.err }

// FetchKind distinguishes the two ways a pane gets content.
type FetchKind int

const (
	FirstLoad FetchKind = iota
	SelectionLoad
)

func (k FetchKind) String() string {
	if k == SelectionLoad {
		return "selection"
	}
	return "first_load"
}

// Fetch describes a request the caller must perform and later report back
// through Complete or Fail. Files is nil for first loads.
type Fetch struct {
	TabID string
	Kind  FetchKind
	Path  string
	Files []string
}
