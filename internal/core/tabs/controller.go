// Package tabs drives the tabbed content area: which pane is visible, when a
// pane's content is fetched, and how fetched content is handed to the
// selection manager. It performs no I/O itself; operations that need content
// return a *Fetch for the caller to run.
package tabs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/fitsel/internal/core/archive"
	"github.com/colonyops/fitsel/internal/core/fragment"
	"github.com/colonyops/fitsel/internal/core/logging"
	"github.com/colonyops/fitsel/internal/core/selection"
)

var (
	ErrUnknownTab         = errors.New("unknown tab")
	ErrEmptySelection     = errors.New("please select one or more files first")
	ErrNotSelectionDriven = errors.New("tab is not selection driven")
)

// Option configures a Controller.
type Option func(*Controller)

// WithGroupFilter limits which fragment groups are registered as selectable.
func WithGroupFilter(include func(groupID string) bool) Option {
	return func(c *Controller) {
		c.include = include
	}
}

// Controller owns the tab state machine. It is not safe for concurrent use;
// it is driven from the UI update loop.
type Controller struct {
	tabs       []*Tab
	byID       map[string]*Tab
	active     string
	searchPath string
	groups     *selection.Manager
	include    func(string) bool
	log        zerolog.Logger
}

// New creates a controller for specs. The first spec is the initially
// active tab. searchPath is the raw search suffix appended to each endpoint.
func New(specs []Spec, searchPath string, groups *selection.Manager, opts ...Option) (*Controller, error) {
	if len(specs) == 0 {
		return nil, errors.New("at least one tab is required")
	}
	if groups == nil {
		groups = selection.NewManager()
	}

	c := &Controller{
		byID:       make(map[string]*Tab, len(specs)),
		searchPath: archive.EncodeSearchPath(searchPath),
		groups:     groups,
		include:    func(string) bool { return true },
		log:        logging.Component("tabs"),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, s := range specs {
		if s.ID == "" {
			return nil, errors.New("tab id is required")
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate tab id %q", s.ID)
		}
		if s.PaneID == "" {
			s.PaneID = s.ID
		}
		t := &Tab{Spec: s}
		c.tabs = append(c.tabs, t)
		c.byID[s.ID] = t
	}

	c.active = c.tabs[0].ID
	return c, nil
}

// Groups returns the selection manager content is registered with.
func (c *Controller) Groups() *selection.Manager { return c.groups }

// SearchPath returns the encoded search suffix.
func (c *Controller) SearchPath() string { return c.searchPath }

// Tabs returns the tabs in configured order.
func (c *Controller) Tabs() []*Tab { return c.tabs }

// Tab returns the tab with id.
func (c *Controller) Tab(id string) (*Tab, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Active returns the active tab.
func (c *Controller) Active() *Tab { return c.byID[c.active] }

// IsActive reports whether id is the active tab. Header styling derives
// from this alone.
func (c *Controller) IsActive(id string) bool { return c.active == id }

// Visible reports whether paneID belongs to the active tab.
func (c *Controller) Visible(paneID string) bool {
	return c.Active().PaneID == paneID
}

// Start returns the first-load fetches for eager tabs.
func (c *Controller) Start() []Fetch {
	var out []Fetch
	for _, t := range c.tabs {
		if t.Eager && t.fetches() && t.state == NotLoaded {
			out = append(out, *c.firstLoad(t))
		}
	}
	return out
}

// Activate makes id the active tab. The first activation of a lazy tab
// returns the fetch for its content. A tab showing selection-derived content
// returns a fetch that restores the search-wide content.
func (c *Controller) Activate(id string) (*Fetch, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, id)
	}

	c.active = id
	c.log.Debug().Str("tab", id).Stringer("state", t.state).Msg("activate")

	if t.Eager || !t.fetches() {
		return nil, nil
	}

	switch {
	case t.state == NotLoaded:
		return c.firstLoad(t), nil
	case t.state == Loaded && t.source == SourceSelection:
		return c.firstLoad(t), nil
	}

	return nil, nil
}

// ActivateWithSelection activates a selection-driven tab and returns a fetch
// built from the source group's current selection, whatever the tab's state.
// With nothing selected it returns ErrEmptySelection and changes nothing.
func (c *Controller) ActivateWithSelection(id string) (*Fetch, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, id)
	}
	if !t.SelectionDriven {
		return nil, fmt.Errorf("%w: %s", ErrNotSelectionDriven, id)
	}

	files := c.groups.Selected(t.SourceGroup)
	if len(files) == 0 {
		return nil, ErrEmptySelection
	}

	c.active = id
	if !t.fetches() {
		return nil, nil
	}

	c.log.Debug().Str("tab", id).Int("files", len(files)).Msg("activate with selection")

	return &Fetch{
		TabID: id,
		Kind:  SelectionLoad,
		Path:  t.selectionEndpoint(),
		Files: files,
	}, nil
}

// Reload returns a first-load fetch for a tab that is not already loading.
// It is the retry path for eager tabs, which Activate never fetches.
func (c *Controller) Reload(id string) (*Fetch, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, id)
	}
	if !t.fetches() || t.state == Loading {
		return nil, nil
	}
	return c.firstLoad(t), nil
}

func (c *Controller) firstLoad(t *Tab) *Fetch {
	t.state = Loading
	t.err = nil
	return &Fetch{
		TabID: t.ID,
		Kind:  FirstLoad,
		Path:  t.Endpoint + c.searchPath,
	}
}

// Complete installs content delivered for f. Every selection group in the
// content is registered fresh, with tables sharing a group merged in
// document order. Groups the pane held before that are no longer present
// are removed unless another tab still holds them.
func (c *Controller) Complete(f Fetch, content fragment.Content) {
	t, ok := c.byID[f.TabID]
	if !ok {
		return
	}

	switch f.Kind {
	case FirstLoad:
		t.state = Loaded
		t.source = SourceDefault
	case SelectionLoad:
		t.source = SourceSelection
	}
	t.content = content
	t.err = nil

	var registered []string
	for _, id := range content.GroupIDs() {
		if !c.include(id) {
			continue
		}
		rows := content.Items(id)
		items := make([]selection.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, selection.Item{Value: r.Value, Disabled: r.Disabled})
		}
		c.groups.InitGroup(id, items)
		registered = append(registered, id)
	}

	for _, old := range t.groups {
		if !slices.Contains(registered, old) && !c.ownedByOther(t.ID, old) {
			c.groups.Remove(old)
		}
	}
	t.groups = registered

	c.log.Debug().
		Str("tab", t.ID).
		Stringer("kind", f.Kind).
		Strs("groups", registered).
		Msg("content installed")
}

// ownedByOther reports whether a tab other than tabID registered group.
func (c *Controller) ownedByOther(tabID, group string) bool {
	for _, other := range c.tabs {
		if other.ID != tabID && slices.Contains(other.groups, group) {
			return true
		}
	}
	return false
}

// Fail records a failed fetch. A failed first load makes the tab retryable;
// a failed selection load leaves the state and content alone.
func (c *Controller) Fail(f Fetch, err error) {
	t, ok := c.byID[f.TabID]
	if !ok {
		return
	}

	t.err = err
	if f.Kind == FirstLoad {
		t.state = NotLoaded
	}

	c.log.Warn().Err(err).Str("tab", t.ID).Stringer("kind", f.Kind).Msg("fetch failed")
}

// IsFirstActivation reports whether the tab has not loaded yet.
func (c *Controller) IsFirstActivation(id string) bool {
	t, ok := c.byID[id]
	return ok && t.state == NotLoaded
}

// Label returns the header caption for a tab. Selection-derived content is
// labelled "Selected" even if the tab never completed a first load.
func (c *Controller) Label(id string) string {
	t, ok := c.byID[id]
	if !ok {
		return ""
	}
	if t.Eager || t.Endpoint == "" {
		return t.Title
	}
	switch {
	case t.source == SourceSelection && t.state != Loading:
		return "Selected " + t.Title
	case t.state == NotLoaded:
		return "Load Associated " + t.Title
	default:
		return "View " + t.Title
	}
}
