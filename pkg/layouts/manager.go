package layouts

import (
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"slices"
)

// Selectable is one entry of the layout picker of a route.
type Selectable struct {
	Layout   Layout `json:"layout"`
	IsActive bool   `json:"isActive"`
}

// Manager is the layout lifecycle controller. It owns the registry, the
// active selection tracker and the draft buffer of one session and keeps
// them consistent. It is not safe for concurrent use; callers serialize.
type Manager struct {
	registry *Registry
	tracker  *Tracker
	drafts   *DraftBuffer

	newID IDGenerator
	log   *zap.SugaredLogger

	subscribers []subscriber
	nextSubID   int
}

func NewManager(newID IDGenerator, log *zap.SugaredLogger) *Manager {
	if newID == nil {
		newID = uuid.NewString
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	registry := NewRegistry()
	return &Manager{
		registry: registry,
		tracker:  NewTracker(registry),
		drafts:   NewDraftBuffer(registry),
		newID:    newID,
		log:      log,
	}
}

// Subscribe registers fn to be called after every successful mutation and
// returns a function that removes the subscription. Like every other Manager
// method it must not race with mutations; attach subscribers before handing
// the manager to a server.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})

	return func() {
		m.subscribers = slices.DeleteFunc(m.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

func (m *Manager) emit(ev Event) {
	// subscribers may unsubscribe while being notified
	subs := slices.Clone(m.subscribers)
	for _, s := range subs {
		s.fn(ev)
	}
}

// Restore seeds the manager with previously known layouts and selections.
// Layouts are applied in order, so a stored copy of a preset overrides the
// preset's arrangement. Invalid entries are skipped. No events are emitted.
func (m *Manager) Restore(layouts []Layout, active map[string]string) {
	for _, layout := range layouts {
		if err := m.registry.Upsert(layout); err != nil {
			m.log.Warnw("skipping layout on restore", "id", layout.ID, "error", err)
		}
	}

	for route, id := range active {
		if err := m.tracker.SetActive(route, id); err != nil {
			m.log.Warnw("skipping active selection on restore", "route", route, "id", id, "error", err)
		}
	}

	m.log.Debugw("restored layouts", "layouts", m.registry.Len(), "active", m.tracker.Routes())
}

func (m *Manager) SelectLayout(route, id string) error {
	layout, ok := m.registry.Get(id)
	if !ok || layout.RoutePath != route {
		return fmt.Errorf("select %q on %q: %w", id, route, ErrLayoutNotFound)
	}

	if err := m.tracker.SetActive(route, id); err != nil {
		return fmt.Errorf("select %q: %w", id, err)
	}

	m.beginDraft(layout)
	m.emit(Event{Kind: EventLayoutSelected, RoutePath: route, LayoutID: id, Layout: layout})
	return nil
}

// beginDraft starts editing layout. The previous draft is dropped even when
// it holds unsaved edits; subscribers learn about that through
// EventDraftDiscarded.
func (m *Manager) beginDraft(layout Layout) {
	if prev, ok := m.drafts.Current(); ok && m.drafts.IsDirty() {
		m.log.Infow("discarding unsaved draft", "id", prev.LayoutID, "route", prev.RoutePath)
		m.drafts.Discard()
		m.emit(Event{Kind: EventDraftDiscarded, RoutePath: prev.RoutePath, LayoutID: prev.LayoutID})
	}

	m.drafts.BeginDraft(layout)
}

func (m *Manager) EditDraft(arrangement Arrangement) error {
	if err := m.drafts.ApplyEdit(arrangement); err != nil {
		return err
	}

	m.emitEdited()
	return nil
}

// AddComponent appends widget to the draft. A widget without id gets a
// generated one.
func (m *Manager) AddComponent(widget Widget) (Widget, error) {
	draft, ok := m.drafts.Current()
	if !ok {
		return Widget{}, fmt.Errorf("add component: %w", ErrNoActiveDraft)
	}

	if widget.ID == "" {
		widget.ID = m.newID()
	}
	if _, exists := draft.Arrangement.Widget(widget.ID); exists {
		return Widget{}, fmt.Errorf("add component %q: %w", widget.ID, ErrDuplicateWidgetID)
	}

	arrangement := append(draft.Arrangement, widget.Clone())
	if err := m.drafts.ApplyEdit(arrangement); err != nil {
		return Widget{}, err
	}

	m.emitEdited()
	return widget, nil
}

func (m *Manager) emitEdited() {
	draft, _ := m.drafts.Current()
	m.emit(Event{
		Kind:      EventDraftEdited,
		RoutePath: draft.RoutePath,
		LayoutID:  draft.LayoutID,
		Dirty:     m.drafts.IsDirty(),
	})
}

// SaveLayout writes the draft into the registry and returns the persisted
// layout. The draft is cleared afterwards.
func (m *Manager) SaveLayout() (Layout, error) {
	draft, err := m.drafts.Commit()
	if err != nil {
		return Layout{}, fmt.Errorf("save: %w", err)
	}

	layout := Layout{
		ID:          draft.LayoutID,
		RoutePath:   draft.RoutePath,
		Arrangement: draft.Arrangement,
		CanDelete:   true,
	}
	if err := m.registry.Upsert(layout); err != nil {
		m.drafts.BeginDraft(layout)
		return Layout{}, fmt.Errorf("save: %w", err)
	}

	saved, _ := m.registry.Get(layout.ID)
	m.emit(Event{Kind: EventLayoutSaved, RoutePath: saved.RoutePath, LayoutID: saved.ID, Layout: saved})
	return saved, nil
}

// CreateLayout adds an empty user layout to route, makes it active and opens
// a draft on it. An empty suggestedID gets a generated id.
func (m *Manager) CreateLayout(route, suggestedID string) (Layout, error) {
	id := suggestedID
	if id == "" {
		id = m.newID()
	}
	if _, exists := m.registry.Get(id); exists {
		return Layout{}, fmt.Errorf("create %q: %w", id, ErrDuplicateLayoutID)
	}

	layout := Layout{
		ID:          id,
		RoutePath:   route,
		Arrangement: Arrangement{},
		CanDelete:   true,
	}
	if err := m.registry.Upsert(layout); err != nil {
		return Layout{}, fmt.Errorf("create %q: %w", id, err)
	}
	if err := m.tracker.SetActive(route, id); err != nil {
		return Layout{}, fmt.Errorf("create %q: %w", id, err)
	}

	m.beginDraft(layout)
	m.emit(Event{Kind: EventLayoutCreated, RoutePath: route, LayoutID: id, Layout: layout.Clone()})
	return layout, nil
}

func (m *Manager) DeleteLayout(id string) error {
	removed, err := m.registry.Remove(id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	cleared := m.tracker.ClearIfMatches(removed.RoutePath, id)
	if draft, ok := m.drafts.Current(); ok && draft.LayoutID == id {
		m.drafts.Discard()
	}

	m.emit(Event{
		Kind:          EventLayoutDeleted,
		RoutePath:     removed.RoutePath,
		LayoutID:      id,
		Layout:        removed,
		ActiveCleared: cleared,
	})
	return nil
}

// ListSelectable returns the layouts of route in insertion order, flagging
// the active one.
func (m *Manager) ListSelectable(route string) []Selectable {
	active, hasActive := m.tracker.GetActive(route)

	layouts := m.registry.ListByRoute(route)
	out := make([]Selectable, 0, len(layouts))
	for _, layout := range layouts {
		out = append(out, Selectable{
			Layout:   layout,
			IsActive: hasActive && layout.ID == active,
		})
	}
	return out
}

func (m *Manager) GetActive(route string) (string, bool) {
	return m.tracker.GetActive(route)
}

func (m *Manager) IsDirty() bool {
	return m.drafts.IsDirty()
}

func (m *Manager) Draft() (Draft, bool) {
	return m.drafts.Current()
}

func (m *Manager) Layout(id string) (Layout, bool) {
	return m.registry.Get(id)
}
