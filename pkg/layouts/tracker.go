package layouts

import "fmt"

// Tracker holds the active layout id of every route.
type Tracker struct {
	registry *Registry
	active   map[string]string
}

func NewTracker(registry *Registry) *Tracker {
	return &Tracker{
		registry: registry,
		active:   make(map[string]string),
	}
}

func (t *Tracker) SetActive(route, id string) error {
	layout, ok := t.registry.Get(id)
	if !ok {
		return fmt.Errorf("set active %q: %w", id, ErrLayoutNotFound)
	}
	if layout.RoutePath != route {
		return fmt.Errorf("set active %q on %q (belongs to %q): %w", id, route, layout.RoutePath, ErrCrossRouteSelection)
	}

	t.active[route] = id
	return nil
}

func (t *Tracker) GetActive(route string) (string, bool) {
	id, ok := t.active[route]
	return id, ok
}

// ClearIfMatches empties the slot of route only when it still points at id.
// It reports whether the slot was cleared.
func (t *Tracker) ClearIfMatches(route, id string) bool {
	if current, ok := t.active[route]; !ok || current != id {
		return false
	}

	delete(t.active, route)
	return true
}

// Routes returns a copy of every tracked selection.
func (t *Tracker) Routes() map[string]string {
	out := make(map[string]string, len(t.active))
	for route, id := range t.active {
		out[route] = id
	}
	return out
}
