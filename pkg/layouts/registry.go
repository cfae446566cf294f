package layouts

import (
	"fmt"
	"slices"
)

// Registry maps layout ids to layouts and remembers insertion order.
type Registry struct {
	layouts map[string]Layout
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		layouts: make(map[string]Layout),
	}
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns a copy of the layout stored under id.
func (r *Registry) Get(id string) (Layout, bool) {
	layout, ok := r.layouts[id]
	if !ok {
		return Layout{}, false
	}
	return layout.Clone(), true
}

// ListByRoute returns the layouts of a route in insertion order.
func (r *Registry) ListByRoute(route string) []Layout {
	out := make([]Layout, 0)
	for _, id := range r.order {
		layout := r.layouts[id]
		if layout.RoutePath == route {
			out = append(out, layout.Clone())
		}
	}
	return out
}

// Upsert inserts a new layout or replaces the arrangement of an existing one.
// An existing layout keeps its route and its deletability.
func (r *Registry) Upsert(layout Layout) error {
	existing, ok := r.layouts[layout.ID]
	if !ok {
		r.layouts[layout.ID] = layout.Clone()
		r.order = append(r.order, layout.ID)
		return nil
	}

	if existing.RoutePath != layout.RoutePath {
		return fmt.Errorf("upsert %q: route %q -> %q: %w", layout.ID, existing.RoutePath, layout.RoutePath, ErrImmutableFieldViolation)
	}

	existing.Arrangement = layout.Arrangement.Clone()
	r.layouts[layout.ID] = existing
	return nil
}

// Remove deletes a user layout and returns what was removed.
func (r *Registry) Remove(id string) (Layout, error) {
	layout, ok := r.layouts[id]
	if !ok {
		return Layout{}, fmt.Errorf("remove %q: %w", id, ErrLayoutNotFound)
	}
	if !layout.CanDelete {
		return Layout{}, fmt.Errorf("remove %q: %w", id, ErrNotDeletable)
	}

	delete(r.layouts, id)
	r.order = slices.DeleteFunc(r.order, func(other string) bool { return other == id })
	return layout, nil
}
