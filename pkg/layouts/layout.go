package layouts

import (
	"maps"
	"slices"
)

// Layout is a named widget arrangement that belongs to exactly one route.
type Layout struct {
	ID          string      `json:"id"`
	RoutePath   string      `json:"routePath"`
	Arrangement Arrangement `json:"arrangement"`
	CanDelete   bool        `json:"canDelete"`
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	l.Arrangement = l.Arrangement.Clone()
	return l
}

// Widget is a single component placed on the grid.
type Widget struct {
	ID        string            `json:"i"`
	Component string            `json:"c"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	W         int               `json:"w"`
	H         int               `json:"h"`
	Settings  map[string]string `json:"settings,omitempty"`
}

func (w Widget) Equal(other Widget) bool {
	return w.ID == other.ID &&
		w.Component == other.Component &&
		w.X == other.X && w.Y == other.Y &&
		w.W == other.W && w.H == other.H &&
		maps.Equal(w.Settings, other.Settings)
}

func (w Widget) Clone() Widget {
	if w.Settings != nil {
		w.Settings = maps.Clone(w.Settings)
	}
	return w
}

// Arrangement is the ordered set of widgets of a layout. The manager treats it
// as an opaque value and only relies on Equal and Clone.
type Arrangement []Widget

// Equal compares two arrangements structurally. A nil and an empty
// arrangement are equal.
func (a Arrangement) Equal(other Arrangement) bool {
	return slices.EqualFunc(a, other, Widget.Equal)
}

func (a Arrangement) Clone() Arrangement {
	if a == nil {
		return nil
	}

	out := make(Arrangement, len(a))
	for i, w := range a {
		out[i] = w.Clone()
	}
	return out
}

// Widget looks up a widget by id.
func (a Arrangement) Widget(id string) (Widget, bool) {
	idx := slices.IndexFunc(a, func(w Widget) bool { return w.ID == id })
	if idx < 0 {
		return Widget{}, false
	}
	return a[idx], true
}
