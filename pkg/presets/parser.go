// Package presets reads the built-in layouts shipped with the application.
package presets

import (
	"bytes"
	"codeberg.org/miketth/layoutd/pkg/layouts"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

//go:embed default.xml
var defaultPresets []byte

// Default returns the presets compiled into the binary.
func Default() (*PresetRegistry, error) {
	registry, err := Parse(bytes.NewReader(defaultPresets))
	if err != nil {
		return nil, fmt.Errorf("parse default presets: %w", err)
	}
	return registry, nil
}

func ParseFile(path string) (*PresetRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*PresetRegistry, error) {
	registry := &PresetRegistry{}
	err := xml.NewDecoder(r).Decode(registry)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	if err := registry.validate(); err != nil {
		return nil, err
	}

	return registry, nil
}

func (r *PresetRegistry) validate() error {
	seen := make(map[string]string)
	for _, route := range r.Routes {
		if route.Path == "" {
			return fmt.Errorf("route without path")
		}

		for _, l := range route.Layouts {
			if l.ID == "" {
				return fmt.Errorf("layout without id on route %q", route.Path)
			}
			if other, ok := seen[l.ID]; ok {
				return fmt.Errorf("layout %q defined on %q and %q", l.ID, other, route.Path)
			}
			seen[l.ID] = route.Path
		}
	}

	return nil
}

// RoutePaths returns the routes that have presets, in document order.
func (r *PresetRegistry) RoutePaths() []string {
	out := make([]string, 0, len(r.Routes))
	for _, route := range r.Routes {
		out = append(out, route.Path)
	}
	return out
}

// Layouts converts every preset into a non-deletable layout.
func (r *PresetRegistry) Layouts() []layouts.Layout {
	var out []layouts.Layout
	for _, route := range r.Routes {
		for _, l := range route.Layouts {
			out = append(out, layouts.Layout{
				ID:          l.ID,
				RoutePath:   route.Path,
				Arrangement: l.arrangement(),
				CanDelete:   false,
			})
		}
	}
	return out
}

func (l Layout) arrangement() layouts.Arrangement {
	out := make(layouts.Arrangement, 0, len(l.Widgets))
	for _, w := range l.Widgets {
		widget := layouts.Widget{
			ID:        w.ID,
			Component: w.Component,
			X:         w.X,
			Y:         w.Y,
			W:         w.W,
			H:         w.H,
		}
		if len(w.Settings) > 0 {
			widget.Settings = make(map[string]string, len(w.Settings))
			for _, s := range w.Settings {
				widget.Settings[s.Key] = s.Value
			}
		}
		out = append(out, widget)
	}
	return out
}
