package memory

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"sync"
)

type LayoutStore struct {
	layouts map[string]layouts.Layout
	order   []string
	active  map[string]string
	lock    sync.Mutex
}

func NewLayoutStore() *LayoutStore {
	return &LayoutStore{
		layouts: make(map[string]layouts.Layout),
		active:  make(map[string]string),
	}
}

func (s *LayoutStore) LoadLayouts() ([]layouts.Layout, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]layouts.Layout, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.layouts[id].Clone())
	}
	return out, nil
}

func (s *LayoutStore) LoadActive() (map[string]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[string]string, len(s.active))
	for route, id := range s.active {
		out[route] = id
	}
	return out, nil
}

func (s *LayoutStore) SaveLayout(layout layouts.Layout) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.layouts[layout.ID]; !ok {
		s.order = append(s.order, layout.ID)
	}
	s.layouts[layout.ID] = layout.Clone()
	return nil
}

func (s *LayoutStore) DeleteLayout(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.layouts[id]; !ok {
		return nil
	}

	delete(s.layouts, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *LayoutStore) SetActive(route string, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.active[route] = id
	return nil
}

func (s *LayoutStore) ClearActive(route string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.active, route)
	return nil
}
