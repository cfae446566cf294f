package json

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"
)

const flushInterval = time.Minute

type document struct {
	Layouts []layouts.Layout  `json:"layouts"`
	Active  map[string]string `json:"active"`
}

// LayoutStore keeps layouts in memory and writes them to a JSON file from
// SaveLooper, only when something changed.
type LayoutStore struct {
	doc   document
	file  *os.File
	lock  sync.Mutex
	dirty bool
}

func NewLayoutStore(filename string) (*LayoutStore, error) {
	fileExists := true
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &LayoutStore{
		doc:   document{Active: make(map[string]string)},
		file:  file,
		dirty: true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

// Close writes pending changes and closes the file. Nothing may write to the
// store afterwards.
func (s *LayoutStore) Close() error {
	flushErr := s.Flush()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("final save: %w", flushErr)
	}
	return nil
}

func (s *LayoutStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	var doc document
	dec := json.NewDecoder(s.file)
	err = dec.Decode(&doc)
	switch {
	case errors.Is(err, io.EOF):
		// empty file
	case err != nil:
		return fmt.Errorf("decode json: %w", err)
	}

	if doc.Active == nil {
		doc.Active = make(map[string]string)
	}
	s.doc = doc

	return nil
}

// Flush writes the file if anything changed since the last write.
func (s *LayoutStore) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	err = enc.Encode(s.doc)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	err = s.file.Sync()
	if err != nil {
		return fmt.Errorf("sync file: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper flushes periodically until ctx is done. The last write happens
// in Close, once the writers have stopped.
func (s *LayoutStore) SaveLooper(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(flushInterval):
			err := s.Flush()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *LayoutStore) LoadLayouts() ([]layouts.Layout, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]layouts.Layout, 0, len(s.doc.Layouts))
	for _, layout := range s.doc.Layouts {
		out = append(out, layout.Clone())
	}
	return out, nil
}

func (s *LayoutStore) LoadActive() (map[string]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[string]string, len(s.doc.Active))
	for route, id := range s.doc.Active {
		out[route] = id
	}
	return out, nil
}

func (s *LayoutStore) SaveLayout(layout layouts.Layout) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	idx := s.indexOf(layout.ID)
	if idx < 0 {
		s.doc.Layouts = append(s.doc.Layouts, layout.Clone())
	} else {
		s.doc.Layouts[idx] = layout.Clone()
	}
	s.dirty = true
	return nil
}

func (s *LayoutStore) DeleteLayout(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.doc.Layouts = slices.Delete(s.doc.Layouts, idx, idx+1)
	s.dirty = true
	return nil
}

func (s *LayoutStore) SetActive(route string, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.doc.Active[route] = id
	s.dirty = true
	return nil
}

func (s *LayoutStore) ClearActive(route string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.doc.Active[route]; !ok {
		return nil
	}
	delete(s.doc.Active, route)
	s.dirty = true
	return nil
}

func (s *LayoutStore) indexOf(id string) int {
	return slices.IndexFunc(s.doc.Layouts, func(l layouts.Layout) bool { return l.ID == id })
}
