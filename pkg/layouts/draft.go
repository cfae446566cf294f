package layouts

import "fmt"

// Draft is an in-progress, unsaved copy of a layout's arrangement.
type Draft struct {
	LayoutID    string
	RoutePath   string
	Arrangement Arrangement
}

// DraftBuffer holds at most one draft. Dirtiness is always derived from the
// registry, never stored.
type DraftBuffer struct {
	registry *Registry
	draft    *Draft
}

func NewDraftBuffer(registry *Registry) *DraftBuffer {
	return &DraftBuffer{registry: registry}
}

// BeginDraft replaces any existing draft with a copy of layout.
func (b *DraftBuffer) BeginDraft(layout Layout) {
	b.draft = &Draft{
		LayoutID:    layout.ID,
		RoutePath:   layout.RoutePath,
		Arrangement: layout.Arrangement.Clone(),
	}
}

func (b *DraftBuffer) ApplyEdit(arrangement Arrangement) error {
	if b.draft == nil {
		return fmt.Errorf("apply edit: %w", ErrNoActiveDraft)
	}

	b.draft.Arrangement = arrangement.Clone()
	return nil
}

func (b *DraftBuffer) IsDirty() bool {
	if b.draft == nil {
		return false
	}

	persisted, ok := b.registry.Get(b.draft.LayoutID)
	if !ok {
		return true
	}
	return !b.draft.Arrangement.Equal(persisted.Arrangement)
}

func (b *DraftBuffer) Current() (Draft, bool) {
	if b.draft == nil {
		return Draft{}, false
	}

	d := *b.draft
	d.Arrangement = d.Arrangement.Clone()
	return d, true
}

func (b *DraftBuffer) Discard() {
	b.draft = nil
}

// Commit hands the draft to the caller for persisting and clears it.
func (b *DraftBuffer) Commit() (Draft, error) {
	if b.draft == nil {
		return Draft{}, fmt.Errorf("commit: %w", ErrNoActiveDraft)
	}

	d := *b.draft
	b.draft = nil
	return d, nil
}
