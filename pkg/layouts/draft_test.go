package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftBufferDirtyTracking(t *testing.T) {
	persisted := Arrangement{{ID: "chart", W: 12, H: 6}}
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading", Arrangement: persisted}))
	b := NewDraftBuffer(r)

	assert.False(t, b.IsDirty(), "no draft is never dirty")

	layout, _ := r.Get("default")
	b.BeginDraft(layout)
	assert.False(t, b.IsDirty())

	edited := Arrangement{{ID: "chart", W: 24, H: 6}}
	require.NoError(t, b.ApplyEdit(edited))
	assert.True(t, b.IsDirty())

	require.NoError(t, b.ApplyEdit(persisted.Clone()))
	assert.False(t, b.IsDirty(), "editing back to the persisted value is clean")
}

func TestDraftBufferUnpersistedIsDirty(t *testing.T) {
	b := NewDraftBuffer(NewRegistry())
	b.BeginDraft(Layout{ID: "new", RoutePath: "/trading"})
	assert.True(t, b.IsDirty())
}

func TestDraftBufferWithoutDraft(t *testing.T) {
	b := NewDraftBuffer(NewRegistry())

	assert.ErrorIs(t, b.ApplyEdit(Arrangement{}), ErrNoActiveDraft)

	_, err := b.Commit()
	assert.ErrorIs(t, err, ErrNoActiveDraft)

	_, ok := b.Current()
	assert.False(t, ok)
}

func TestDraftBufferCommitClears(t *testing.T) {
	r := NewRegistry()
	b := NewDraftBuffer(r)
	b.BeginDraft(Layout{ID: "l", RoutePath: "/trading"})
	require.NoError(t, b.ApplyEdit(Arrangement{{ID: "chart"}}))

	d, err := b.Commit()
	require.NoError(t, err)
	assert.Equal(t, "l", d.LayoutID)
	assert.Equal(t, "/trading", d.RoutePath)
	assert.Len(t, d.Arrangement, 1)

	_, ok := b.Current()
	assert.False(t, ok)
	assert.False(t, b.IsDirty())
}

func TestDraftBufferDiscard(t *testing.T) {
	b := NewDraftBuffer(NewRegistry())
	b.BeginDraft(Layout{ID: "l", RoutePath: "/trading"})
	b.Discard()

	_, ok := b.Current()
	assert.False(t, ok)
}
