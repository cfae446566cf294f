package layouts

type EventKind string

const (
	EventLayoutSelected EventKind = "layout_selected"
	EventDraftEdited    EventKind = "draft_edited"
	EventDraftDiscarded EventKind = "draft_discarded"
	EventLayoutSaved    EventKind = "layout_saved"
	EventLayoutCreated  EventKind = "layout_created"
	EventLayoutDeleted  EventKind = "layout_deleted"
)

// Event describes one successful mutation of the manager.
type Event struct {
	Kind      EventKind
	RoutePath string
	LayoutID  string

	// Layout is the affected layout as it is in the registry after the
	// mutation, or as it was before removal for EventLayoutDeleted.
	Layout Layout

	// Dirty is the dirty state right after the mutation.
	Dirty bool

	// ActiveCleared is set on EventLayoutDeleted when the deleted layout was
	// the active one of its route.
	ActiveCleared bool
}

type subscriber struct {
	id int
	fn func(Event)
}
