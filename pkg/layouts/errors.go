package layouts

import "errors"

var (
	ErrLayoutNotFound          = errors.New("layout not found")
	ErrCrossRouteSelection     = errors.New("layout belongs to a different route")
	ErrNotDeletable            = errors.New("layout cannot be deleted")
	ErrDuplicateLayoutID       = errors.New("layout id already exists")
	ErrNoActiveDraft           = errors.New("no active draft")
	ErrImmutableFieldViolation = errors.New("route of an existing layout cannot change")
	ErrDuplicateWidgetID       = errors.New("widget id already exists in draft")
)
