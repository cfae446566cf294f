package layouts

// Store is the persistence sink for layouts and per-route selections. The
// manager never calls it directly; a Persister mirrors manager events into it.
type Store interface {
	LoadLayouts() ([]Layout, error)
	LoadActive() (map[string]string, error)
	SaveLayout(layout Layout) error
	DeleteLayout(id string) error
	SetActive(route string, id string) error
	ClearActive(route string) error
}

// IDGenerator produces identifiers for layouts created without a suggested id.
type IDGenerator func() string
