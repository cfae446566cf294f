package layouts

import (
	"fmt"
	"go.uber.org/zap"
)

// Persister mirrors manager events into a Store. Writes are fire-and-forget:
// a failed write is logged and the manager state stays authoritative.
type Persister struct {
	store Store
	log   *zap.SugaredLogger

	failures int
}

func NewPersister(store Store, log *zap.SugaredLogger) *Persister {
	return &Persister{store: store, log: log}
}

// Attach subscribes the persister to m and returns the unsubscribe function.
func (p *Persister) Attach(m *Manager) func() {
	return m.Subscribe(p.Handle)
}

func (p *Persister) Handle(ev Event) {
	if err := p.apply(ev); err != nil {
		p.failures++
		p.log.Errorw("persist layout change", "kind", ev.Kind, "id", ev.LayoutID, "route", ev.RoutePath, "error", err)
	}
}

// Failures returns how many writes failed since the persister was created.
func (p *Persister) Failures() int {
	return p.failures
}

func (p *Persister) apply(ev Event) error {
	switch ev.Kind {
	case EventLayoutSelected:
		return p.setActive(ev.RoutePath, ev.LayoutID)

	case EventLayoutCreated:
		if err := p.saveLayout(ev.Layout); err != nil {
			return err
		}
		return p.setActive(ev.RoutePath, ev.LayoutID)

	case EventLayoutSaved:
		return p.saveLayout(ev.Layout)

	case EventLayoutDeleted:
		if err := p.store.DeleteLayout(ev.LayoutID); err != nil {
			return fmt.Errorf("delete layout: %w", err)
		}
		if ev.ActiveCleared {
			if err := p.store.ClearActive(ev.RoutePath); err != nil {
				return fmt.Errorf("clear active: %w", err)
			}
		}
	}

	// drafts are never persisted
	return nil
}

func (p *Persister) saveLayout(layout Layout) error {
	if err := p.store.SaveLayout(layout); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (p *Persister) setActive(route, id string) error {
	if err := p.store.SetActive(route, id); err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}
