package pinball

import "github.com/vovakirdan/pinball-madness/internal/physics"

// entities indexes live bodies by kind. Lookups never go through names.
type entities struct {
	byKind map[BodyKind][]*physics.Body
}

func newEntities() *entities {
	return &entities{byKind: make(map[BodyKind][]*physics.Body)}
}

func (e *entities) add(k BodyKind, b *physics.Body) *physics.Body {
	e.byKind[k] = append(e.byKind[k], b)
	return b
}

// first returns the oldest live body of kind k, or nil.
func (e *entities) first(k BodyKind) *physics.Body {
	for _, b := range e.byKind[k] {
		if !b.Removed() {
			return b
		}
	}
	return nil
}

// all returns the live bodies of the given kinds.
func (e *entities) all(kinds ...BodyKind) []*physics.Body {
	var out []*physics.Body
	for _, k := range kinds {
		for _, b := range e.byKind[k] {
			if !b.Removed() {
				out = append(out, b)
			}
		}
	}
	return out
}

func (e *entities) count(kinds ...BodyKind) int {
	return len(e.all(kinds...))
}

// forget drops removed bodies from the index.
func (e *entities) forget(k BodyKind) {
	live := e.byKind[k][:0]
	for _, b := range e.byKind[k] {
		if !b.Removed() {
			live = append(live, b)
		}
	}
	if len(live) == 0 {
		delete(e.byKind, k)
		return
	}
	e.byKind[k] = live
}

// removeAll takes every body of the given kinds out of w.
func (e *entities) removeAll(w *physics.World, kinds ...BodyKind) int {
	n := 0
	for _, k := range kinds {
		for _, b := range e.byKind[k] {
			if !b.Removed() {
				w.Remove(b)
				n++
			}
		}
		delete(e.byKind, k)
	}
	return n
}

func (e *entities) reset() {
	e.byKind = make(map[BodyKind][]*physics.Body)
}
