package render

import (
	"fmt"
	"path"
	"sort"

	"github.com/milk9111/abilitykit/ability"
)

// Library hands out reference-counted handles for content paths. The same
// path always maps to the same handle while it is acquired.
type Library struct {
	next    ability.Handle
	byPath  map[string]ability.Handle
	entries map[ability.Handle]*entry
}

type entry struct {
	path string
	refs int
}

var _ ability.Content = (*Library)(nil)

func NewLibrary() *Library {
	return &Library{
		byPath:  make(map[string]ability.Handle),
		entries: make(map[ability.Handle]*entry),
	}
}

func (l *Library) Acquire(p string) (ability.Handle, error) {
	if l == nil {
		return 0, fmt.Errorf("render: acquire %s: nil library", p)
	}
	clean := path.Clean(p)
	if p == "" || clean == "." {
		return 0, fmt.Errorf("render: acquire: empty path")
	}
	if h, ok := l.byPath[clean]; ok {
		l.entries[h].refs++
		return h, nil
	}
	l.next++
	h := l.next
	l.byPath[clean] = h
	l.entries[h] = &entry{path: clean, refs: 1}
	return h, nil
}

func (l *Library) Release(h ability.Handle) {
	if l == nil {
		return
	}
	e, ok := l.entries[h]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(l.entries, h)
	delete(l.byPath, e.path)
}

// Path returns the path a live handle was acquired for.
func (l *Library) Path(h ability.Handle) (string, bool) {
	if l == nil {
		return "", false
	}
	e, ok := l.entries[h]
	if !ok {
		return "", false
	}
	return e.path, true
}

// Live lists the acquired paths in order.
func (l *Library) Live() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.byPath))
	for p := range l.byPath {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
