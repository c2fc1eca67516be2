package ecs

// SparseSet maps entity slot ids to one component value each. Values are
// kept densely packed so systems iterate without holes.
type SparseSet struct {
	ids    []int
	values []any
	slots  []int // slot id - 1 -> dense index, -1 when absent
}

func (s *SparseSet) index(id int) (int, bool) {
	if s == nil || id <= 0 || id > len(s.slots) {
		return 0, false
	}
	idx := s.slots[id-1]
	if idx < 0 || idx >= len(s.ids) || s.ids[idx] != id {
		return 0, false
	}
	return idx, true
}

func (s *SparseSet) Has(id int) bool {
	_, ok := s.index(id)
	return ok
}

// Get returns the value stored for id, or nil.
func (s *SparseSet) Get(id int) any {
	idx, ok := s.index(id)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Set stores v for id, replacing any previous value.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	if idx, ok := s.index(id); ok {
		s.values[idx] = v
		return
	}
	for len(s.slots) < id {
		s.slots = append(s.slots, -1)
	}
	s.slots[id-1] = len(s.ids)
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
}

// Remove swaps the last value into id's place.
func (s *SparseSet) Remove(id int) {
	idx, ok := s.index(id)
	if !ok {
		return
	}
	last := len(s.ids) - 1
	moved := s.ids[last]
	s.ids[idx] = moved
	s.values[idx] = s.values[last]
	s.slots[moved-1] = idx

	s.ids[last] = 0
	s.values[last] = nil
	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.slots[id-1] = -1
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Entities returns the dense slot ids. The slice is owned by the set.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.ids
}
