package availability

// Selector is an insertion-ordered set of slots. The zero value is an
// empty selector ready to use.
type Selector struct {
	slots []Slot
}

// NewSelector returns a selector holding the given slots, duplicates are
// dropped.
func NewSelector(slots ...Slot) *Selector {
	s := &Selector{}
	for _, slot := range slots {
		if !s.Contains(slot) {
			s.slots = append(s.slots, slot)
		}
	}
	return s
}

// Toggle removes the slot if present, otherwise appends it. It returns
// the new membership.
func (s *Selector) Toggle(slot Slot) bool {
	if i := s.indexOf(slot); i >= 0 {
		s.slots = append(s.slots[:i], s.slots[i+1:]...)
		return false
	}
	s.slots = append(s.slots, slot)
	return true
}

// Contains reports membership. A nil selector contains nothing.
func (s *Selector) Contains(slot Slot) bool {
	return s.indexOf(slot) >= 0
}

// Len returns the number of selected slots. A nil selector has length 0.
func (s *Selector) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// Slots returns a copy of the selected slots in insertion order.
func (s *Selector) Slots() []Slot {
	if s == nil || len(s.slots) == 0 {
		return nil
	}
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Clone returns an independent copy. Cloning nil returns nil.
func (s *Selector) Clone() *Selector {
	if s == nil {
		return nil
	}
	return &Selector{slots: s.Slots()}
}

func (s *Selector) indexOf(slot Slot) int {
	if s == nil {
		return -1
	}
	for i, existing := range s.slots {
		if existing == slot {
			return i
		}
	}
	return -1
}
