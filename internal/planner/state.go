package planner

import (
	"strconv"
	"strings"
)

// EmptyMarker is the literal used for empty slots in the flattened goal
// mapping of the result contract.
const EmptyMarker = "empty"

// State is a snapshot of every slot's contents. Only occupied slots are
// stored; a missing entry means the slot is empty. States have value
// semantics: Set returns a new State and never aliases the receiver's map.
type State struct {
	contents map[Slot]string
}

// NewState returns an all-empty state.
func NewState() State {
	return State{contents: make(map[Slot]string)}
}

// Get returns the block occupying the slot, or "" if the slot is empty.
func (s State) Get(d *Domain, location string, position int) (string, error) {
	if !d.HasSlot(location, position) {
		return "", &InvalidCoordinateError{Location: location, Position: position}
	}
	return s.contents[Slot{Location: location, Position: position}], nil
}

// Set returns a new state with exactly one slot changed. An empty block
// string clears the slot.
func (s State) Set(d *Domain, location string, position int, block string) (State, error) {
	if !d.HasSlot(location, position) {
		return State{}, &InvalidCoordinateError{Location: location, Position: position}
	}

	next := make(map[Slot]string, len(s.contents)+1)
	for slot, b := range s.contents {
		next[slot] = b
	}

	slot := Slot{Location: location, Position: position}
	if block == "" {
		delete(next, slot)
	} else {
		next[slot] = block
	}
	return State{contents: next}, nil
}

// Key returns the canonical, order-independent encoding of the state used
// for equality and closed-set lookup. It walks the domain slot order, so two
// states with identical contents always produce identical keys.
func (s State) Key(d *Domain) string {
	var b strings.Builder
	for _, slot := range d.slots {
		block, ok := s.contents[slot]
		if !ok {
			continue
		}
		b.WriteString(slot.Location)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(slot.Position))
		b.WriteByte('=')
		b.WriteString(block)
		b.WriteByte('|')
	}
	return b.String()
}

// Find returns the slot holding the given block, if any.
func (s State) Find(block string) (Slot, bool) {
	for slot, b := range s.contents {
		if b == block {
			return slot, true
		}
	}
	return Slot{}, false
}

// Placements returns block -> slot for every occupied slot.
func (s State) Placements() map[string]Slot {
	out := make(map[string]Slot, len(s.contents))
	for slot, b := range s.contents {
		out[b] = slot
	}
	return out
}

// OccupiedCount returns the number of occupied slots.
func (s State) OccupiedCount() int {
	return len(s.contents)
}

// Flatten returns the "location:position" -> block-or-"empty" mapping of the
// result contract, covering every slot of the grid.
func (s State) Flatten(d *Domain) map[string]string {
	out := make(map[string]string, len(d.slots))
	for _, slot := range d.slots {
		block, ok := s.contents[slot]
		if !ok {
			block = EmptyMarker
		}
		out[slot.String()] = block
	}
	return out
}
