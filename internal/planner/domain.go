// Package planner implements the relocation search engine: warehouse states,
// legal single-block moves, the energy cost model, and budget-bounded A*.
package planner

import (
	"fmt"
)

// Slot is one shelf coordinate: a location (aisle) and a vertical position.
type Slot struct {
	Location string
	Position int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s:%d", s.Location, s.Position)
}

// InvalidCoordinateError reports a slot address outside the configured grid.
// This is a configuration or programming error and aborts the run.
type InvalidCoordinateError struct {
	Location string
	Position int
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate %s:%d", e.Location, e.Position)
}

// MissingDomainFactError reports a lookup for which the domain tables hold no
// entry (distance, height, or weight). Fatal, surfaced immediately.
type MissingDomainFactError struct {
	Fact string // "distance", "height", "weight"
	Key  string
}

func (e *MissingDomainFactError) Error() string {
	return fmt.Sprintf("missing domain fact: %s(%s)", e.Fact, e.Key)
}

type distanceKey struct {
	from, to string
}

// Domain holds the immutable warehouse lookup tables. All reads are safe for
// concurrent use; a Domain is never mutated after New returns.
type Domain struct {
	locations []string
	positions []int
	heights   map[int]int
	weights   map[string]int
	distances map[distanceKey]int
	slots     []Slot
	slotSet   map[Slot]struct{}
}

// PositionSpec declares one vertical position and its height.
type PositionSpec struct {
	ID     int
	Height int
}

// BlockSpec declares one block and its weight.
type BlockSpec struct {
	ID     string
	Weight int
}

// DistanceSpec declares the travel cost between two distinct locations.
// Distances are stored symmetrically.
type DistanceSpec struct {
	From, To string
	Cost     int
}

// NewDomain validates the lookup tables and builds the slot grid. The
// validation enforces the invariants the misplaced-block heuristic relies on:
// every weight is at least 1, every distance between distinct locations is at
// least 1, and no two positions share a height. Under these rules every legal
// move costs at least 1.
func NewDomain(locations []string, positions []PositionSpec, blocks []BlockSpec, distances []DistanceSpec) (*Domain, error) {
	if len(locations) == 0 {
		return nil, fmt.Errorf("domain: no locations configured")
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("domain: no positions configured")
	}

	d := &Domain{
		heights:   make(map[int]int),
		weights:   make(map[string]int),
		distances: make(map[distanceKey]int),
		slotSet:   make(map[Slot]struct{}),
	}

	seenLoc := make(map[string]bool)
	for _, loc := range locations {
		if loc == "" {
			return nil, fmt.Errorf("domain: empty location id")
		}
		if seenLoc[loc] {
			return nil, fmt.Errorf("domain: duplicate location %q", loc)
		}
		seenLoc[loc] = true
		d.locations = append(d.locations, loc)
	}

	seenHeight := make(map[int]int)
	for _, p := range positions {
		if _, ok := d.heights[p.ID]; ok {
			return nil, fmt.Errorf("domain: duplicate position %d", p.ID)
		}
		if prev, ok := seenHeight[p.Height]; ok {
			return nil, fmt.Errorf("domain: positions %d and %d share height %d", prev, p.ID, p.Height)
		}
		seenHeight[p.Height] = p.ID
		d.heights[p.ID] = p.Height
		d.positions = append(d.positions, p.ID)
	}

	for _, b := range blocks {
		if b.ID == "" {
			return nil, fmt.Errorf("domain: empty block id")
		}
		if _, ok := d.weights[b.ID]; ok {
			return nil, fmt.Errorf("domain: duplicate block %q", b.ID)
		}
		if b.Weight < 1 {
			return nil, fmt.Errorf("domain: block %q has non-positive weight %d", b.ID, b.Weight)
		}
		d.weights[b.ID] = b.Weight
	}

	for _, dist := range distances {
		if !seenLoc[dist.From] || !seenLoc[dist.To] {
			return nil, fmt.Errorf("domain: distance references unknown location %q-%q", dist.From, dist.To)
		}
		if dist.From == dist.To {
			return nil, fmt.Errorf("domain: self-distance for location %q", dist.From)
		}
		if dist.Cost < 1 {
			return nil, fmt.Errorf("domain: non-positive distance %d for %q-%q", dist.Cost, dist.From, dist.To)
		}
		d.distances[distanceKey{dist.From, dist.To}] = dist.Cost
		d.distances[distanceKey{dist.To, dist.From}] = dist.Cost
	}

	// Every distinct pair must be covered so a legal move can never hit a
	// missing fact mid-search.
	for i, from := range d.locations {
		for _, to := range d.locations[i+1:] {
			if _, ok := d.distances[distanceKey{from, to}]; !ok {
				return nil, &MissingDomainFactError{Fact: "distance", Key: from + "-" + to}
			}
		}
	}

	for _, loc := range d.locations {
		for _, pos := range d.positions {
			slot := Slot{Location: loc, Position: pos}
			d.slots = append(d.slots, slot)
			d.slotSet[slot] = struct{}{}
		}
	}

	return d, nil
}

// Locations returns the configured locations in declaration order.
func (d *Domain) Locations() []string {
	return append([]string{}, d.locations...)
}

// Positions returns the configured positions in declaration order.
func (d *Domain) Positions() []int {
	return append([]int{}, d.positions...)
}

// Slots returns every grid slot in canonical order: locations in declaration
// order, positions in declaration order within each location. This ordering
// drives state canonicalization and successor enumeration.
func (d *Domain) Slots() []Slot {
	return append([]Slot{}, d.slots...)
}

// HasSlot reports whether the coordinate is part of the configured grid.
func (d *Domain) HasSlot(location string, position int) bool {
	_, ok := d.slotSet[Slot{Location: location, Position: position}]
	return ok
}

// Height returns the physical height of a position.
func (d *Domain) Height(position int) (int, error) {
	h, ok := d.heights[position]
	if !ok {
		return 0, &MissingDomainFactError{Fact: "height", Key: fmt.Sprintf("%d", position)}
	}
	return h, nil
}

// Weight returns the weight of a block.
func (d *Domain) Weight(block string) (int, error) {
	w, ok := d.weights[block]
	if !ok {
		return 0, &MissingDomainFactError{Fact: "weight", Key: block}
	}
	return w, nil
}

// Distance returns the travel cost between two locations. The distance from a
// location to itself is 0; all other pairs come from the configured table.
func (d *Domain) Distance(from, to string) (int, error) {
	if from == to {
		return 0, nil
	}
	c, ok := d.distances[distanceKey{from, to}]
	if !ok {
		return 0, &MissingDomainFactError{Fact: "distance", Key: from + "-" + to}
	}
	return c, nil
}
