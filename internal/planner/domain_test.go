package planner

import (
	"errors"
	"testing"
)

// abcDomain mirrors the shipped domain.yaml fixture: aisles a/b/c, three
// shelf levels, blocks a/b/c.
func abcDomain(t *testing.T) *Domain {
	t.Helper()
	d, err := NewDomain(
		[]string{"a", "b", "c"},
		[]PositionSpec{{ID: 1, Height: 1}, {ID: 2, Height: 3}, {ID: 3, Height: 5}},
		[]BlockSpec{{ID: "a", Weight: 1}, {ID: "b", Weight: 2}, {ID: "c", Weight: 3}},
		[]DistanceSpec{{From: "a", To: "b", Cost: 2}, {From: "a", To: "c", Cost: 3}, {From: "b", To: "c", Cost: 1}},
	)
	if err != nil {
		t.Fatalf("failed to build domain: %v", err)
	}
	return d
}

func TestDomainValidation(t *testing.T) {
	positions := []PositionSpec{{ID: 1, Height: 1}, {ID: 2, Height: 3}}
	blocks := []BlockSpec{{ID: "p", Weight: 1}}
	distances := []DistanceSpec{{From: "x", To: "y", Cost: 1}}

	if _, err := NewDomain(nil, positions, blocks, distances); err == nil {
		t.Error("expected error for empty locations")
	}

	if _, err := NewDomain([]string{"x", "y"}, positions,
		[]BlockSpec{{ID: "p", Weight: 0}}, distances); err == nil {
		t.Error("expected error for zero weight")
	}

	if _, err := NewDomain([]string{"x", "y"}, positions, blocks,
		[]DistanceSpec{{From: "x", To: "y", Cost: 0}}); err == nil {
		t.Error("expected error for zero distance")
	}

	if _, err := NewDomain([]string{"x", "y"},
		[]PositionSpec{{ID: 1, Height: 2}, {ID: 2, Height: 2}},
		blocks, distances); err == nil {
		t.Error("expected error for duplicate height")
	}

	// A distinct pair without a configured distance must fail fast.
	_, err := NewDomain([]string{"x", "y", "z"}, positions, blocks, distances)
	var missing *MissingDomainFactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDomainFactError, got %v", err)
	}
	if missing.Fact != "distance" {
		t.Errorf("expected missing distance fact, got %s", missing.Fact)
	}
}

func TestDomainLookups(t *testing.T) {
	d := abcDomain(t)

	// Symmetric and repeatable
	for i := 0; i < 2; i++ {
		dist, err := d.Distance("a", "c")
		if err != nil {
			t.Fatalf("distance lookup failed: %v", err)
		}
		if dist != 3 {
			t.Errorf("expected distance 3, got %d", dist)
		}
		back, err := d.Distance("c", "a")
		if err != nil {
			t.Fatalf("reverse distance lookup failed: %v", err)
		}
		if back != 3 {
			t.Errorf("expected symmetric distance 3, got %d", back)
		}
	}

	if dist, err := d.Distance("b", "b"); err != nil || dist != 0 {
		t.Errorf("expected self-distance 0, got %d (%v)", dist, err)
	}

	if _, err := d.Weight("unknown"); err == nil {
		t.Error("expected error for unknown block weight")
	}
	if _, err := d.Height(9); err == nil {
		t.Error("expected error for unknown position height")
	}

	if !d.HasSlot("a", 1) {
		t.Error("expected a:1 to be on the grid")
	}
	if d.HasSlot("d", 1) || d.HasSlot("a", 4) {
		t.Error("expected off-grid coordinates to be rejected")
	}
}

func TestMoveCost(t *testing.T) {
	d := abcDomain(t)

	// weight(c)=3, distance(a,c)=3, |height(3)-height(1)|=4
	cost, err := d.MoveCost(Move{
		From:  Slot{Location: "a", Position: 3},
		To:    Slot{Location: "c", Position: 1},
		Block: "c",
	})
	if err != nil {
		t.Fatalf("move cost failed: %v", err)
	}
	if cost != 21 {
		t.Errorf("expected cost 21, got %d", cost)
	}

	// Vertical-only move within one aisle: weight(b)=2, |1-3|=2
	cost, err = d.MoveCost(Move{
		From:  Slot{Location: "b", Position: 1},
		To:    Slot{Location: "b", Position: 2},
		Block: "b",
	})
	if err != nil {
		t.Fatalf("move cost failed: %v", err)
	}
	if cost != 4 {
		t.Errorf("expected cost 4, got %d", cost)
	}

	if _, err := d.MoveCost(Move{
		From:  Slot{Location: "a", Position: 1},
		To:    Slot{Location: "b", Position: 1},
		Block: "unknown",
	}); err == nil {
		t.Error("expected error for unknown block")
	}
}
