package planner

import "testing"

func TestStateValueSemantics(t *testing.T) {
	d := abcDomain(t)

	s1 := NewState()
	s1, err := s1.Set(d, "a", 1, "a")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	s2, err := s1.Set(d, "b", 1, "b")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if got, _ := s1.Get(d, "b", 1); got != "" {
		t.Errorf("parent state mutated: b:1 = %q", got)
	}
	if got, _ := s2.Get(d, "a", 1); got != "a" {
		t.Errorf("child state lost placement: a:1 = %q", got)
	}
	if s1.Key(d) == s2.Key(d) {
		t.Error("distinct states share a canonical key")
	}
}

func TestStateCanonicalKey(t *testing.T) {
	d := abcDomain(t)

	// Build the same placement in two different orders.
	first := NewState()
	first, _ = first.Set(d, "a", 1, "a")
	first, _ = first.Set(d, "c", 2, "b")

	second := NewState()
	second, _ = second.Set(d, "c", 2, "b")
	second, _ = second.Set(d, "a", 1, "a")

	if first.Key(d) != second.Key(d) {
		t.Errorf("insertion order leaked into key:\n%s\n%s", first.Key(d), second.Key(d))
	}

	// Clearing a slot restores the prior key.
	cleared, err := second.Set(d, "c", 2, "")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	base := NewState()
	base, _ = base.Set(d, "a", 1, "a")
	if cleared.Key(d) != base.Key(d) {
		t.Errorf("clearing a slot did not restore the key: %s", cleared.Key(d))
	}
}

func TestStateRejectsOffGridCoordinates(t *testing.T) {
	d := abcDomain(t)
	s := NewState()

	if _, err := s.Set(d, "nowhere", 1, "a"); err == nil {
		t.Error("expected error for off-grid location")
	}
	if _, err := s.Set(d, "a", 9, "a"); err == nil {
		t.Error("expected error for off-grid position")
	}
	if _, err := s.Get(d, "nowhere", 1); err == nil {
		t.Error("expected error for off-grid read")
	}
}

func TestStateFlatten(t *testing.T) {
	d := abcDomain(t)

	s := NewState()
	s, _ = s.Set(d, "a", 1, "a")
	s, _ = s.Set(d, "b", 3, "c")

	flat := s.Flatten(d)
	if len(flat) != 9 {
		t.Fatalf("expected 9 grid entries, got %d", len(flat))
	}
	if flat["a:1"] != "a" {
		t.Errorf("expected a at a:1, got %q", flat["a:1"])
	}
	if flat["b:3"] != "c" {
		t.Errorf("expected c at b:3, got %q", flat["b:3"])
	}
	if flat["c:2"] != EmptyMarker {
		t.Errorf("expected empty marker at c:2, got %q", flat["c:2"])
	}
}

func TestStateFind(t *testing.T) {
	d := abcDomain(t)

	s := NewState()
	s, _ = s.Set(d, "b", 2, "c")

	slot, ok := s.Find("c")
	if !ok || slot.Location != "b" || slot.Position != 2 {
		t.Errorf("expected c at b:2, got %v (found=%v)", slot, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Error("found a block that was never placed")
	}
}
