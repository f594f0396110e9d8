package planner

// Move relocates one block from an occupied slot to an empty slot.
type Move struct {
	From  Slot
	To    Slot
	Block string
}

// Successor is one legal move together with the state it produces and its
// step cost.
type Successor struct {
	Move  Move
	State State
	Cost  int
}

// MoveCost returns the energy cost of a move:
//
//	weight(block) * (distance(from, to) + |height(fromPos) - height(toPos)|)
//
// The horizontal component is 0 for moves within one location.
func (d *Domain) MoveCost(m Move) (int, error) {
	horizontal, err := d.Distance(m.From.Location, m.To.Location)
	if err != nil {
		return 0, err
	}
	fromHeight, err := d.Height(m.From.Position)
	if err != nil {
		return 0, err
	}
	toHeight, err := d.Height(m.To.Position)
	if err != nil {
		return 0, err
	}
	weight, err := d.Weight(m.Block)
	if err != nil {
		return 0, err
	}

	vertical := fromHeight - toHeight
	if vertical < 0 {
		vertical = -vertical
	}
	return weight * (horizontal + vertical), nil
}

// Successors enumerates every legal single-block move from the state: for
// each ordered pair of distinct slots where the source is occupied and the
// destination is empty, the relocation of the source block. Enumeration
// follows the domain slot order, so the result is deterministic for a given
// state.
func (d *Domain) Successors(s State) ([]Successor, error) {
	var out []Successor
	for _, from := range d.slots {
		block, ok := s.contents[from]
		if !ok {
			continue
		}
		for _, to := range d.slots {
			if to == from {
				continue
			}
			if _, occupied := s.contents[to]; occupied {
				continue
			}

			move := Move{From: from, To: to, Block: block}
			cost, err := d.MoveCost(move)
			if err != nil {
				return nil, err
			}

			next, err := s.Set(d, from.Location, from.Position, "")
			if err != nil {
				return nil, err
			}
			next, err = next.Set(d, to.Location, to.Position, block)
			if err != nil {
				return nil, err
			}

			out = append(out, Successor{Move: move, State: next, Cost: cost})
		}
	}
	return out, nil
}
