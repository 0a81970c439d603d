package squad

// Reference identifies the user's current 15-player squad: an ordered
// starting eleven and an ordered four-player bench. Slot order matters for
// formation display, but the id set, not the order, is the canonical
// identity of "the current squad".
type Reference struct {
	StartingXI []int
	Bench      []int
}

// PlayerIDs returns every id, starting eleven first.
func (r Reference) PlayerIDs() []int {
	ids := make([]int, 0, len(r.StartingXI)+len(r.Bench))
	ids = append(ids, r.StartingXI...)
	ids = append(ids, r.Bench...)
	return ids
}

// Size is the total number of ids.
func (r Reference) Size() int {
	return len(r.StartingXI) + len(r.Bench)
}

// Empty reports whether the user has no resolvable squad. Callers must
// treat empty as "prompt for input", not as an error.
func (r Reference) Empty() bool {
	return r.Size() == 0
}
