// core/model/model.go
package model

// Context is the ordered pair of residues immediately preceding a position.
type Context [2]byte

// Unknown is the no-prediction sentinel returned by Predict. It is not a
// canonical base and is ignored by Update.
const Unknown byte = 'N'

const bases = "ACGT"

// Model is an exact order-2 frequency table over the DNA alphabet: each seen
// context maps to per-base successor counts indexed A<C<G<T. Counts only ever
// increase. Not safe for concurrent use; callers batching sequences must
// serialize Predict/Update.
type Model struct {
	table map[Context][4]uint64
}

// New returns an empty model.
func New() *Model {
	return &Model{table: make(map[Context][4]uint64)}
}

func baseIndex(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	}
	return -1
}

// Update increments the count of base following ctx. A non-ACGT base is a
// silent no-op: the accumulator is forgiving, not strict.
func (m *Model) Update(ctx Context, base byte) {
	idx := baseIndex(base)
	if idx < 0 {
		return
	}
	counts := m.table[ctx]
	counts[idx]++
	m.table[ctx] = counts
}

// Predict returns the base with the strictly highest count for ctx, or
// Unknown for an unseen context / all-zero counts. Ties break toward the
// lowest canonical index (A<C<G<T): the left-to-right scan only replaces the
// running max on a strictly greater count, so results are deterministic.
func (m *Model) Predict(ctx Context) byte {
	counts, ok := m.table[ctx]
	if !ok {
		return Unknown
	}
	var best uint64
	idx := -1
	for i, c := range counts {
		if c > best {
			best = c
			idx = i
		}
	}
	if idx < 0 {
		return Unknown
	}
	return bases[idx]
}

// Len reports the number of distinct contexts seen so far.
func (m *Model) Len() int { return len(m.table) }
