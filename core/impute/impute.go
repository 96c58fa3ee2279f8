// core/impute/impute.go
package impute

import (
	"seqprof-core/model"
)

func canonical(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// Run repairs ambiguous residues in seq with a single causal left-to-right
// pass, mutating seq in place and m as a side effect, and returns seq.
//
// Positions 0 and 1 pass through untouched (a context needs two preceding
// residues). For every later position the context is taken from the two
// preceding residues in their already-corrected form, so corrections
// propagate forward. A non-canonical residue is replaced by the model's
// prediction when one exists, otherwise left as-is; a (possibly substituted)
// 'U' is rewritten to 'T'. The model is updated with the residue's final
// value last. Predict before update is a strict invariant, otherwise a
// position's correction would depend on itself. Non-canonical finals are
// skipped as update targets.
//
// Sequences shorter than 3 residues come back unmodified with m untouched.
func Run(seq []byte, m *model.Model) []byte {
	for i := 2; i < len(seq); i++ {
		ctx := model.Context{seq[i-2], seq[i-1]}
		base := seq[i]
		if !canonical(base) {
			if guess := m.Predict(ctx); guess != model.Unknown {
				base = guess
				seq[i] = guess
			}
		}
		if base == 'U' {
			base = 'T'
			seq[i] = 'T'
		}
		m.Update(ctx, base)
	}
	return seq
}
