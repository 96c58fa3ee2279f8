// core/seqstats/gc.go
package seqstats

// GCFraction returns the fraction of G/C residues among all valid nucleotide
// residues (A, T, G, C, and the RNA symbol U), case-insensitively. Bytes
// outside that alphabet count toward neither numerator nor denominator.
// An input with no valid residues yields 0.
func GCFraction(seq []byte) float64 {
	var gc, total int
	for _, c := range seq {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'G', 'C':
			gc++
			total++
		case 'A', 'T', 'U':
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(gc) / float64(total)
}
