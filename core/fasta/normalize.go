// core/fasta/normalize.go
package fasta

// Normalize flattens raw FASTA-ish text into a bare residue sequence.
// A '>' starts a header run that is skipped up to (not including) the next
// newline, wherever it appears; remaining alphabetic bytes are kept
// upper-cased; everything else (whitespace, digits, punctuation) is dropped.
//
// Malformed input never errors; the result just degrades toward empty.
func Normalize(raw string) []byte {
	seq := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '>' {
			for i < len(raw) && raw[i] != '\n' {
				i++
			}
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			seq = append(seq, c)
		}
	}
	return seq
}
