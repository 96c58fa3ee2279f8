// core/model/io.go
package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Load reads persisted counts from path: a whitespace-separated token stream
// of <context> <base> <count> triples. A missing or unreadable file yields an
// empty model and a nil error: first runs have no prior state, and the model
// is best-effort by contract. A malformed record stops the scan, keeping
// whatever already parsed.
func Load(path string) (*Model, error) {
	m := New()
	fh, err := os.Open(path)
	if err != nil {
		return m, nil
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	sc.Split(bufio.ScanWords)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
	for {
		ctxTok, ok := next()
		if !ok {
			break
		}
		baseTok, ok := next()
		if !ok {
			break
		}
		countTok, ok := next()
		if !ok {
			break
		}
		if len(ctxTok) != 2 || len(baseTok) != 1 {
			break
		}
		idx := baseIndex(baseTok[0])
		if idx < 0 {
			continue
		}
		n, err := strconv.ParseUint(countTok, 10, 64)
		if err != nil {
			break
		}
		ctx := Context{ctxTok[0], ctxTok[1]}
		counts := m.table[ctx]
		counts[idx] = n
		m.table[ctx] = counts
	}
	return m, nil
}

// Save writes every (context, base) pair with a positive count as a
// `<context> <base> <count>` line, contexts in sorted order so the artifact
// is byte-stable across runs. The file is written to a temp sibling and
// renamed into place; a failed save leaves no half-written state behind.
func (m *Model) Save(path string) error {
	ctxs := make([]Context, 0, len(m.table))
	for ctx := range m.table {
		ctxs = append(ctxs, ctx)
	}
	sort.Slice(ctxs, func(i, j int) bool {
		if ctxs[i][0] != ctxs[j][0] {
			return ctxs[i][0] < ctxs[j][0]
		}
		return ctxs[i][1] < ctxs[j][1]
	})

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".model-*")
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, ctx := range ctxs {
		counts := m.table[ctx]
		for i, c := range counts {
			if c == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "%c%c %c %d\n", ctx[0], ctx[1], bases[i], c); err != nil {
				return fmt.Errorf("save model: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		tmp = nil
		_ = os.Remove(name)
		return fmt.Errorf("save model: %w", err)
	}
	tmp = nil
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}
