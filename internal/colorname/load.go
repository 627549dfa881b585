package colorname

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReferenceFields is the number of leading values in every table row. They
// hold the reference color of the bucket and are skipped.
const ReferenceFields = 3

// RowFields is the number of whitespace-separated values in one table row.
const RowFields = ReferenceFields + NumCategories

// LoadTable reads a compact table from the text file at path.
//
// On ErrInsufficientData the partially filled table is returned along with
// the error; it must not be used for classification.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableNotFound, err)
	}
	defer f.Close()
	return ReadTable(f)
}

// ReadTable reads a compact table from r. Each row's category is the 1-based
// position of its largest weight.
func ReadTable(r io.Reader) (*Table, error) {
	t := newTable()
	err := readRows(r, func(i int, w *Weights) {
		t.ids[i] = w.Dominant()
	})
	return t, err
}

// LoadProbTable reads a probabilistic table from the text file at path.
// Error semantics match LoadTable.
func LoadProbTable(path string) (*ProbTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableNotFound, err)
	}
	defer f.Close()
	return ReadProbTable(f)
}

// ReadProbTable reads a probabilistic table from r, keeping every weight.
func ReadProbTable(r io.Reader) (*ProbTable, error) {
	p := &ProbTable{rows: make([]Weights, Buckets)}
	err := readRows(r, func(i int, w *Weights) {
		p.rows[i] = *w
	})
	return p, err
}

// readRows walks the positional row stream and calls visit for every
// complete row. Reading stops at the first missing or malformed token; the
// stream is never resynchronized. Any token after the last bucket row, valid
// or not, is rejected the same way as a short stream.
func readRows(r io.Reader, visit func(i int, w *Weights)) error {
	tr := newTokenReader(r)
	var (
		w    Weights
		rows int
	)
	for rows < Buckets {
		if !tr.skip(ReferenceFields) || !tr.fill(w[:]) {
			break
		}
		visit(rows, &w)
		rows++
	}
	if rows == Buckets {
		if _, ok := tr.next(); !ok && tr.err == nil {
			return nil
		}
		// Trailing data starts another, possibly partial, row.
		rows++
	}
	return &RowCountError{Rows: rows, Want: Buckets, cause: tr.err}
}

// tokenReader yields whitespace-separated numbers.
type tokenReader struct {
	sc  *bufio.Scanner
	err error
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (tr *tokenReader) next() (float64, bool) {
	if tr.err != nil {
		return 0, false
	}
	if !tr.sc.Scan() {
		tr.err = tr.sc.Err()
		return 0, false
	}
	v, err := strconv.ParseFloat(tr.sc.Text(), 64)
	if err != nil {
		tr.err = fmt.Errorf("malformed value %q: %w", tr.sc.Text(), err)
		return 0, false
	}
	return v, true
}

func (tr *tokenReader) skip(n int) bool {
	for i := 0; i < n; i++ {
		if _, ok := tr.next(); !ok {
			return false
		}
	}
	return true
}

func (tr *tokenReader) fill(dst []float64) bool {
	for i := range dst {
		v, ok := tr.next()
		if !ok {
			return false
		}
		dst[i] = v
	}
	return true
}
