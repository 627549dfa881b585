package colorname

import "fmt"

// Table is the compact color name table: one dominant category per bucket.
//
// A Table is read-only once built and may be shared by concurrent
// Classify and Render calls.
type Table struct {
	ids []Category
}

// Weights holds the category weights of one table row. Weights[i] belongs to
// category i+1.
type Weights [NumCategories]float64

// ProbTable is the probabilistic color name table: the full weight vector
// of every bucket, stored as read.
type ProbTable struct {
	rows []Weights
}

func newTable() *Table {
	return &Table{ids: make([]Category, Buckets)}
}

// NewTable builds a Table from one category id per bucket. ids is copied.
func NewTable(ids []Category) (*Table, error) {
	if len(ids) != Buckets {
		return nil, &RowCountError{Rows: len(ids), Want: Buckets}
	}
	t := newTable()
	copy(t.ids, ids)
	return t, nil
}

// NewUniformTable returns a Table that maps every bucket to c.
func NewUniformTable(c Category) *Table {
	t := newTable()
	for i := range t.ids {
		t.ids[i] = c
	}
	return t
}

// Len returns the number of buckets in the table.
func (t *Table) Len() int { return len(t.ids) }

// At returns the category of bucket i.
func (t *Table) At(i int) Category { return t.ids[i] }

// Lookup returns the category of the bucket that (r, g, b) falls into.
func (t *Table) Lookup(r, g, b uint8) Category {
	return t.ids[BucketIndex(r, g, b)]
}

// IDs returns a copy of the per-bucket categories.
func (t *Table) IDs() []Category {
	out := make([]Category, len(t.ids))
	copy(out, t.ids)
	return out
}

// Counts returns how many buckets map to each category. Index 0 counts
// Unknown buckets; any id above NumCategories is counted there as well.
func (t *Table) Counts() [NumCategories + 1]int {
	var out [NumCategories + 1]int
	for _, c := range t.ids {
		if c.Valid() {
			out[c]++
		} else {
			out[Unknown]++
		}
	}
	return out
}

// Validate returns an error wrapping ErrInvalidCategory when any bucket holds
// a category that cannot be rendered.
func (t *Table) Validate() error {
	var bad, first int
	first = -1
	for i, c := range t.ids {
		if !c.Valid() {
			if first < 0 {
				first = i
			}
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d bucket(s) without a named category (first at bucket %d)", ErrInvalidCategory, bad, first)
	}
	return nil
}

// Dominant returns the category with the largest weight. Ties go to the
// lowest id; a row without a positive weight yields Unknown.
func (w *Weights) Dominant() Category {
	var (
		c    Category
		best float64
	)
	for i, v := range w {
		if v > best {
			best = v
			c = Category(i + 1)
		}
	}
	return c
}

// Len returns the number of buckets in the table.
func (p *ProbTable) Len() int { return len(p.rows) }

// Row returns the weights of bucket i.
func (p *ProbTable) Row(i int) Weights { return p.rows[i] }

// Lookup returns the weights of the bucket that (r, g, b) falls into.
func (p *ProbTable) Lookup(r, g, b uint8) Weights {
	return p.rows[BucketIndex(r, g, b)]
}

// Dominant reduces p to its compact form.
func (p *ProbTable) Dominant() *Table {
	t := newTable()
	for i := range p.rows {
		t.ids[i] = p.rows[i].Dominant()
	}
	return t
}
