package table

import "fmt"

// Builder constructs a Table programmatically — the path used internally by
// engine/propeller models (spec.md §3: "Tables may be constructed
// programmatically") as well as by the document-driven Expression Builder
// once it has parsed independentVar/tableData elements into plain slices.
type Builder struct {
	rank        Rank
	rowKeys     []float64
	colKeys     []float64
	data        [][]float64
	breakpoints []float64
	subtables   []*Table
	err         error
}

// New starts building a table of the given rank.
func New(rank Rank) *Builder {
	return &Builder{rank: rank}
}

// WithRowKeys sets the row axis keys (the sole axis, for Rank1D).
func (b *Builder) WithRowKeys(keys []float64) *Builder {
	b.rowKeys = keys
	return b
}

// WithColumnKeys sets the column axis keys. Only meaningful for Rank2D.
func (b *Builder) WithColumnKeys(keys []float64) *Builder {
	b.colKeys = keys
	return b
}

// WithValues sets the Rank1D value-per-row-key vector.
func (b *Builder) WithValues(values []float64) *Builder {
	if b.err != nil {
		return b
	}

	if len(values) != len(b.rowKeys) {
		b.err = fmt.Errorf("%w: %d values for %d row keys", ErrMalformedTable, len(values), len(b.rowKeys))
		return b
	}

	b.data = make([][]float64, len(values))
	for i, v := range values {
		b.data[i] = []float64{v}
	}

	return b
}

// WithData sets the Rank2D dense data grid: data[r][c] corresponds to
// rowKeys[r] x colKeys[c].
func (b *Builder) WithData(data [][]float64) *Builder {
	b.data = data
	return b
}

// WithBreakpoints sets the Rank3D breakpoint vector. Each breakpoint at
// index i corresponds to the i-th subtable passed to WithSubtables.
func (b *Builder) WithBreakpoints(breakpoints []float64) *Builder {
	b.breakpoints = breakpoints
	return b
}

// WithSubtables sets the Rank3D stack of Rank2D subtables.
func (b *Builder) WithSubtables(subtables []*Table) *Builder {
	b.subtables = subtables
	return b
}

// Build validates the accumulated configuration — in particular the
// monotonicity invariant from spec.md §3 — and returns the finished Table.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}

	switch b.rank {
	case Rank1D:
		return b.build1D()
	case Rank2D:
		return b.build2D()
	case Rank3D:
		return b.build3D()
	default:
		return nil, fmt.Errorf("%w: unsupported rank %d", ErrMalformedTable, b.rank)
	}
}

func (b *Builder) build1D() (*Table, error) {
	if len(b.rowKeys) == 0 || len(b.data) == 0 {
		return nil, fmt.Errorf("%w: empty 1D table data", ErrMalformedTable)
	}

	if err := checkMonotonic(b.rowKeys, "row"); err != nil {
		return nil, err
	}

	if len(b.data) != len(b.rowKeys) {
		return nil, fmt.Errorf("%w: %d data rows for %d row keys", ErrMalformedTable, len(b.data), len(b.rowKeys))
	}

	return &Table{rank: Rank1D, rowKeys: b.rowKeys, data: b.data, lastRow: 1}, nil
}

func (b *Builder) build2D() (*Table, error) {
	if len(b.rowKeys) == 0 || len(b.colKeys) == 0 || len(b.data) == 0 {
		return nil, fmt.Errorf("%w: empty 2D table data", ErrMalformedTable)
	}

	if err := checkMonotonic(b.rowKeys, "row"); err != nil {
		return nil, err
	}

	if err := checkMonotonic(b.colKeys, "column"); err != nil {
		return nil, err
	}

	if len(b.data) != len(b.rowKeys) {
		return nil, fmt.Errorf("%w: %d data rows for %d row keys", ErrMalformedTable, len(b.data), len(b.rowKeys))
	}

	for i, row := range b.data {
		if len(row) != len(b.colKeys) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedTable, i, len(row), len(b.colKeys))
		}
	}

	return &Table{
		rank: Rank2D, rowKeys: b.rowKeys, colKeys: b.colKeys, data: b.data,
		lastRow: 1, lastCol: 1,
	}, nil
}

func (b *Builder) build3D() (*Table, error) {
	if len(b.breakpoints) == 0 || len(b.subtables) == 0 {
		return nil, fmt.Errorf("%w: empty 3D table data", ErrMalformedTable)
	}

	if len(b.breakpoints) != len(b.subtables) {
		return nil, fmt.Errorf("%w: %d breakpoints for %d subtables", ErrMalformedTable, len(b.breakpoints), len(b.subtables))
	}

	if err := checkMonotonic(b.breakpoints, "breakpoint"); err != nil {
		return nil, err
	}

	for i, st := range b.subtables {
		if st.Rank() != Rank2D {
			return nil, fmt.Errorf("%w: subtable %d is not rank-2", ErrMalformedTable, i)
		}
	}

	return &Table{
		rank: Rank3D, breakpoints: b.breakpoints, subtables: b.subtables,
		lastRow: 1, lastCol: 1, lastTable: 1,
	}, nil
}

// checkMonotonic verifies keys is strictly increasing, per spec.md §3's
// invariant; the error names the enclosing axis and the offending index.
func checkMonotonic(keys []float64, axis string) error {
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return fmt.Errorf("%w: %s keys not strictly increasing at index %d", ErrMalformedTable, axis, i)
		}
	}

	return nil
}
