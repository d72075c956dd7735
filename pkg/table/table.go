// Package table implements piecewise-linear interpolation over 1D, 2D and
// 3D gridded data, with monotonic-key validation at construction and a
// cached-last-index lookup discipline tuned for the smoothly-varying query
// sequences a physics simulation produces.
package table

import (
	"fmt"

	"github.com/flightdyn/fdcore/pkg/property"
)

// Rank identifies a table's dimensionality.
type Rank int

const (
	// Rank1D is a simple key -> value curve.
	Rank1D Rank = 1
	// Rank2D is a row/column keyed grid.
	Rank2D Rank = 2
	// Rank3D is a stack of Rank2D subtables indexed by a breakpoint axis.
	Rank3D Rank = 3
)

// Table is a piecewise-linear lookup table of a given Rank. The zero value
// is not usable; construct via Builder.
type Table struct {
	rank Rank

	// Rank1D / Rank2D storage.
	rowKeys []float64
	colKeys []float64   // nil for Rank1D
	data    [][]float64 // data[row][col]; for Rank1D, data[row][0] is the value

	// Rank3D storage: a breakpoint-indexed stack of Rank2D subtables.
	breakpoints []float64
	subtables   []*Table

	// Axis bindings, used by GetValue for document-driven tables.
	rowRef   *property.Ref
	colRef   *property.Ref
	tableRef *property.Ref

	// Cached last-index hints, updated by every lookup. They are not
	// synchronised, so a Table must not be looked up from several
	// goroutines at once.
	lastRow   int
	lastCol   int
	lastTable int
}

// Rank returns the table's dimensionality.
func (t *Table) Rank() Rank { return t.rank }

// RowKeys returns the table's row breakpoints (or, for Rank1D, the sole
// axis's keys). Callers must not mutate the returned slice.
func (t *Table) RowKeys() []float64 { return t.rowKeys }

// ColumnKeys returns the table's column breakpoints. nil for Rank1D.
func (t *Table) ColumnKeys() []float64 { return t.colKeys }

// Breakpoints returns the Rank3D table-axis breakpoints. nil otherwise.
func (t *Table) Breakpoints() []float64 { return t.breakpoints }

// BindRow attaches the property reference that supplies the row key when
// GetValue is called.
func (t *Table) BindRow(ref *property.Ref) { t.rowRef = ref }

// BindColumn attaches the property reference that supplies the column key.
func (t *Table) BindColumn(ref *property.Ref) { t.colRef = ref }

// BindTable attaches the property reference that supplies the Rank3D
// breakpoint key.
func (t *Table) BindTable(ref *property.Ref) { t.tableRef = ref }

// GetValue resolves the table's bound axis references and interpolates.
// Fails with ErrUnresolvedProperty if a required axis has no binding or its
// reference cannot resolve.
func (t *Table) GetValue() (float64, error) {
	row, err := t.resolveAxis(t.rowRef, "row")
	if err != nil {
		return 0, err
	}

	switch t.rank {
	case Rank1D:
		return t.Lookup1D(row), nil
	case Rank2D:
		col, err := t.resolveAxis(t.colRef, "column")
		if err != nil {
			return 0, err
		}

		return t.Lookup2D(row, col), nil
	case Rank3D:
		col, err := t.resolveAxis(t.colRef, "column")
		if err != nil {
			return 0, err
		}

		tbl, err := t.resolveAxis(t.tableRef, "table")
		if err != nil {
			return 0, err
		}

		return t.Lookup3D(row, col, tbl), nil
	default:
		return 0, fmt.Errorf("%w: unknown rank %d", ErrMalformedTable, t.rank)
	}
}

func (t *Table) resolveAxis(ref *property.Ref, axis string) (float64, error) {
	if ref == nil {
		return 0, fmt.Errorf("%w: %s axis has no bound property", ErrUnresolvedProperty, axis)
	}

	v, err := ref.Value()
	if err != nil {
		return 0, fmt.Errorf("%w: %s axis: %s", ErrUnresolvedProperty, axis, err)
	}

	return v, nil
}

// walk advances a cached last-index hint along keys towards k, using a
// linear walk seeded from the previous query's result rather than a binary
// search: successive queries in a physics simulation vary smoothly, so the
// amortised cost is O(1). Returns the index r such that keys[r-1] <= k <
// keys[r] (clamped to [1, len(keys)-1]).
func walk(keys []float64, k float64, last int) int {
	n := len(keys)

	if last < 1 {
		last = 1
	}

	if last > n-1 {
		last = n - 1
	}

	for last > 1 && keys[last-1] > k {
		last--
	}

	for last < n-1 && keys[last] <= k {
		last++
	}

	return last
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}

	if f > 1 {
		return 1
	}

	return f
}

// interp1 performs the 1D clamp-and-interpolate lookup described in
// SPEC_FULL.md §5 / spec.md §4.3, updating *last as a side effect.
func interp1(keys, values []float64, k float64, last *int) float64 {
	n := len(keys)

	if k <= keys[0] {
		return values[0]
	}

	if k >= keys[n-1] {
		return values[n-1]
	}

	r := walk(keys, k, *last)
	*last = r

	span := keys[r] - keys[r-1]
	if span == 0 {
		return values[r]
	}

	factor := clamp01((k - keys[r-1]) / span)

	return (1-factor)*values[r-1] + factor*values[r]
}

// Lookup1D performs the 1D piecewise-linear lookup described in spec.md
// §4.3 / §8. Valid only when Rank() == Rank1D.
func (t *Table) Lookup1D(key float64) float64 {
	values := make([]float64, len(t.rowKeys))
	for i, row := range t.data {
		values[i] = row[0]
	}

	return interp1(t.rowKeys, values, key, &t.lastRow)
}

// Lookup2D performs the 2D bilinear lookup described in spec.md §4.3 / §8.
// Valid only when Rank() == Rank2D.
func (t *Table) Lookup2D(rowKey, colKey float64) float64 {
	return t.lookup2D(rowKey, colKey, &t.lastRow, &t.lastCol)
}

func (t *Table) lookup2D(rowKey, colKey float64, lastRow, lastCol *int) float64 {
	rowFactor, r0, r1 := axisFactor(t.rowKeys, rowKey, lastRow)
	colFactor, c0, c1 := axisFactor(t.colKeys, colKey, lastCol)

	v00 := t.data[r0][c0]
	v01 := t.data[r0][c1]
	v10 := t.data[r1][c0]
	v11 := t.data[r1][c1]

	lo := (1-colFactor)*v00 + colFactor*v01
	hi := (1-colFactor)*v10 + colFactor*v11

	return (1-rowFactor)*lo + rowFactor*hi
}

// axisFactor returns the interpolation factor and the bracketing index pair
// for a single axis, clamping the factor to [0,1] per spec.md §4.3's 2D
// boundary-softening note.
func axisFactor(keys []float64, k float64, last *int) (factor float64, lo, hi int) {
	n := len(keys)

	if n == 1 {
		return 0, 0, 0
	}

	r := walk(keys, k, *last)
	*last = r

	span := keys[r] - keys[r-1]
	if span == 0 {
		return 0, r - 1, r
	}

	return clamp01((k - keys[r-1]) / span), r - 1, r
}

// Lookup3D performs the 3D breakpoint-blended lookup described in spec.md
// §4.3 / §8. Valid only when Rank() == Rank3D.
func (t *Table) Lookup3D(rowKey, colKey, tableKey float64) float64 {
	n := len(t.breakpoints)

	if tableKey <= t.breakpoints[0] {
		return t.subtables[0].lookup2D(rowKey, colKey, &t.lastRow, &t.lastCol)
	}

	if tableKey >= t.breakpoints[n-1] {
		return t.subtables[n-1].lookup2D(rowKey, colKey, &t.lastRow, &t.lastCol)
	}

	r := walk(t.breakpoints, tableKey, t.lastTable)
	t.lastTable = r

	lo := t.subtables[r-1].lookup2D(rowKey, colKey, &t.lastRow, &t.lastCol)
	hi := t.subtables[r].lookup2D(rowKey, colKey, &t.lastRow, &t.lastCol)

	span := t.breakpoints[r] - t.breakpoints[r-1]
	if span == 0 {
		return hi
	}

	factor := clamp01((tableKey - t.breakpoints[r-1]) / span)

	return (1-factor)*lo + factor*hi
}
