package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
)

// axis identifies which lookup axis an independentVar element binds.
type axis string

const (
	axisRow    axis = "row"
	axisColumn axis = "column"
	axisTable  axis = "table"
)

// BuildFromElement constructs a Table from a <table> document element per
// spec.md §4.3: independentVar children declare and bind axes, tableData
// children hold the whitespace-separated matrix text, and type="internal"
// defers axis binding to the caller (the table's owning coefficient
// aggregator, outside this core's scope — see spec.md §1, "Out of scope").
func BuildFromElement(registry *property.Registry, el *docfmt.Element) (*Table, error) {
	internal := false
	if t, ok := el.Attr("type"); ok && t == "internal" {
		internal = true
	}

	indepVars := el.ChildrenTagged("independentVar")
	if internal && len(indepVars) > 0 {
		return nil, fmt.Errorf("%w: table %q combines type=internal with explicit independentVar", ErrMalformedTable, elemName(el))
	}

	dataEls := el.ChildrenTagged("tableData")
	if len(dataEls) == 0 {
		return nil, fmt.Errorf("%w: table %q has no tableData", ErrMalformedTable, elemName(el))
	}

	if internal {
		tbl, err := buildInternal(dataEls)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", elemName(el), err)
		}

		return tbl, nil
	}

	return buildDocument(registry, el, indepVars, dataEls)
}

func elemName(el *docfmt.Element) string {
	if name, ok := el.Attr("name"); ok {
		return name
	}

	return el.Tag()
}

func buildDocument(registry *property.Registry, el *docfmt.Element, indepVars []*docfmt.Element, dataEls []*docfmt.Element) (*Table, error) {
	axes := make(map[axis]*docfmt.Element, 3)

	for _, iv := range indepVars {
		lookup, ok := iv.Attr("lookup")
		if !ok {
			lookup = string(axisRow)
		}

		axes[axis(lookup)] = iv
	}

	rank := Rank(len(indepVars))

	switch rank {
	case Rank1D, Rank2D:
		if len(dataEls) != 1 {
			return nil, fmt.Errorf("%w: table %q expected exactly one tableData block for rank %d", ErrMalformedTable, elemName(el), rank)
		}

		tbl, err := buildRank(rank, dataEls[0].Text())
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", elemName(el), err)
		}

		bindAxes(registry, tbl, axes)

		return tbl, nil
	case Rank3D:
		breakpoints := make([]float64, len(dataEls))
		subtables := make([]*Table, len(dataEls))

		for i, d := range dataEls {
			bpText, ok := d.Attr("breakPoint")
			if !ok {
				return nil, fmt.Errorf("%w: table %q tableData missing breakPoint", ErrMalformedTable, elemName(el))
			}

			bp, err := strconv.ParseFloat(bpText, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: table %q malformed breakPoint %q", ErrMalformedTable, elemName(el), bpText)
			}

			sub, err := buildRank(Rank2D, d.Text())
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", elemName(el), err)
			}

			breakpoints[i] = bp
			subtables[i] = sub
		}

		tbl, err := New(Rank3D).WithBreakpoints(breakpoints).WithSubtables(subtables).Build()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", elemName(el), err)
		}

		bindAxes(registry, tbl, axes)

		return tbl, nil
	default:
		return nil, fmt.Errorf("%w: table %q declares %d independentVar, must be 1-3", ErrMalformedTable, elemName(el), len(indepVars))
	}
}

func bindAxes(registry *property.Registry, tbl *Table, axes map[axis]*docfmt.Element) {
	if iv, ok := axes[axisRow]; ok {
		tbl.BindRow(property.NewRef(registry, iv.Text()))
	}

	if iv, ok := axes[axisColumn]; ok {
		tbl.BindColumn(property.NewRef(registry, iv.Text()))
	}

	if iv, ok := axes[axisTable]; ok {
		tbl.BindTable(property.NewRef(registry, iv.Text()))
	}
}

// buildInternal infers dimensionality from the raw tableData text per
// spec.md §4.3: two columns on the first line means 1D, more than two means
// 2D, multiple tableData blocks means 3D. Axis bindings are left to the
// caller (the owning aggregator), since an internal table declares none.
func buildInternal(dataEls []*docfmt.Element) (*Table, error) {
	if len(dataEls) > 1 {
		breakpoints := make([]float64, len(dataEls))
		subtables := make([]*Table, len(dataEls))

		for i, d := range dataEls {
			bpText, ok := d.Attr("breakPoint")
			if !ok {
				return nil, fmt.Errorf("%w: internal 3D tableData missing breakPoint", ErrMalformedTable)
			}

			bp, err := strconv.ParseFloat(bpText, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed breakPoint %q", ErrMalformedTable, bpText)
			}

			sub, err := buildRank(Rank2D, d.Text())
			if err != nil {
				return nil, err
			}

			breakpoints[i] = bp
			subtables[i] = sub
		}

		return New(Rank3D).WithBreakpoints(breakpoints).WithSubtables(subtables).Build()
	}

	lines := splitLines(dataEls[0].Text())
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty internal tableData", ErrMalformedTable)
	}

	firstLine, err := parseFloats(lines[0])
	if err != nil {
		return nil, err
	}

	if len(firstLine) == 2 {
		return buildRank(Rank1D, dataEls[0].Text())
	}

	return buildRank(Rank2D, dataEls[0].Text())
}

// buildRank parses text (whitespace-separated rows of doubles) into a
// Table of the given rank and validates its invariants via Builder.Build.
func buildRank(rank Rank, text string) (*Table, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty table data", ErrMalformedTable)
	}

	switch rank {
	case Rank1D:
		rowKeys := make([]float64, 0, len(lines))
		values := make([]float64, 0, len(lines))

		for _, line := range lines {
			fields, err := parseFloats(line)
			if err != nil {
				return nil, err
			}

			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: 1D tableData row must have 2 columns, got %d", ErrMalformedTable, len(fields))
			}

			rowKeys = append(rowKeys, fields[0])
			values = append(values, fields[1])
		}

		return New(Rank1D).WithRowKeys(rowKeys).WithValues(values).Build()
	case Rank2D:
		colKeys, err := parseFloats(lines[0])
		if err != nil {
			return nil, err
		}

		rowKeys := make([]float64, 0, len(lines)-1)
		data := make([][]float64, 0, len(lines)-1)

		for _, line := range lines[1:] {
			fields, err := parseFloats(line)
			if err != nil {
				return nil, err
			}

			if len(fields) != len(colKeys)+1 {
				return nil, fmt.Errorf("%w: 2D tableData row has %d columns, expected %d", ErrMalformedTable, len(fields), len(colKeys)+1)
			}

			rowKeys = append(rowKeys, fields[0])
			data = append(data, fields[1:])
		}

		return New(Rank2D).WithRowKeys(rowKeys).WithColumnKeys(colKeys).WithData(data).Build()
	default:
		return nil, fmt.Errorf("%w: unsupported rank %d for raw parsing", ErrMalformedTable, rank)
	}
}

func splitLines(text string) []string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func parseFloats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", ErrMalformedTable, f)
		}

		out[i] = v
	}

	return out, nil
}
