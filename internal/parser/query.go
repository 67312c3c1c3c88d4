package parser

import "strconv"

// Read-only queries over a parsed Table. None of them touch XML.

// RowLabels flattens the row edge depth-first.
func (t *Table) RowLabels() []string {
	return t.RowEdge.Labels()
}

// ColumnLabels flattens the column edge depth-first.
func (t *Table) ColumnLabels() []string {
	return t.ColumnEdge.Labels()
}

// StatisticTypes returns the statistics in declaration order.
func (t *Table) StatisticTypes() []string {
	return t.Statistics
}

// Shape returns (row labels, column labels).
func (t *Table) Shape() (rows, cols int) {
	return len(t.RowLabels()), len(t.ColumnLabels())
}

// StatisticIndex returns the position of the named statistic.
func (t *Table) StatisticIndex(name string) (int, bool) {
	for i, s := range t.Statistics {
		if s == name {
			return i, true
		}
	}
	return -1, false
}

// Series returns the raw rows of statistic i in ascending row order.
func (t *Table) Series(i int) ([]DataRow, bool) {
	if !t.consistent() || i < 0 || i >= len(t.Statistics) {
		return nil, false
	}
	n := len(t.Statistics)
	rows := make([]DataRow, 0, len(t.Rows)/n)
	for r := i; r < len(t.Rows); r += n {
		rows = append(rows, t.Rows[r])
	}
	return rows, true
}

// StatisticData de-interleaves statistic i into a rows x columns matrix with
// nil for missing cells. It reports false when i is out of range, and for
// every i when the row count is not len(RowLabels())*len(Statistics).
func (t *Table) StatisticData(i int) (*StatisticData, bool) {
	rows, ok := t.Series(i)
	if !ok {
		return nil, false
	}
	values := make([][]*string, len(rows))
	for r, row := range rows {
		values[r] = make([]*string, len(row.Cells))
		for c, cell := range row.Cells {
			values[r][c] = cell.Ptr()
		}
	}
	return &StatisticData{Statistic: t.Statistics[i], Values: values}, true
}

// Validate checks the invariants Parse enforces on every table: each row has
// one cell per column label, and the row count is a whole multiple of the
// statistic count.
func (t *Table) Validate() error {
	cols := len(t.ColumnLabels())
	for i, row := range t.Rows {
		if len(row.Cells) != cols {
			return structureErrorf("data[1]/r["+strconv.Itoa(i+1)+"]", 0,
				"row has %d cells, want %d (one per column label)", len(row.Cells), cols)
		}
	}
	n := len(t.Statistics)
	if n == 0 {
		if len(t.Rows) > 0 {
			return structureErrorf("data[1]", 0, "%d data rows but no statistics", len(t.Rows))
		}
		return nil
	}
	if len(t.Rows)%n != 0 {
		return structureErrorf("data[1]", 0, "%d data rows is not a multiple of %d statistics", len(t.Rows), n)
	}
	return nil
}

func (t *Table) consistent() bool {
	n := len(t.Statistics)
	return n > 0 && len(t.Rows) == len(t.RowLabels())*n
}

// Elements flattens the edge into its positions: groups in order, each
// group's elements before its nested groups. A group with neither elements
// nor nested groups, such as a banner-less "Total" column, is one position
// labelled by the group.
func (e Edge) Elements() []Element {
	var out []Element
	for _, g := range e.Groups {
		out = g.appendElements(out)
	}
	return out
}

func (g Group) appendElements(out []Element) []Element {
	if len(g.Elements) == 0 && len(g.Groups) == 0 {
		return append(out, Element{Label: g.Label})
	}
	out = append(out, g.Elements...)
	for _, sub := range g.Groups {
		out = sub.appendElements(out)
	}
	return out
}

// Labels returns the label of every position of the edge.
func (e Edge) Labels() []string {
	var labels []string
	for _, el := range e.Elements() {
		labels = append(labels, el.Label)
	}
	return labels
}

// TableByName finds a table by its name attribute.
func (d *Document) TableByName(name string) (*Table, bool) {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i], true
		}
	}
	return nil, false
}
