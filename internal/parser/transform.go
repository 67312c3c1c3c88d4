package parser

// LabeledRows regroups the raw rows by row label: one entry per label, each
// holding one DataRowSeries per statistic in declaration order. It reports
// false when the row count does not match the labels and statistics.
func (t *Table) LabeledRows() ([]LabeledRow, bool) {
	if !t.consistent() {
		return nil, false
	}
	labels := t.RowLabels()
	n := len(t.Statistics)

	out := make([]LabeledRow, len(labels))
	for i, label := range labels {
		lr := LabeledRow{Label: label, Series: make([]DataRowSeries, n)}
		for s, stat := range t.Statistics {
			lr.Series[s] = DataRowSeries{
				Statistic: stat,
				Cells:     t.Rows[i*n+s].Cells,
			}
		}
		out[i] = lr
	}
	return out, true
}

// ControlValues returns the values of every control of the given kind, table
// controls first, then report-level ones from doc when it is not nil.
func (t *Table) ControlValues(kind string, doc *Document) []string {
	var values []string
	for _, c := range t.Controls {
		if c.Kind == kind {
			values = append(values, c.Value)
		}
	}
	if doc != nil {
		for _, c := range doc.Controls {
			if c.Kind == kind {
				values = append(values, c.Value)
			}
		}
	}
	return values
}
