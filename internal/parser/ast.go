package parser

import "github.com/google/uuid"

// Data model produced by Parse. Optional strings are "" when absent.
// Nothing here is mutated once Parse returns.

type Document struct {
	Version string
	Date    string
	Time    string
	Origin  string
	User    string

	Languages      []Language
	ControlTypes   []ControlType
	StatisticTypes []StatisticType
	Controls       []Control // report-level controls
	Tables         []Table
}

type Language struct {
	Lang        string
	Base        string
	Description string
}

type ControlType struct {
	Name   string
	Status string // primary, secondary
	Text   string
}

type StatisticType struct {
	Name string
	Text string
}

type Control struct {
	Kind  string // e.g. weight, base, project
	Value string
}

// Table is one cross-tabulation.
//
// Rows holds the raw data rows in document order. The format does not say how
// rows of different statistics are interleaved; the assumption is that the
// statistic varies fastest, so raw row r belongs to statistic r%len(Statistics)
// and to row label r/len(Statistics).
type Table struct {
	Name       string // usually a UUID
	Title      string
	Controls   []Control
	RowEdge    Edge
	ColumnEdge Edge
	Statistics []string
	Rows       []DataRow
}

// UUID returns the table name as a UUID when it is one.
func (t *Table) UUID() (uuid.UUID, bool) {
	id, err := uuid.Parse(t.Name)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type Edge struct {
	Axis   string // "r" or "c"
	Groups []Group
}

type Group struct {
	Label    string
	Elements []Element
	Groups   []Group // nested; flattened after Elements
}

type Element struct {
	Label   string
	Code    string
	Summary bool // from <summary>, e.g. NET or Total
}

type DataRow struct {
	Cells []DataCell
}

// DataCell is one value. Missing cells have an empty Value; a present empty
// string has Missing == false.
type DataCell struct {
	Value   string
	Missing bool
}

// Get returns the value and whether it is present.
func (c DataCell) Get() (string, bool) {
	if c.Missing {
		return "", false
	}
	return c.Value, true
}

// Ptr returns nil for a missing cell.
func (c DataCell) Ptr() *string {
	if c.Missing {
		return nil
	}
	v := c.Value
	return &v
}

// DataRowSeries is the run of cells for one statistic of one row label.
type DataRowSeries struct {
	Statistic string
	Cells     []DataCell
}

// LabeledRow groups the raw rows that belong to one row label.
type LabeledRow struct {
	Label  string
	Series []DataRowSeries
}

// StatisticData is the de-interleaved matrix of one statistic.
type StatisticData struct {
	Statistic string
	Values    [][]*string
}
