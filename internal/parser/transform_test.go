package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseFile("testdata/example.xte")
	require.NoError(t, err)
	return doc
}

func TestExample_Header(t *testing.T) {
	doc := parseExample(t)

	assert.Equal(t, "Observation", doc.Version)
	assert.Equal(t, "2025-03-14", doc.Date)
	assert.Equal(t, "09:30", doc.Time)
	assert.Equal(t, "Survey Reporter", doc.Origin)
	assert.Equal(t, "analyst", doc.User)
	assert.Equal(t, []Language{{Lang: "en", Description: "English"}}, doc.Languages)
	assert.Equal(t, []ControlType{
		{Name: "project", Status: "primary", Text: "Project"},
		{Name: "base", Status: "secondary", Text: "Base"},
	}, doc.ControlTypes)
	assert.Equal(t, []StatisticType{
		{Name: "Percent", Text: "Column percent"},
		{Name: "n", Text: "Count"},
	}, doc.StatisticTypes)
	assert.Equal(t, []Control{{Kind: "project", Value: "Phone 1"}}, doc.Controls)
	require.Len(t, doc.Tables, 2)
}

func TestExample_TotalColumnTable(t *testing.T) {
	doc := parseExample(t)
	table := &doc.Tables[0]

	assert.Equal(t, "q4: Age", table.Title)
	assert.Equal(t, []string{"15 and under", "16-19 yrs", "20-24 yrs", "NET"}, table.RowLabels())
	assert.Equal(t, []string{"Total"}, table.ColumnLabels())

	rows, cols := table.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 1, cols)

	data, ok := table.StatisticData(0)
	require.True(t, ok)
	var got []string
	for _, row := range data.Values {
		require.Len(t, row, 1)
		got = append(got, *row[0])
	}
	assert.Equal(t, []string{".140", ".352", ".508", "1.000"}, got)

	id, ok := table.UUID()
	require.True(t, ok)
	assert.Equal(t, "97f48ec3-87c5-4c39-b6c2-5229cc884666", id.String())
}

func TestExample_TwoStatisticTable(t *testing.T) {
	doc := parseExample(t)
	table, ok := doc.TableByName("region-by-gender")
	require.True(t, ok)

	assert.Equal(t, "q5: Region by Gender", table.Title)
	assert.Equal(t, []string{"North", "South", "West"}, table.RowLabels())
	assert.Equal(t, []string{"Male", "Female"}, table.ColumnLabels())
	assert.Equal(t, "Region", table.RowEdge.Groups[0].Label)

	_, ok = table.UUID()
	assert.False(t, ok)

	percent, ok := table.StatisticData(0)
	require.True(t, ok)
	assert.Equal(t, "Percent", percent.Statistic)
	assert.Equal(t, "12.3", *percent.Values[0][0])
	assert.Equal(t, "50.2", *percent.Values[1][0])
	assert.Nil(t, percent.Values[1][1])
	assert.Equal(t, "n/a", *percent.Values[2][1])

	n, ok := table.StatisticData(1)
	require.True(t, ok)
	assert.Equal(t, "n", n.Statistic)
	assert.Equal(t, "47", *n.Values[0][1])
	assert.Nil(t, n.Values[1][1])
	require.NotNil(t, n.Values[2][1])
	assert.Equal(t, "", *n.Values[2][1])
}

func TestLabeledRows(t *testing.T) {
	doc := parseExample(t)
	table, _ := doc.TableByName("region-by-gender")

	rows, ok := table.LabeledRows()
	require.True(t, ok)
	require.Len(t, rows, 3)

	assert.Equal(t, "South", rows[1].Label)
	require.Len(t, rows[1].Series, 2)
	assert.Equal(t, "Percent", rows[1].Series[0].Statistic)
	assert.Equal(t, "n", rows[1].Series[1].Statistic)
	assert.Equal(t, []DataCell{{Value: "50.2"}, {Missing: true}}, rows[1].Series[0].Cells)
	assert.Equal(t, []DataCell{{Value: "167"}, {Missing: true}}, rows[1].Series[1].Cells)
}

func TestControlValues(t *testing.T) {
	doc := parseExample(t)

	assert.Equal(t, []string{"Total sample; Unweighted; base n = 713"}, doc.Tables[0].ControlValues("base", doc))
	assert.Equal(t, []string{"Phone 1"}, doc.Tables[0].ControlValues("project", doc))
	assert.Empty(t, doc.Tables[0].ControlValues("project", nil))
	assert.Equal(t, []string{"wt_final"}, doc.Tables[1].ControlValues("weight", doc))
}

func TestTableByName_Unknown(t *testing.T) {
	doc := parseExample(t)
	table, ok := doc.TableByName("nope")
	assert.False(t, ok)
	assert.Nil(t, table)
}
