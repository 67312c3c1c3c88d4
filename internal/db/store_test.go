package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/xtab/internal/parser"
)

func openStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "xtab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func exampleDocument(t *testing.T) *parser.Document {
	t.Helper()
	doc, err := parser.ParseFile(filepath.Join("..", "parser", "testdata", "example.xte"))
	require.NoError(t, err)
	return doc
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSaveDocument_StoresEveryPart(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	id, err := SaveDocument(ctx, db, "example.xte", exampleDocument(t))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM xtables WHERE document_id = ?`, id))
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM statistics`))
	// 1 report control, 1 control per table
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM controls WHERE document_id = ?`, id))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM controls WHERE table_id IS NULL`))
	// 4x1 + 3x2 + 3x2
	assert.Equal(t, 16, count(t, db, `SELECT COUNT(*) FROM cells`))
	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM cells WHERE value IS NULL`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM labels WHERE summary = 1`))
}

func TestStatisticValues_RoundTrip(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	id, err := SaveDocument(ctx, db, "example.xte", exampleDocument(t))
	require.NoError(t, err)

	m, err := StatisticValues(ctx, db, id, 2, "n")
	require.NoError(t, err)

	assert.Equal(t, "q5: Region by Gender", m.Title)
	assert.Equal(t, []string{"North", "South", "West"}, m.Rows)
	assert.Equal(t, []string{"Male", "Female"}, m.Columns)
	require.Len(t, m.Values, 3)
	assert.Equal(t, "41", *m.Values[0][0])
	assert.Nil(t, m.Values[1][1])
	require.NotNil(t, m.Values[2][1])
	assert.Equal(t, "", *m.Values[2][1])
}

func TestStatisticValues_TotalColumn(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	id, err := SaveDocument(ctx, db, "example.xte", exampleDocument(t))
	require.NoError(t, err)

	m, err := StatisticValues(ctx, db, id, 1, "Percent")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total"}, m.Columns)
	assert.Equal(t, "1.000", *m.Values[3][0])
}

func TestStatisticValues_NotFound(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	id, err := SaveDocument(ctx, db, "example.xte", exampleDocument(t))
	require.NoError(t, err)

	_, err = StatisticValues(ctx, db, id, 9, "n")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = StatisticValues(ctx, db, id, 1, "Mean")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = StatisticValues(ctx, db, "missing", 1, "n")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveDocument_InconsistentTableKeepsLabels(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	doc := &parser.Document{Tables: []parser.Table{{
		Title:      "odd",
		RowEdge:    parser.Edge{Axis: "r", Groups: []parser.Group{{Elements: []parser.Element{{Label: "a"}}}}},
		ColumnEdge: parser.Edge{Axis: "c", Groups: []parser.Group{{Elements: []parser.Element{{Label: "x"}}}}},
		Statistics: []string{"Percent", "n"},
		Rows: []parser.DataRow{
			{Cells: []parser.DataCell{{Value: "1"}}}, {Cells: []parser.DataCell{{Value: "2"}}},
			{Cells: []parser.DataCell{{Value: "3"}}}, {Cells: []parser.DataCell{{Value: "4"}}},
		},
	}}}

	id, err := SaveDocument(ctx, db, "odd.xte", doc)
	require.NoError(t, err)
	assert.Equal(t, 0, count(t, db, `SELECT COUNT(*) FROM cells`))
	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM labels`))

	m, err := StatisticValues(ctx, db, id, 1, "n")
	require.NoError(t, err)
	assert.Equal(t, [][]*string{{nil}}, m.Values)
}

func TestListDocuments(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	docs, err := ListDocuments(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, docs)

	first, err := SaveDocument(ctx, db, "a.xte", exampleDocument(t))
	require.NoError(t, err)
	second, err := SaveDocument(ctx, db, "b.xte", &parser.Document{Version: "2"})
	require.NoError(t, err)

	docs, err = ListDocuments(ctx, db)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second, docs[0].ID)
	assert.Equal(t, 0, docs[0].Tables)
	assert.Equal(t, first, docs[1].ID)
	assert.Equal(t, "a.xte", docs[1].Source)
	assert.Equal(t, "Observation", docs[1].Version)
	assert.Equal(t, 2, docs[1].Tables)
	assert.NotEmpty(t, docs[1].ImportedAt)
}

func TestStatisticValues_TotalBannerBesideElements(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	doc, err := parser.ParseBytes([]byte(`<xtab><table title="Gender">
  <edge axis="r"><group><element><t>All</t></element></group></edge>
  <edge axis="c">
    <group><t>Total</t></group>
    <group><t>Gender</t><element code="M"><t>Male</t></element><element code="F"><t>Female</t></element></group>
  </edge>
  <statistic type="n"/>
  <data><r><c>713</c><c>350</c><x/></r></data>
</table></xtab>`))
	require.NoError(t, err)

	id, err := SaveDocument(ctx, db, "gender.xte", doc)
	require.NoError(t, err)

	m, err := StatisticValues(ctx, db, id, 1, "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "Male", "Female"}, m.Columns)
	assert.Equal(t, "713", *m.Values[0][0])
	assert.Equal(t, "350", *m.Values[0][1])
	assert.Nil(t, m.Values[0][2])
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM labels WHERE axis = 'c' AND code = 'F'`))
}
