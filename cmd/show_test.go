package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/xtab/internal/parser"
)

func TestTables_ListsEveryTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunTables(&buf, fixture("example.xte")))

	out := buf.String()
	assert.Contains(t, out, "XtabML Observation")
	assert.Contains(t, out, "q4: Age")
	assert.Contains(t, out, "4x1")
	assert.Contains(t, out, "q5: Region by Gender")
	assert.Contains(t, out, "3x2")
	assert.Contains(t, out, "Percent, n")
}

func TestTables_ParseError(t *testing.T) {
	var buf bytes.Buffer
	err := RunTables(&buf, fixture("broken.xte"))
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrInvalidStructure)
}

func TestShow_AllTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunShow(&buf, fixture("example.xte"), 0, ""))

	out := buf.String()
	assert.Contains(t, out, "q4: Age")
	assert.Contains(t, out, "16-19 yrs")
	assert.Contains(t, out, "base: Total sample; Unweighted; base n = 713")
	assert.Contains(t, out, "Female")
	assert.Contains(t, out, "167")
}

func TestShow_SingleTableAndStatistic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunShow(&buf, fixture("example.xte"), 2, "n"))

	out := buf.String()
	assert.NotContains(t, out, "q4: Age")
	assert.Contains(t, out, "q5: Region by Gender")
	assert.Contains(t, out, "167")
	assert.NotContains(t, out, "12.3")
}

func TestShow_TableOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := RunShow(&buf, fixture("example.xte"), 3, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestShow_UnknownStatistic(t *testing.T) {
	var buf bytes.Buffer
	err := RunShow(&buf, fixture("example.xte"), 1, "Mean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no statistic "Mean"`)
}

func TestShow_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunShow(&buf, fixture("nope.xte"), 0, "")
	assert.ErrorIs(t, err, parser.ErrResourceAccess)
}
