package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateDocument writes a document with tableCount tables of rows x 2
// columns and two statistics.
func generateDocument(tableCount, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0"?>` + "\n" + `<xtab version="1.1">` + "\n")
	for t := 1; t <= tableCount; t++ {
		fmt.Fprintf(&buf, "  <table name=\"t%d\" title=\"Table %d\">\n", t, t)
		buf.WriteString("    <edge axis=\"r\"><group>")
		for r := 0; r < rows; r++ {
			fmt.Fprintf(&buf, "<element><t>Row %d</t></element>", r)
		}
		buf.WriteString("</group></edge>\n")
		buf.WriteString("    <edge axis=\"c\"><group><element><t>A</t></element><element><t>B</t></element></group></edge>\n")
		buf.WriteString("    <statistic type=\"Percent\"/><statistic type=\"n\"/>\n    <data>\n")
		for r := 0; r < rows; r++ {
			fmt.Fprintf(&buf, "      <r><c><v>%d.5</v></c><c><x/></c></r>\n", r)
			fmt.Fprintf(&buf, "      <r><c><v>%d</v></c><c><v>%d</v></c></r>\n", r*10, r*20)
		}
		buf.WriteString("    </data>\n  </table>\n")
	}
	buf.WriteString("</xtab>\n")
	return buf.String()
}

func setupBenchProject(b *testing.B, fileCount, tableCount, rows int) []string {
	b.Helper()
	dir := b.TempDir()
	orig, err := os.Getwd()
	require.NoError(b, err)
	require.NoError(b, os.Chdir(dir))
	b.Cleanup(func() { os.Chdir(orig) })

	var buf bytes.Buffer
	require.NoError(b, RunInit(&buf, testDB))

	require.NoError(b, os.MkdirAll("reports", 0o755))
	content := generateDocument(tableCount, rows)
	var paths []string
	for i := 0; i < fileCount; i++ {
		path := fmt.Sprintf("reports/report_%d.xte", i)
		require.NoError(b, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return paths
}

// BenchmarkImport_Small: 5 files, 5 tables of 10 rows each
func BenchmarkImport_Small(b *testing.B) {
	paths := setupBenchProject(b, 5, 5, 10)
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunImport(context.Background(), &buf, testDB, paths))
	}
}

// BenchmarkImport_Large: 10 files, 50 tables of 50 rows each
func BenchmarkImport_Large(b *testing.B) {
	paths := setupBenchProject(b, 10, 50, 50)
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunImport(context.Background(), &buf, testDB, paths))
	}
}

// BenchmarkTables_Parse: parse one large document without touching the store
func BenchmarkTables_Parse(b *testing.B) {
	paths := setupBenchProject(b, 1, 100, 100)
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunTables(&buf, paths[0]))
	}
}
