package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chriserin/xtab/internal/parser"
)

// ErrNotFound is returned when a document, table or statistic is not stored.
var ErrNotFound = errors.New("not found")

// DocumentSummary is one row of ListDocuments.
type DocumentSummary struct {
	ID         string
	Source     string
	Version    string
	Date       string
	Tables     int
	ImportedAt string
}

// Matrix is one statistic of a stored table. Nil values are missing cells.
type Matrix struct {
	Title     string
	Statistic string
	Rows      []string
	Columns   []string
	Values    [][]*string
}

// SaveDocument stores doc under a new id in a single transaction. Tables
// whose rows cannot be split by statistic keep their labels but no cells.
func SaveDocument(ctx context.Context, sqlDB *sql.DB, source string, doc *parser.Document) (string, error) {
	id := uuid.NewString()

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, source, version, date, time, origin, user_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, source, doc.Version, doc.Date, doc.Time, doc.Origin, doc.User)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	for _, c := range doc.Controls {
		if err := insertControl(ctx, tx, id, nil, c); err != nil {
			return "", err
		}
	}

	for i := range doc.Tables {
		if err := insertTable(ctx, tx, id, i+1, &doc.Tables[i]); err != nil {
			return "", fmt.Errorf("table %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing import: %w", err)
	}
	return id, nil
}

func insertControl(ctx context.Context, tx *sql.Tx, documentID string, tableID *int64, c parser.Control) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO controls (document_id, table_id, kind, value) VALUES (?, ?, ?, ?)`,
		documentID, tableID, c.Kind, c.Value)
	if err != nil {
		return fmt.Errorf("inserting control %s: %w", c.Kind, err)
	}
	return nil
}

func insertTable(ctx context.Context, tx *sql.Tx, documentID string, position int, t *parser.Table) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO xtables (document_id, position, name, title, data_rows)
		VALUES (?, ?, ?, ?, ?)`,
		documentID, position, t.Name, t.Title, len(t.Rows))
	if err != nil {
		return fmt.Errorf("inserting table: %w", err)
	}
	tableID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading table id: %w", err)
	}

	for _, c := range t.Controls {
		if err := insertControl(ctx, tx, documentID, &tableID, c); err != nil {
			return err
		}
	}
	if err := insertLabels(ctx, tx, tableID, t.RowEdge); err != nil {
		return err
	}
	if err := insertLabels(ctx, tx, tableID, t.ColumnEdge); err != nil {
		return err
	}

	cellStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (statistic_id, row_index, column_index, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing cell insert: %w", err)
	}
	defer cellStmt.Close()

	for s, stat := range t.Statistics {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO statistics (table_id, position, type) VALUES (?, ?, ?)`,
			tableID, s+1, stat)
		if err != nil {
			return fmt.Errorf("inserting statistic %s: %w", stat, err)
		}
		statID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading statistic id: %w", err)
		}

		data, ok := t.StatisticData(s)
		if !ok {
			continue
		}
		for r, row := range data.Values {
			for c, v := range row {
				if _, err := cellStmt.ExecContext(ctx, statID, r, c, v); err != nil {
					return fmt.Errorf("inserting cell %d,%d of %s: %w", r, c, stat, err)
				}
			}
		}
	}
	return nil
}

// insertLabels stores the positions of e, which is what the cell indexes
// refer to.
func insertLabels(ctx context.Context, tx *sql.Tx, tableID int64, e parser.Edge) error {
	for i, el := range e.Elements() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO labels (table_id, axis, position, label, code, summary)
			VALUES (?, ?, ?, ?, ?, ?)`,
			tableID, e.Axis, i, el.Label, el.Code, el.Summary)
		if err != nil {
			return fmt.Errorf("inserting %s label %q: %w", e.Axis, el.Label, err)
		}
	}
	return nil
}

// ListDocuments returns every imported document, newest first.
func ListDocuments(ctx context.Context, sqlDB *sql.DB) ([]DocumentSummary, error) {
	rows, err := sqlDB.QueryContext(ctx, `
		SELECT d.id, d.source, d.version, d.date, d.imported_at,
			(SELECT COUNT(*) FROM xtables t WHERE t.document_id = d.id)
		FROM documents d
		ORDER BY d.imported_at DESC, d.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.Source, &d.Version, &d.Date, &d.ImportedAt, &d.Tables); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return out, nil
}

// StatisticValues reads back one statistic of the table at position (1-based)
// in the given document.
func StatisticValues(ctx context.Context, sqlDB *sql.DB, documentID string, position int, statistic string) (*Matrix, error) {
	m := &Matrix{Statistic: statistic}

	var tableID int64
	err := sqlDB.QueryRowContext(ctx,
		`SELECT id, title FROM xtables WHERE document_id = ? AND position = ?`,
		documentID, position).Scan(&tableID, &m.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("table %d of document %s: %w", position, documentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying table: %w", err)
	}

	var statID int64
	err = sqlDB.QueryRowContext(ctx,
		`SELECT id FROM statistics WHERE table_id = ? AND type = ? ORDER BY position LIMIT 1`,
		tableID, statistic).Scan(&statID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("statistic %q in table %d: %w", statistic, position, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying statistic: %w", err)
	}

	if m.Rows, err = labels(ctx, sqlDB, tableID, "r"); err != nil {
		return nil, err
	}
	if m.Columns, err = labels(ctx, sqlDB, tableID, "c"); err != nil {
		return nil, err
	}

	m.Values = make([][]*string, len(m.Rows))
	for r := range m.Values {
		m.Values[r] = make([]*string, len(m.Columns))
	}

	rows, err := sqlDB.QueryContext(ctx,
		`SELECT row_index, column_index, value FROM cells WHERE statistic_id = ?`, statID)
	if err != nil {
		return nil, fmt.Errorf("querying cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r, c int
		var v sql.NullString
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("scanning cell: %w", err)
		}
		if r >= len(m.Values) || c >= len(m.Columns) || !v.Valid {
			continue
		}
		s := v.String
		m.Values[r][c] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cells: %w", err)
	}
	return m, nil
}

func labels(ctx context.Context, sqlDB *sql.DB, tableID int64, axis string) ([]string, error) {
	rows, err := sqlDB.QueryContext(ctx,
		`SELECT label FROM labels WHERE table_id = ? AND axis = ? ORDER BY position`, tableID, axis)
	if err != nil {
		return nil, fmt.Errorf("querying %s labels: %w", axis, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
