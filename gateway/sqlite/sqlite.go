// Package sqlite provides a Gateway backed by a local SQLite database, for
// single-node deployments and offline use. Records are stored one row per
// record with the schema-free field set serialized as a JSON blob.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// Gateway is a SQLite implementation of gateway.Gateway.
type Gateway struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and prepares the
// schema. Use ":memory:" for an ephemeral database.
func Open(path string) (*Gateway, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	g := &Gateway{db: db}
	if err := g.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

// Close closes the underlying database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) createSchema() error {
	_, err := g.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			tbl        TEXT NOT NULL,
			id         TEXT NOT NULL,
			fields     TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			seq        INTEGER PRIMARY KEY AUTOINCREMENT
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_records_tbl_id ON records (tbl, id);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// List returns records in insertion order, narrowed by search and filters.
// Search and filter matching happen after decoding, so array-membership
// filters behave the same as in every other gateway.
func (g *Gateway) List(ctx context.Context, table string, params gateway.ListParams) (gateway.Page, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, fields, created_at, updated_at
		FROM records
		WHERE tbl = ?
		ORDER BY seq
	`, table)
	if err != nil {
		return gateway.Page{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var matched []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return gateway.Page{}, err
		}
		if !matches(rec, params) {
			continue
		}
		matched = append(matched, rec)
	}
	if err := rows.Err(); err != nil {
		return gateway.Page{}, fmt.Errorf("scan records: %w", err)
	}

	page := gateway.Page{Records: matched, Total: len(matched)}
	if params.Limit > 0 {
		start := params.Page * params.Limit
		if start >= len(matched) {
			page.Records = nil
			return page, nil
		}
		end := start + params.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Records = matched[start:end]
	}
	return page, nil
}

func scanRecord(rows *sql.Rows) (record.Record, error) {
	var id, blob, createdAt, updatedAt string
	if err := rows.Scan(&id, &blob, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}
	var rec record.Record
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, fmt.Errorf("decode record %q: %w", id, err)
	}
	rec[record.IDField] = id
	rec["created_at"] = createdAt
	rec["updated_at"] = updatedAt
	return rec, nil
}

func matches(rec record.Record, params gateway.ListParams) bool {
	for field, want := range params.Filters {
		if !fields.Matches(rec[field], want) {
			return false
		}
	}
	query := strings.ToLower(strings.TrimSpace(params.Search))
	if query == "" {
		return true
	}
	for _, v := range rec {
		if strings.Contains(strings.ToLower(fields.String(v)), query) {
			return true
		}
	}
	return false
}

// Create inserts a record, assigning an identifier when absent.
func (g *Gateway) Create(ctx context.Context, table string, fld record.Record) (record.Record, error) {
	rec := fld.Clone()
	if rec == nil {
		rec = record.Record{}
	}
	if rec.ID() == "" {
		rec[record.IDField] = uuid.NewString()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	blob, err := encodeFields(rec)
	if err != nil {
		return nil, err
	}

	_, err = g.db.ExecContext(ctx, `
		INSERT INTO records (tbl, id, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, table, rec.ID(), blob, now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, gateway.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert record: %w", err)
	}

	rec["created_at"] = now
	rec["updated_at"] = now
	return rec, nil
}

// Update merges fields into an existing record.
func (g *Gateway) Update(ctx context.Context, table string, id string, fld record.Record) (record.Record, error) {
	current, err := g.get(ctx, table, id)
	if err != nil {
		return nil, err
	}

	updated := current.Merge(fld)
	updated[record.IDField] = id
	now := time.Now().UTC().Format(time.RFC3339)
	updated["updated_at"] = now

	blob, err := encodeFields(updated)
	if err != nil {
		return nil, err
	}

	res, err := g.db.ExecContext(ctx, `
		UPDATE records SET fields = ?, updated_at = ?
		WHERE tbl = ? AND id = ?
	`, blob, now, table, id)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, gateway.ErrNotFound
	}
	return updated, nil
}

// Delete removes a record.
func (g *Gateway) Delete(ctx context.Context, table string, id string) error {
	res, err := g.db.ExecContext(ctx, `
		DELETE FROM records WHERE tbl = ? AND id = ?
	`, table, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func (g *Gateway) get(ctx context.Context, table, id string) (record.Record, error) {
	var blob, createdAt, updatedAt string
	err := g.db.QueryRowContext(ctx, `
		SELECT fields, created_at, updated_at
		FROM records
		WHERE tbl = ? AND id = ?
	`, table, id).Scan(&blob, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, gateway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	var rec record.Record
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, fmt.Errorf("decode record %q: %w", id, err)
	}
	rec[record.IDField] = id
	rec["created_at"] = createdAt
	rec["updated_at"] = updatedAt
	return rec, nil
}

// encodeFields serializes the schema-free fields, excluding the columns
// stored natively.
func encodeFields(rec record.Record) (string, error) {
	trimmed := rec.Clone()
	delete(trimmed, record.IDField)
	delete(trimmed, "created_at")
	delete(trimmed, "updated_at")

	blob, err := json.Marshal(trimmed)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(blob), nil
}
