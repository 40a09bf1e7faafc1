// Package memory provides an in-memory Gateway used by tests, the e2e
// suite, and demo deployments without a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

type table struct {
	order []string
	byID  map[string]record.Record
}

func newTable() *table {
	return &table{byID: make(map[string]record.Record)}
}

// Gateway is an in-memory implementation of gateway.Gateway. It is safe for
// concurrent use so it can back the HTTP API in tests.
type Gateway struct {
	mu     sync.Mutex
	tables map[string]*table

	// now is swappable for deterministic timestamps in tests.
	now func() time.Time
}

// New creates an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{
		tables: make(map[string]*table),
		now:    time.Now,
	}
}

// Seed inserts records into a table verbatim, bypassing identifier
// assignment. Intended for test fixtures.
func (g *Gateway) Seed(tableName string, records ...record.Record) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tbl := g.table(tableName)
	for _, rec := range records {
		id := rec.ID()
		if _, ok := tbl.byID[id]; !ok {
			tbl.order = append(tbl.order, id)
		}
		tbl.byID[id] = rec.Clone()
	}
}

func (g *Gateway) table(name string) *table {
	tbl, ok := g.tables[name]
	if !ok {
		tbl = newTable()
		g.tables[name] = tbl
	}
	return tbl
}

// List returns records in insertion order, narrowed by search and filters.
func (g *Gateway) List(ctx context.Context, tableName string, params gateway.ListParams) (gateway.Page, error) {
	if err := ctx.Err(); err != nil {
		return gateway.Page{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl := g.table(tableName)
	matched := make([]record.Record, 0, len(tbl.order))
	for _, id := range tbl.order {
		rec := tbl.byID[id]
		if !matches(rec, params) {
			continue
		}
		matched = append(matched, rec.Clone())
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

// matches applies search (any field, case-insensitive substring) and exact
// filters (array fields by membership).
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

// Create stores the record, assigning an identifier when absent and stamping
// created_at/updated_at.
func (g *Gateway) Create(ctx context.Context, tableName string, fld record.Record) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rec := fld.Clone()
	if rec == nil {
		rec = record.Record{}
	}
	if rec.ID() == "" {
		rec[record.IDField] = uuid.NewString()
	}

	tbl := g.table(tableName)
	if _, ok := tbl.byID[rec.ID()]; ok {
		return nil, gateway.ErrAlreadyExists
	}

	now := g.now().UTC().Format(time.RFC3339)
	rec["created_at"] = now
	rec["updated_at"] = now

	tbl.order = append(tbl.order, rec.ID())
	tbl.byID[rec.ID()] = rec
	return rec.Clone(), nil
}

// Update merges the given fields into an existing record.
func (g *Gateway) Update(ctx context.Context, tableName string, id string, fld record.Record) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl := g.table(tableName)
	current, ok := tbl.byID[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}

	updated := current.Merge(fld)
	updated[record.IDField] = id
	updated["updated_at"] = g.now().UTC().Format(time.RFC3339)
	tbl.byID[id] = updated
	return updated.Clone(), nil
}

// Delete removes a record.
func (g *Gateway) Delete(ctx context.Context, tableName string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl := g.table(tableName)
	if _, ok := tbl.byID[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(tbl.byID, id)
	for i, existing := range tbl.order {
		if existing == id {
			tbl.order = append(tbl.order[:i], tbl.order[i+1:]...)
			break
		}
	}
	return nil
}
