// Package gateway defines the remote sync contract every entity manager
// writes through: list, create, update, and delete against one backend table
// per call. Implementations live in the subpackages (memory, sqlite, dynamo,
// rest); the managers never assume a particular transport.
package gateway

import (
	"context"

	"github.com/windfab/towerdesk/record"
)

// ListParams narrows a list call. All fields are optional; the zero value
// lists the whole table.
type ListParams struct {
	// Search is a free-text query the backend may apply server-side.
	Search string

	// Filters are exact-match constraints on individual fields.
	Filters map[string]string

	// Limit caps the number of returned records (0 = no cap).
	Limit int

	// Page is the zero-based page index when Limit is set.
	Page int
}

// Page is the result of a list call.
type Page struct {
	// Records are the matching records in backend order.
	Records []record.Record

	// Total is the number of matching records before Limit/Page were applied.
	Total int
}

// Gateway is the four-operation remote contract. Every call is fallible and
// callers must never touch local state before the call returns.
type Gateway interface {
	// List returns records from a table. Missing tables list as empty, not
	// as an error.
	List(ctx context.Context, table string, params ListParams) (Page, error)

	// Create stores a new record and returns the stored form, which may
	// differ from the input (server-assigned identifier, timestamps).
	Create(ctx context.Context, table string, fld record.Record) (record.Record, error)

	// Update replaces the given fields of an existing record and returns the
	// updated form. Updating an absent identifier returns ErrNotFound.
	Update(ctx context.Context, table string, id string, fld record.Record) (record.Record, error)

	// Delete removes a record. Deleting an absent identifier returns
	// ErrNotFound.
	Delete(ctx context.Context, table string, id string) error
}
