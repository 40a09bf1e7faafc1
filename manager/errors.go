package manager

import "errors"

var (
	// ErrStaleReference is returned when a mutation targets an identifier
	// that is no longer present in the local store (deleted by a concurrent
	// view action). Refetch and re-present before retrying.
	ErrStaleReference = errors.New("towerdesk: record no longer present in store")

	// ErrDuplicateName is returned when a create would reuse a soft-unique
	// name already present in the local store. The check is client-side and
	// advisory only; it does not guard against concurrent writers.
	ErrDuplicateName = errors.New("towerdesk: name already in use")
)
