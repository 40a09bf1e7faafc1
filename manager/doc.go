// Package manager implements the entity manager pattern every record view in
// the dashboard repeats: fetch, cache, filter/search, render, mutate,
// reconcile.
//
// A [Manager] is built once per entity type from an [EntityConfig] and a
// gateway, and owns that entity's record store exclusively. It is the only
// component permitted to change the store's contents and the only one
// permitted to call the gateway's write operations.
//
// # Mutation ordering
//
// Within one operation the gateway call strictly precedes any store change;
// there is no optimistic pre-update. A failed create never appears in the
// store, and a failed cascade-delete step halts further steps without
// undoing the ones already committed.
//
// # Collaborators
//
// The presentation layer supplies a [RenderFunc] that receives the complete
// visible subset after every change. [Notifier] and [ActivityLogger] are
// best-effort side channels; all three tolerate absence, so an operation
// resolving after its view has been torn down completes harmlessly.
//
// # Errors
//
//   - *validate.Errors - field-level rule violations, raised before any
//     gateway call
//   - [ErrStaleReference] - update target no longer in the local store
//   - [ErrDuplicateName] - soft-unique name already in use (advisory,
//     client-side only)
//   - any other error wraps the failing gateway call; the caller may retry
//     the same operation
package manager
