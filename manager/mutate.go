package manager

import (
	"context"
	"fmt"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// Create validates the raw input, derives computed fields, applies the
// soft-unique name guard, and writes through the gateway. The store is only
// updated with the server-returned record after the call succeeds; a failed
// create never appears locally.
func (m *Manager) Create(ctx context.Context, input record.Record) (record.Record, error) {
	if errs := m.cfg.Rules.Validate(input); errs != nil {
		return nil, errs
	}

	derived := m.applyComputed(input, nil)

	if m.cfg.NameField != "" {
		name := fields.String(derived[m.cfg.NameField])
		if m.nameInUse(name) {
			return nil, fmt.Errorf("create %s %q: %w", m.cfg.Type, name, ErrDuplicateName)
		}
	}

	created, err := m.gw.Create(ctx, m.cfg.Table, derived)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", m.cfg.Type, err)
	}

	m.store.Upsert(created)
	m.renderVisible()
	m.notify(KindSuccess, fmt.Sprintf("%s created", m.cfg.Type))
	m.logActivity("create", created.ID())
	return created, nil
}

// Update validates the raw input and guards against stale references: if the
// identifier is no longer in the local store, the operation aborts with
// ErrStaleReference and no gateway call is issued.
func (m *Manager) Update(ctx context.Context, id string, input record.Record) (record.Record, error) {
	if errs := m.cfg.Rules.Validate(input); errs != nil {
		return nil, errs
	}

	current, ok := m.store.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("update %s %q: %w", m.cfg.Type, id, ErrStaleReference)
	}

	derived := m.applyComputed(input, current)

	updated, err := m.gw.Update(ctx, m.cfg.Table, id, derived)
	if err != nil {
		return nil, fmt.Errorf("update %s %q: %w", m.cfg.Type, id, err)
	}

	m.store.Upsert(updated)
	m.renderVisible()
	m.notify(KindSuccess, fmt.Sprintf("%s updated", m.cfg.Type))
	m.logActivity("update", id)
	return updated, nil
}

// Delete removes a record, cascading to registered child types first. Child
// types are processed in registration order; each child delete is a separate
// gateway call. If any step fails the operation aborts and no further
// deletes are issued — deletions already committed are not rolled back.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if m.registry != nil {
		if err := m.cascadeDelete(ctx, m.cfg.Type, id); err != nil {
			return err
		}
	}

	if err := m.gw.Delete(ctx, m.cfg.Table, id); err != nil {
		return fmt.Errorf("delete %s %q: %w", m.cfg.Type, id, err)
	}

	m.store.RemoveByID(id)
	m.renderVisible()
	m.notify(KindSuccess, fmt.Sprintf("%s deleted", m.cfg.Type))
	m.logActivity("delete", id)
	return nil
}

// cascadeDelete deletes all dependents of one parent record, recursing into
// grandchildren before removing each child.
func (m *Manager) cascadeDelete(ctx context.Context, parentType, parentID string) error {
	for _, rel := range m.registry.ChildrenOf(parentType) {
		page, err := m.gw.List(ctx, rel.ChildTable, gateway.ListParams{
			Filters: map[string]string{rel.ParentKeyField: parentID},
		})
		if err != nil {
			return fmt.Errorf("cascade list %s of %s %q: %w", rel.ChildType, parentType, parentID, err)
		}

		for _, child := range page.Records {
			if err := m.cascadeDelete(ctx, rel.ChildType, child.ID()); err != nil {
				return err
			}
			if err := m.gw.Delete(ctx, rel.ChildTable, child.ID()); err != nil {
				return fmt.Errorf("cascade delete %s %q: %w", rel.ChildType, child.ID(), err)
			}
		}

		m.log().Info("cascade step completed",
			"parent", parentType,
			"parentID", parentID,
			"childType", rel.ChildType,
			"deleted", len(page.Records),
		)
	}
	return nil
}

// applyComputed lays derived fields over a copy of the input. Derivation
// reads the current record overlaid with the input, so a partial update that
// omits a source field still recomputes from the stored value instead of
// from a blank.
func (m *Manager) applyComputed(input, current record.Record) record.Record {
	out := input.Clone()
	if out == nil {
		out = record.Record{}
	}
	view := current.Merge(out)
	for _, cf := range m.cfg.Computed {
		v := cf.Derive(view)
		out[cf.Field] = v
		view[cf.Field] = v
	}
	return out
}

// nameInUse checks the local store for a case-sensitive exact match on the
// soft-unique name field.
func (m *Manager) nameInUse(name string) bool {
	if name == "" {
		return false
	}
	for _, rec := range m.store.All() {
		if fields.String(rec[m.cfg.NameField]) == name {
			return true
		}
	}
	return false
}
