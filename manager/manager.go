package manager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/windfab/towerdesk/filter"
	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/record"
	"github.com/windfab/towerdesk/validate"
)

// ComputedField derives a field value from the validated input instead of
// taking it from the user (e.g., a project's display name).
type ComputedField struct {
	Field  string
	Derive func(record.Record) any
}

// Column maps a record field to an export column for tabular output.
type Column struct {
	// Header is the human-readable column name, used as the field name in
	// exported rows.
	Header string

	// Field is the record field the column reads.
	Field string

	// Format optionally reshapes the value for human consumption.
	Format func(any) any
}

// EntityConfig declares one entity type's field behavior: backend table,
// searchable fields, validation rules, computed fields, soft-unique name
// field, and export columns.
type EntityConfig struct {
	// Type is the entity type name (e.g., "project").
	Type string

	// Table is the backend table name. Defaults to Type.
	Table string

	// NameField, when set, is treated as a soft-unique key: creates are
	// rejected when the local store already holds a record with the same
	// value (case-sensitive exact match). Advisory only.
	NameField string

	// SearchFields are the fields the free-text query matches against.
	SearchFields []string

	// Rules are the static validation rules run before every create/update.
	Rules validate.RuleSet

	// Computed are derived fields applied after validation, before the
	// gateway call.
	Computed []ComputedField

	// Columns configure the tabular export transform. Empty means records
	// export as-is.
	Columns []Column
}

// validate ensures config values are usable.
func (c *EntityConfig) validate() {
	if c.Table == "" {
		c.Table = c.Type
	}
}

// Manager is the mutation controller and view driver for one entity type:
// the only component that changes the entity's record store and the only one
// that calls the gateway's write operations. A Manager owns its store
// exclusively and is driven from a single logical thread of control.
type Manager struct {
	cfg      EntityConfig
	gw       gateway.Gateway
	store    *record.Store
	registry *Registry

	state    filter.State
	render   RenderFunc
	notifier Notifier
	activity ActivityLogger
	logger   *slog.Logger
}

// New creates a Manager for one entity type over the given gateway.
func New(cfg EntityConfig, gw gateway.Gateway) *Manager {
	cfg.validate()
	return &Manager{
		cfg:   cfg,
		gw:    gw,
		store: record.NewStore(),
	}
}

// NewWithRegistry creates a Manager with a relationship registry for cascade
// deletes.
func NewWithRegistry(cfg EntityConfig, gw gateway.Gateway, registry *Registry) *Manager {
	m := New(cfg, gw)
	m.registry = registry
	return m
}

// SetRegistry sets the relationship registry for cascade deletes.
func (m *Manager) SetRegistry(registry *Registry) {
	m.registry = registry
}

// SetRenderFunc installs the presentation callback. A nil callback is
// tolerated: operations complete normally and simply render nowhere, so a
// mutation resolving after view teardown is a no-op.
func (m *Manager) SetRenderFunc(fn RenderFunc) {
	m.render = fn
}

// SetNotifier installs the best-effort notification collaborator.
func (m *Manager) SetNotifier(n Notifier) {
	m.notifier = n
}

// SetActivityLogger installs the best-effort activity collaborator.
func (m *Manager) SetActivityLogger(a ActivityLogger) {
	m.activity = a
}

// SetLogger sets the structured logger (nil uses slog.Default()).
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// Store exposes read access to the manager's record store.
func (m *Manager) Store() *record.Store {
	return m.store
}

// Config returns the entity configuration.
func (m *Manager) Config() EntityConfig {
	return m.cfg
}

// Refresh refetches the full table through the gateway, replaces the store
// contents, and re-renders. On gateway failure the store is left unchanged.
func (m *Manager) Refresh(ctx context.Context) error {
	page, err := m.gw.List(ctx, m.cfg.Table, gateway.ListParams{})
	if err != nil {
		return fmt.Errorf("list %s: %w", m.cfg.Type, err)
	}
	m.store.ReplaceAll(page.Records)
	m.renderVisible()
	return nil
}

// SetQuery replaces the free-text query and re-renders.
func (m *Manager) SetQuery(query string) {
	m.state.Query = query
	m.renderVisible()
}

// SetFilter sets a discrete exact-match filter on a field and re-renders.
func (m *Manager) SetFilter(field, value string) {
	if m.state.Discrete == nil {
		m.state.Discrete = make(map[string]string)
	}
	m.state.Discrete[field] = value
	m.renderVisible()
}

// ClearFilter removes one discrete filter and re-renders.
func (m *Manager) ClearFilter(field string) {
	delete(m.state.Discrete, field)
	m.renderVisible()
}

// ResetFilters clears the query and all discrete filters and re-renders.
func (m *Manager) ResetFilters() {
	m.state = filter.State{}
	m.renderVisible()
}

// FilterState returns the current filter state.
func (m *Manager) FilterState() filter.State {
	return m.state
}

// Visible returns the current filtered view of the store without mutating
// it.
func (m *Manager) Visible() []record.Record {
	return filter.Apply(m.store.All(), m.state, m.cfg.SearchFields)
}

func (m *Manager) renderVisible() {
	if m.render == nil {
		return
	}
	m.render(m.Visible())
}

func (m *Manager) notify(kind Kind, message string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(kind, message)
}

func (m *Manager) logActivity(action, details string) {
	if m.activity == nil {
		return
	}
	m.activity.LogActivity(m.cfg.Type, action, details)
}

func (m *Manager) log() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}
