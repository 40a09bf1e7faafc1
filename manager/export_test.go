package manager_test

import (
	"fmt"
	"testing"

	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/record"
)

func TestManager_ToTabularRows(t *testing.T) {
	cfg := manager.EntityConfig{
		Type: "project",
		Columns: []manager.Column{
			{Header: "Project", Field: "project_name"},
			{Header: "Capacity (MW)", Field: "capacity_mw", Format: func(v any) any {
				return fmt.Sprintf("%.1f", v.(float64))
			}},
		},
	}
	m := manager.New(cfg, newFakeGateway())
	m.Store().Upsert(record.Record{"id": "p1", "project_name": "Acme-TM-100", "capacity_mw": 3.0})
	m.Store().Upsert(record.Record{"id": "p2", "project_name": "Borealis-TM-80", "capacity_mw": 2.5})

	rows := m.ToTabularRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Project"] != "Acme-TM-100" {
		t.Errorf("expected renamed field, got %v", rows[0])
	}
	if rows[1]["Capacity (MW)"] != "2.5" {
		t.Errorf("expected formatted capacity, got %v", rows[1]["Capacity (MW)"])
	}
	if _, ok := rows[0]["id"]; ok {
		t.Error("expected unconfigured fields to be dropped")
	}
}

func TestManager_ToTabularRows_NoColumnsPassesThrough(t *testing.T) {
	m := manager.New(manager.EntityConfig{Type: "supplier"}, newFakeGateway())
	m.Store().Upsert(record.Record{"id": "s1", "supplier_name": "PosCo"})

	rows := m.ToTabularRows()
	if len(rows) != 1 || rows[0]["supplier_name"] != "PosCo" {
		t.Fatalf("expected passthrough row, got %v", rows)
	}

	// Rows are copies; mutating one must not touch the store.
	rows[0]["supplier_name"] = "tampered"
	stored, _ := m.Store().FindByID("s1")
	if stored["supplier_name"] != "PosCo" {
		t.Errorf("export row mutation leaked into store: %v", stored)
	}
}
