package entity_test

import (
	"context"
	"testing"

	"github.com/windfab/towerdesk/entity"
	"github.com/windfab/towerdesk/gateway/memory"
	"github.com/windfab/towerdesk/record"
	"github.com/windfab/towerdesk/validate"
)

func TestProjectConfig_DerivesProjectName(t *testing.T) {
	gw := memory.New()
	m := entity.NewProjectManager(gw)

	created, err := m.Create(context.Background(), record.Record{
		"customer_name": "Acme",
		"tower_model":   "TM-100",
		"tower_count":   float64(12),
		"capacity_mw":   float64(4.2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created["project_name"] != "Acme-TM-100" {
		t.Errorf("expected 'Acme-TM-100', got %v", created["project_name"])
	}
}

func TestProjectConfig_Rules(t *testing.T) {
	rules := entity.ProjectConfig().Rules

	tests := []struct {
		name     string
		input    record.Record
		badField string
	}{
		{"missing customer", record.Record{"tower_model": "TM-100"}, "customer_name"},
		{"short customer", record.Record{"customer_name": "A", "tower_model": "TM-100"}, "customer_name"},
		{"bad model code", record.Record{"customer_name": "Acme", "tower_model": "TM 100!"}, "tower_model"},
		{"zero tower count", record.Record{"customer_name": "Acme", "tower_model": "TM-100", "tower_count": float64(0)}, "tower_count"},
		{"capacity out of range", record.Record{"customer_name": "Acme", "tower_model": "TM-100", "capacity_mw": float64(99)}, "capacity_mw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := rules.Validate(tt.input)
			if errs == nil {
				t.Fatal("expected validation failure")
			}
			if _, ok := errs.Fields[tt.badField]; !ok {
				t.Errorf("expected violation on %q, got %v", tt.badField, errs.Fields)
			}
		})
	}
}

func TestSupplierConfig_Rules(t *testing.T) {
	rules := entity.SupplierConfig().Rules

	if errs := rules.Validate(record.Record{
		"supplier_name": "PosCo",
		"email":         "sales@posco.example.com",
		"phone":         "+82 2 3457 0114",
	}); errs != nil {
		t.Fatalf("expected valid supplier, got %v", errs)
	}

	errs := rules.Validate(record.Record{
		"supplier_name": "PosCo",
		"email":         "not-an-email",
		"phone":         "call me",
	})
	if errs == nil {
		t.Fatal("expected validation failure")
	}
	for _, field := range []string{"email", "phone"} {
		if _, ok := errs.Fields[field]; !ok {
			t.Errorf("expected violation on %q, got %v", field, errs.Fields)
		}
	}

	// Optional contact fields may be omitted entirely.
	if errs := rules.Validate(record.Record{"supplier_name": "KCC"}); errs != nil {
		t.Errorf("expected optional fields to be skippable, got %v", errs)
	}
}

func TestClassifySupplier(t *testing.T) {
	tests := []struct {
		name     string
		rec      record.Record
		expected string
	}{
		{
			"korean plate supplier",
			record.Record{"supplier_name": "포스코", "specialization": []string{"철판"}},
			"Steel Plate",
		},
		{
			"flange forging",
			record.Record{"supplier_name": "Taewoong", "specialization": []string{"flange forging"}},
			"Flange",
		},
		{
			"coating vendor by notes",
			record.Record{"supplier_name": "KCC", "notes": "marine epoxy coating systems"},
			"Paint & Coating",
		},
		{
			"unknown vendor",
			record.Record{"supplier_name": "Daehan Logistics"},
			"Uncategorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.ClassifySupplier(tt.rec); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClassifyBOMItem(t *testing.T) {
	rec := record.Record{"item_name": "Door frame", "material": "S355 plate", "spec": "20t"}
	if got := entity.ClassifyBOMItem(rec); got != "Steel Plate" {
		t.Errorf("expected 'Steel Plate', got %q", got)
	}
}

func TestSupplierCreate_ComputesCategory(t *testing.T) {
	gw := memory.New()
	m := entity.NewSupplierManager(gw)

	created, err := m.Create(context.Background(), record.Record{
		"supplier_name":  "Hyundai Steel",
		"specialization": []string{"후판"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created["category"] != "Steel Plate" {
		t.Errorf("expected computed category, got %v", created["category"])
	}
}

func TestSupplierUpdate_PartialInputKeepsCategory(t *testing.T) {
	gw := memory.New()
	m := entity.NewSupplierManager(gw)

	created, err := m.Create(context.Background(), record.Record{
		"supplier_name":  "KCC",
		"specialization": []string{"도료"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created["category"] != "Paint & Coating" {
		t.Fatalf("expected 'Paint & Coating', got %v", created["category"])
	}

	// Updating only contact fields must not reclassify from a blank view:
	// the stored specialization still drives the category.
	updated, err := m.Update(context.Background(), created.ID(), record.Record{
		"supplier_name": "KCC",
		"region":        "Seoul",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated["category"] != "Paint & Coating" {
		t.Errorf("expected category preserved across partial update, got %v", updated["category"])
	}
}

func TestBOMItemConfig_QuantityRequiredAndPositive(t *testing.T) {
	rules := entity.BOMItemConfig().Rules

	errs := rules.Validate(record.Record{
		"project_id": "p1",
		"item_name":  "Shell course 1",
		"quantity":   float64(-2),
	})
	if errs == nil {
		t.Fatal("expected validation failure")
	}
	if _, ok := errs.Fields["quantity"]; !ok {
		t.Errorf("expected violation on quantity, got %v", errs.Fields)
	}
}

func TestMTOPackageConfig_PackageNoPattern(t *testing.T) {
	rules := entity.MTOPackageConfig().Rules

	if errs := rules.Validate(record.Record{
		"project_id": "p1",
		"package_no": "MTO-2026/01",
	}); errs != nil {
		t.Fatalf("expected valid package number, got %v", errs)
	}
	if errs := rules.Validate(record.Record{
		"project_id": "p1",
		"package_no": "MTO 01!",
	}); errs == nil {
		t.Fatal("expected pattern violation")
	}
}

func TestConfigs_CoversAllEntityTypes(t *testing.T) {
	cfgs := entity.Configs()
	for _, typ := range []string{
		entity.TypeProject, entity.TypeSupplier, entity.TypeBOMItem, entity.TypeMTOPackage,
	} {
		cfg, ok := cfgs[typ]
		if !ok {
			t.Errorf("missing config for %q", typ)
			continue
		}
		if cfg.Type != typ {
			t.Errorf("config %q has mismatched type %q", typ, cfg.Type)
		}
		if cfg.Table == "" {
			t.Errorf("config %q has no table", typ)
		}
	}
}

func TestDefaultRegistry_CascadeOrder(t *testing.T) {
	children := entity.DefaultRegistry().ChildrenOf(entity.TypeProject)
	if len(children) != 2 {
		t.Fatalf("expected 2 child relationships, got %d", len(children))
	}
	if children[0].ChildTable != entity.TableBOMItems {
		t.Errorf("expected BOM items deleted first, got %q", children[0].ChildTable)
	}
	if children[1].ChildTable != entity.TableMTOPackages {
		t.Errorf("expected MTO packages deleted second, got %q", children[1].ChildTable)
	}
}

// Regression against silently loosening the rule evaluator contract: an
// empty optional field must skip pattern checks.
func TestSupplierEmailRule_EmptySkips(t *testing.T) {
	rule := entity.SupplierConfig().Rules["email"]
	if !validate.Evaluate("", rule) {
		t.Error("expected empty optional email to pass")
	}
}
