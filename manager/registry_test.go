package manager_test

import (
	"testing"

	"github.com/windfab/towerdesk/manager"
)

func TestRegistry_ChildrenOfPreservesRegistrationOrder(t *testing.T) {
	r := manager.NewRegistry()

	r.Register(manager.Relationship{
		ParentType:     "project",
		ChildType:      "bom_item",
		ChildTable:     "bom_items",
		ParentKeyField: "project_id",
	})
	r.Register(manager.Relationship{
		ParentType:     "project",
		ChildType:      "mto_package",
		ChildTable:     "mto_packages",
		ParentKeyField: "project_id",
	})

	children := r.ChildrenOf("project")
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].ChildType != "bom_item" || children[1].ChildType != "mto_package" {
		t.Errorf("expected registration order preserved, got %v", children)
	}
}

func TestRegistry_HasChildren(t *testing.T) {
	r := manager.NewRegistry()
	r.Register(manager.Relationship{
		ParentType:     "project",
		ChildType:      "bom_item",
		ChildTable:     "bom_items",
		ParentKeyField: "project_id",
	})

	if !r.HasChildren("project") {
		t.Error("expected project to have children")
	}
	if r.HasChildren("bom_item") {
		t.Error("expected bom_item to have no children")
	}
}

func TestRegistry_AllRelationships(t *testing.T) {
	r := manager.NewRegistry()
	if len(r.AllRelationships()) != 0 {
		t.Error("expected empty registry")
	}

	r.Register(manager.Relationship{ParentType: "project", ChildType: "bom_item"})
	if len(r.AllRelationships()) != 1 {
		t.Errorf("expected 1 relationship, got %d", len(r.AllRelationships()))
	}
}
