// Package entity declares the per-entity configuration the generic manager
// core is instantiated with: field sets, validation rules, searchable
// fields, computed fields, export columns, and the project cascade registry
// for the four dashboard entity types.
package entity

import (
	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/manager"
)

// Backend table names.
const (
	TableProjects    = "projects"
	TableSuppliers   = "suppliers"
	TableBOMItems    = "bom_items"
	TableMTOPackages = "mto_packages"
)

// Entity type names.
const (
	TypeProject    = "project"
	TypeSupplier   = "supplier"
	TypeBOMItem    = "bom_item"
	TypeMTOPackage = "mto_package"
)

// DefaultRegistry returns the relationship registry for cascade deletes:
// removing a project first removes its BOM items, then its MTO packages.
func DefaultRegistry() *manager.Registry {
	reg := manager.NewRegistry()
	reg.Register(manager.Relationship{
		ParentType:     TypeProject,
		ChildType:      TypeBOMItem,
		ChildTable:     TableBOMItems,
		ParentKeyField: "project_id",
	})
	reg.Register(manager.Relationship{
		ParentType:     TypeProject,
		ChildType:      TypeMTOPackage,
		ChildTable:     TableMTOPackages,
		ParentKeyField: "project_id",
	})
	return reg
}

// Configs returns every entity configuration keyed by entity type.
func Configs() map[string]manager.EntityConfig {
	return map[string]manager.EntityConfig{
		TypeProject:    ProjectConfig(),
		TypeSupplier:   SupplierConfig(),
		TypeBOMItem:    BOMItemConfig(),
		TypeMTOPackage: MTOPackageConfig(),
	}
}

// NewProjectManager builds the project manager with cascade deletes wired.
func NewProjectManager(gw gateway.Gateway) *manager.Manager {
	return manager.NewWithRegistry(ProjectConfig(), gw, DefaultRegistry())
}

// NewSupplierManager builds the supplier manager.
func NewSupplierManager(gw gateway.Gateway) *manager.Manager {
	return manager.New(SupplierConfig(), gw)
}

// NewBOMItemManager builds the BOM item manager.
func NewBOMItemManager(gw gateway.Gateway) *manager.Manager {
	return manager.New(BOMItemConfig(), gw)
}

// NewMTOPackageManager builds the MTO package manager.
func NewMTOPackageManager(gw gateway.Gateway) *manager.Manager {
	return manager.New(MTOPackageConfig(), gw)
}
