package entity

import (
	"github.com/windfab/towerdesk/classify"
	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/record"
	"github.com/windfab/towerdesk/validate"
)

// bomClassifyFields are the free-text fields concatenated to classify a BOM
// line item into a material category.
var bomClassifyFields = []string{"item_name", "material", "spec"}

// ClassifyBOMItem returns the material category of a BOM line item.
func ClassifyBOMItem(rec record.Record) string {
	return classify.Classify(classify.Text(rec, bomClassifyFields), MaterialTable)
}

// BOMItemConfig declares a bill-of-materials line item belonging to one
// project.
func BOMItemConfig() manager.EntityConfig {
	return manager.EntityConfig{
		Type:  TypeBOMItem,
		Table: TableBOMItems,
		SearchFields: []string{
			"item_name", "material", "spec", "category",
		},
		Rules: validate.RuleSet{
			"project_id": {
				Required: true,
				Message:  "BOM item must reference a project",
			},
			"item_name": {
				Required:  true,
				MaxLength: 200,
				Message:   "item name is required (200 characters max)",
			},
			"quantity": {
				Required: true,
				Numeric:  true,
				Min:      floatPtr(0.001),
				Message:  "quantity must be a positive number",
			},
			"unit_weight_kg": {
				Numeric: true,
				Min:     floatPtr(0),
				Message: "unit weight must be a non-negative number",
			},
		},
		Computed: []manager.ComputedField{
			{Field: "category", Derive: func(r record.Record) any {
				return ClassifyBOMItem(r)
			}},
		},
		Columns: []manager.Column{
			{Header: "Item", Field: "item_name"},
			{Header: "Material", Field: "material"},
			{Header: "Spec", Field: "spec"},
			{Header: "Category", Field: "category"},
			{Header: "Qty", Field: "quantity"},
			{Header: "Unit", Field: "unit"},
			{Header: "Unit Weight (kg)", Field: "unit_weight_kg"},
		},
	}
}
