package entity

import (
	"regexp"

	"github.com/windfab/towerdesk/classify"
	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/record"
	"github.com/windfab/towerdesk/validate"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+][0-9 ()-]{6,19}$`)
)

// MaterialTable is the ordered classification table mapping supplier and BOM
// item text to a material category. First match wins; keywords cover both
// English and Korean commodity terms used on wind-tower BOMs.
var MaterialTable = classify.Table{
	{Keywords: []string{"plate", "철판", "후판", "steel"}, Label: "Steel Plate"},
	{Keywords: []string{"flange", "플랜지", "forging", "단조"}, Label: "Flange"},
	{Keywords: []string{"paint", "coating", "도료", "도장"}, Label: "Paint & Coating"},
	{Keywords: []string{"bolt", "볼트", "fastener", "anchor"}, Label: "Fasteners"},
	{Keywords: []string{"weld", "용접", "wire", "flux"}, Label: "Welding Consumables"},
	{Keywords: []string{"ladder", "platform", "internal", "내부", "도어"}, Label: "Tower Internals"},
}

// supplierClassifyFields are the free-text fields concatenated for
// classification.
var supplierClassifyFields = []string{"supplier_name", "specialization", "notes"}

// ClassifySupplier returns the material category of a supplier record.
func ClassifySupplier(rec record.Record) string {
	return classify.Classify(classify.Text(rec, supplierClassifyFields), MaterialTable)
}

// SupplierConfig declares the supplier entity. The supplier name is a
// soft-unique key; specialization is a small-array field filtered by
// membership.
func SupplierConfig() manager.EntityConfig {
	return manager.EntityConfig{
		Type:      TypeSupplier,
		Table:     TableSuppliers,
		NameField: "supplier_name",
		SearchFields: []string{
			"supplier_name", "contact_person", "specialization", "region",
		},
		Rules: validate.RuleSet{
			"supplier_name": {
				Required:  true,
				MinLength: 2,
				MaxLength: 100,
				Message:   "supplier name must be 2-100 characters",
			},
			"email": {
				Pattern: emailPattern,
				Message: "email address is not valid",
			},
			"phone": {
				Pattern: phonePattern,
				Message: "phone number is not valid",
			},
		},
		Computed: []manager.ComputedField{
			{Field: "category", Derive: func(r record.Record) any {
				return ClassifySupplier(r)
			}},
		},
		Columns: []manager.Column{
			{Header: "Supplier", Field: "supplier_name"},
			{Header: "Category", Field: "category"},
			{Header: "Contact", Field: "contact_person"},
			{Header: "Phone", Field: "phone"},
			{Header: "Email", Field: "email"},
			{Header: "Region", Field: "region"},
		},
	}
}
