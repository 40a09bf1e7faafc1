package entity

import (
	"regexp"

	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/record"
	"github.com/windfab/towerdesk/validate"
)

var towerModelPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func floatPtr(f float64) *float64 { return &f }

// ProjectConfig declares the wind-tower project entity. The project display
// name is derived from customer and tower model, never user-entered, and is
// treated as a soft-unique key.
func ProjectConfig() manager.EntityConfig {
	return manager.EntityConfig{
		Type:      TypeProject,
		Table:     TableProjects,
		NameField: "project_name",
		SearchFields: []string{
			"project_name", "customer_name", "tower_model", "status",
		},
		Rules: validate.RuleSet{
			"customer_name": {
				Required:  true,
				MinLength: 2,
				MaxLength: 100,
				Message:   "customer name must be 2-100 characters",
			},
			"tower_model": {
				Required: true,
				Pattern:  towerModelPattern,
				Message:  "tower model must be a model code (letters, digits, . _ -)",
			},
			"tower_count": {
				Numeric: true,
				Min:     floatPtr(1),
				Message: "tower count must be a number of at least 1",
			},
			"capacity_mw": {
				Numeric: true,
				Min:     floatPtr(0.1),
				Max:     floatPtr(30),
				Message: "capacity must be between 0.1 and 30 MW",
			},
		},
		Computed: []manager.ComputedField{
			{Field: "project_name", Derive: deriveProjectName},
		},
		Columns: []manager.Column{
			{Header: "Project", Field: "project_name"},
			{Header: "Customer", Field: "customer_name"},
			{Header: "Tower Model", Field: "tower_model"},
			{Header: "Towers", Field: "tower_count"},
			{Header: "Capacity (MW)", Field: "capacity_mw"},
			{Header: "Status", Field: "status"},
		},
	}
}

// deriveProjectName concatenates customer name and tower model.
func deriveProjectName(r record.Record) any {
	return fields.String(r["customer_name"]) + "-" + fields.String(r["tower_model"])
}
