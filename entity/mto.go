package entity

import (
	"regexp"

	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/validate"
)

var packageNoPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/_-]*$`)

// MTOPackageConfig declares a material-take-off package belonging to one
// project.
func MTOPackageConfig() manager.EntityConfig {
	return manager.EntityConfig{
		Type:  TypeMTOPackage,
		Table: TableMTOPackages,
		SearchFields: []string{
			"package_no", "description", "status",
		},
		Rules: validate.RuleSet{
			"project_id": {
				Required: true,
				Message:  "MTO package must reference a project",
			},
			"package_no": {
				Required: true,
				Pattern:  packageNoPattern,
				Message:  "package number must be a code (letters, digits, / _ -)",
			},
			"description": {
				MaxLength: 500,
				Message:   "description is limited to 500 characters",
			},
		},
		Columns: []manager.Column{
			{Header: "Package No", Field: "package_no"},
			{Header: "Description", Field: "description"},
			{Header: "Status", Field: "status"},
		},
	}
}
