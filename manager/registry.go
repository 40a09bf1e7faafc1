package manager

// Relationship defines a parent-child dependency for cascade deletes.
type Relationship struct {
	// ParentType is the parent entity type (e.g., "project").
	ParentType string

	// ChildType is the child entity type (e.g., "bom_item").
	ChildType string

	// ChildTable is the backend table holding the child records.
	ChildTable string

	// ParentKeyField is the child field referencing the parent's identifier
	// (e.g., "project_id").
	ParentKeyField string
}

// Registry holds all known entity relationships. Deleting a parent cascades
// to every registered child type, in registration order.
type Registry struct {
	relationships []Relationship
	byParent      map[string][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		relationships: []Relationship{},
		byParent:      make(map[string][]Relationship),
	}
}

// Register adds a relationship to the registry. Registration order fixes the
// cascade order for a parent with multiple child types.
func (r *Registry) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byParent[rel.ParentType] = append(r.byParent[rel.ParentType], rel)
}

// ChildrenOf returns all child relationships for a given parent type.
func (r *Registry) ChildrenOf(parentType string) []Relationship {
	return r.byParent[parentType]
}

// AllRelationships returns all registered relationships.
func (r *Registry) AllRelationships() []Relationship {
	return r.relationships
}

// HasChildren returns true if the parent type has any registered child
// relationships.
func (r *Registry) HasChildren(parentType string) bool {
	return len(r.byParent[parentType]) > 0
}
