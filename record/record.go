// Package record provides the in-memory record model and the per-entity
// record store that backs every entity manager view.
package record

// IDField is the identifier field name every record carries.
const IDField = "id"

// Record is one business entity instance (project, supplier, BOM line item,
// MTO package) as a mapping from field name to a scalar or small-array value.
// Records are schema-free beyond the fields an entity's validation rules and
// search configuration reference.
type Record map[string]any

// ID returns the record's identifier, or the empty string if unset or not a
// string.
func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Clone returns a shallow copy of the record. Field values are shared;
// callers that mutate array fields must copy them first.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with the fields of other laid over it.
// The receiver is not modified.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	if out == nil {
		out = make(Record, len(other))
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
