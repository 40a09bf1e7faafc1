package record

// Store holds the authoritative local copy of one entity type's records,
// ordered by most recent fetch, unique by identifier. The store performs no
// I/O and no validation; mutations are driven by the entity manager.
//
// A Store is owned by exactly one entity manager and is not safe for
// concurrent use.
type Store struct {
	order []string
	byID  map[string]Record
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]Record),
	}
}

// ReplaceAll atomically replaces the entire collection, preserving the input
// order. Duplicate identifiers in the input collapse to the first position,
// last value wins.
func (s *Store) ReplaceAll(records []Record) {
	s.order = s.order[:0]
	s.byID = make(map[string]Record, len(records))
	for _, rec := range records {
		id := rec.ID()
		if _, seen := s.byID[id]; !seen {
			s.order = append(s.order, id)
		}
		s.byID[id] = rec
	}
}

// Upsert inserts the record if its identifier is absent, else replaces it in
// place, preserving the existing entry's position.
func (s *Store) Upsert(rec Record) {
	id := rec.ID()
	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = rec
}

// RemoveByID removes the record with the given identifier. Removing an
// absent identifier is a no-op, not an error.
func (s *Store) RemoveByID(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// FindByID returns the record with the given identifier. The second return
// value reports whether it was found; callers must handle absence, since the
// record may have been deleted by another view action.
func (s *Store) FindByID(id string) (Record, bool) {
	rec, ok := s.byID[id]
	return rec, ok
}

// All returns the records in store order. The returned slice is a copy; the
// records themselves are shared.
func (s *Store) All() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.order)
}
