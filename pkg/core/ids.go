package core

// IDField is the reserved field holding a record's identifier.
const IDField = "id"

// ID returns the record's id and whether the record has one.
func (r *Record) ID() (Value, bool) {
	return r.Get(IDField)
}

// IDSet is a set of ids compared by JSON value equality.
type IDSet struct {
	members map[string]Value
}

// NewIDSet builds a set from the given ids. Duplicates collapse.
func NewIDSet(ids ...Value) *IDSet {
	s := &IDSet{members: make(map[string]Value, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// IDSetFromValue builds a set from a flat JSON array of ids.
func IDSetFromValue(v Value) (*IDSet, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, &ShapeError{Err: ErrNotIDList, Got: v.Kind(), Index: -1}
	}
	for i, item := range items {
		if k := item.Kind(); k == KindArray || k == KindObject {
			return nil, &ShapeError{Err: ErrNotIDList, Got: k, Index: i}
		}
	}
	return NewIDSet(items...), nil
}

// Add inserts an id.
func (s *IDSet) Add(id Value) {
	s.members[id.Key()] = id
}

// Merge adds every member of o.
func (s *IDSet) Merge(o *IDSet) {
	if o == nil {
		return
	}
	for k, v := range o.members {
		s.members[k] = v
	}
}

// Contains reports whether id is a member.
func (s *IDSet) Contains(id Value) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[id.Key()]
	return ok
}

// Len returns the number of distinct ids.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}
