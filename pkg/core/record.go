package core

import (
	"fmt"
	"slices"
)

// Record is one element of a Document: a mapping from field name to value
// that remembers the order in which keys were inserted.
type Record struct {
	keys []string
	vals map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// RecordOf builds a record from alternating key/value pairs.
// It is meant for tests and examples and panics on an odd number of
// arguments or a key that is not a string.
func RecordOf(pairs ...any) *Record {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("core.RecordOf: odd number of arguments (%d)", len(pairs)))
	}
	r := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("core.RecordOf: key %d is %T, not string", i/2, pairs[i]))
		}
		r.Set(k, ValueOf(pairs[i+1]))
	}
	return r
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.keys) }

// Keys returns the field names in order. The slice must not be modified.
func (r *Record) Keys() []string { return r.keys }

// SortedKeys returns a sorted copy of the field names.
func (r *Record) SortedKeys() []string {
	keys := slices.Clone(r.keys)
	slices.Sort(keys)
	return keys
}

// Has reports whether the field is present, even when its value is null.
func (r *Record) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Get returns the value of a field and whether it is present.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Set assigns a field. An existing field keeps its position; a new field
// is appended.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Delete removes a field and reports whether it was present.
func (r *Record) Delete(key string) bool {
	if _, ok := r.vals[key]; !ok {
		return false
	}
	delete(r.vals, key)
	if i := slices.Index(r.keys, key); i >= 0 {
		r.keys = slices.Delete(r.keys, i, i+1)
	}
	return true
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := &Record{
		keys: slices.Clone(r.keys),
		vals: make(map[string]Value, len(r.vals)),
	}
	for k, v := range r.vals {
		c.vals[k] = v.Clone()
	}
	return c
}

// Equal compares the set of (key, value) pairs, ignoring key order.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.vals) != len(o.vals) {
		return false
	}
	for k, v := range r.vals {
		ov, ok := o.vals[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Document is the ordered array of records loaded from one file.
type Document []*Record

// Clone returns a deep copy of every record.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for i, r := range d {
		out[i] = r.Clone()
	}
	return out
}

// Value wraps the document as a JSON array value.
func (d Document) Value() Value {
	items := make([]Value, len(d))
	for i, r := range d {
		items[i] = Object(r)
	}
	return Array(items...)
}

// DocumentFromValue converts a decoded value into a Document.
// The value must be an array whose elements are all objects.
func DocumentFromValue(v Value) (Document, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, &ShapeError{Err: ErrNotArray, Got: v.Kind(), Index: -1}
	}
	doc := make(Document, 0, len(items))
	for i, item := range items {
		rec, ok := item.AsRecord()
		if !ok {
			return nil, &ShapeError{Err: ErrNotObject, Got: item.Kind(), Index: i}
		}
		doc = append(doc, rec)
	}
	return doc, nil
}
