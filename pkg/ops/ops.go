// Package ops implements the array transforms applied to a Document.
//
// Every function is a pure in-memory pass over the records. Functions that
// return a Document either mutate the records they were given (field edits)
// or build a new slice sharing the input records (range and id filters).
// Record order is always preserved.
package ops

import (
	"slices"

	"github.com/aretw0/jsonedit/pkg/core"
)

// DeleteField removes field from every record that has it.
func DeleteField(doc core.Document, field string) core.Document {
	for _, rec := range doc {
		rec.Delete(field)
	}
	return doc
}

// RenameField moves the value of oldName to newName on every record that
// has oldName. When newName is new to the record it is appended; when it
// already exists it is overwritten in place. Renaming a field to itself is
// a no-op.
func RenameField(doc core.Document, oldName, newName string) core.Document {
	if oldName == newName {
		return doc
	}
	for _, rec := range doc {
		v, ok := rec.Get(oldName)
		if !ok {
			continue
		}
		rec.Delete(oldName)
		rec.Set(newName, v)
	}
	return doc
}

// AddField sets field to a copy of v on every record, overwriting any
// existing value.
func AddField(doc core.Document, field string, v core.Value) core.Document {
	for _, rec := range doc {
		rec.Set(field, v.Clone())
	}
	return doc
}

// ExtractRange returns records start..end inclusive. Indices never fail:
// they are clamped into range and swapped when reversed.
func ExtractRange(doc core.Document, start, end int) core.Document {
	n := len(doc)
	if n == 0 {
		return core.Document{}
	}
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	if start > end {
		start, end = end, start
	}
	start = min(max(start, 0), n-1)
	end = min(max(end, 0), n-1)
	return slices.Clone(doc[start : end+1])
}

// ExtractIDs returns the id of every record that has one, in order.
func ExtractIDs(doc core.Document) []core.Value {
	ids := make([]core.Value, 0, len(doc))
	for _, rec := range doc {
		if id, ok := rec.ID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ExtractField returns the values of field, sorted ascending.
// Values that cannot be ordered against each other (mixed kinds, objects)
// yield core.ErrUnorderable.
func ExtractField(doc core.Document, field string) ([]core.Value, error) {
	values := make([]core.Value, 0, len(doc))
	for _, rec := range doc {
		if v, ok := rec.Get(field); ok {
			values = append(values, v)
		}
	}
	for i, v := range values {
		if k := v.Kind(); k == core.KindObject || k != values[0].Kind() {
			return nil, &core.ShapeError{Err: core.ErrUnorderable, Got: k, Index: i}
		}
	}

	var sortErr error
	slices.SortStableFunc(values, func(a, b core.Value) int {
		c, err := core.Compare(a, b)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return values, nil
}

// RemoveByIDs drops records whose id is in ids. Records without an id are
// kept. It returns the remaining records and how many were removed.
func RemoveByIDs(doc core.Document, ids *core.IDSet) (core.Document, int) {
	kept := make(core.Document, 0, len(doc))
	for _, rec := range doc {
		if id, ok := rec.ID(); ok && ids.Contains(id) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(doc) - len(kept)
}

// KeepByIDs keeps only records whose id is in ids. Records without an id
// are dropped. It returns the kept records and their count.
func KeepByIDs(doc core.Document, ids *core.IDSet) (core.Document, int) {
	kept := make(core.Document, 0, len(doc))
	for _, rec := range doc {
		if id, ok := rec.ID(); ok && ids.Contains(id) {
			kept = append(kept, rec)
		}
	}
	return kept, len(kept)
}

// Count returns the number of records.
func Count(doc core.Document) int {
	return len(doc)
}
