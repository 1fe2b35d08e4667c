package ops

import "github.com/aretw0/jsonedit/pkg/core"

// Match is one record sharing an id with another, with its position in the
// original document.
type Match struct {
	Index  int
	Record *core.Record
}

// DuplicateGroup holds every record carrying the same id.
type DuplicateGroup struct {
	ID      core.Value
	Matches []Match
}

// Duplicates lists duplicate groups in order of each id's first appearance.
type Duplicates []DuplicateGroup

// Lookup returns the group for id, if any.
func (d Duplicates) Lookup(id core.Value) (DuplicateGroup, bool) {
	for _, g := range d {
		if g.ID.Equal(id) {
			return g, true
		}
	}
	return DuplicateGroup{}, false
}

// Indices returns the original positions of the group's records.
func (g DuplicateGroup) Indices() []int {
	out := make([]int, len(g.Matches))
	for i, m := range g.Matches {
		out[i] = m.Index
	}
	return out
}

// FindDuplicateIDs groups records by id and keeps the groups with two or
// more members. Records without an id are ignored. The second result is the
// total number of records across all groups.
func FindDuplicateIDs(doc core.Document) (Duplicates, int) {
	var order []string
	groups := make(map[string]*DuplicateGroup)
	for i, rec := range doc {
		id, ok := rec.ID()
		if !ok {
			continue
		}
		key := id.Key()
		g, seen := groups[key]
		if !seen {
			g = &DuplicateGroup{ID: id}
			groups[key] = g
			order = append(order, key)
		}
		g.Matches = append(g.Matches, Match{Index: i, Record: rec})
	}

	var dups Duplicates
	total := 0
	for _, key := range order {
		g := groups[key]
		if len(g.Matches) < 2 {
			continue
		}
		dups = append(dups, *g)
		total += len(g.Matches)
	}
	return dups, total
}

// Value renders the groups as
// [{"id": …, "count": n, "objects": [{"index": i, "data": {…}}]}].
func (d Duplicates) Value() core.Value {
	items := make([]core.Value, 0, len(d))
	for _, g := range d {
		objects := make([]core.Value, 0, len(g.Matches))
		for _, m := range g.Matches {
			entry := core.NewRecord()
			entry.Set("index", core.Int(int64(m.Index)))
			entry.Set("data", core.Object(m.Record))
			objects = append(objects, core.Object(entry))
		}
		group := core.NewRecord()
		group.Set("id", g.ID)
		group.Set("count", core.Int(int64(len(g.Matches))))
		group.Set("objects", core.Array(objects...))
		items = append(items, core.Object(group))
	}
	return core.Array(items...)
}
