// Package jsonedit is the Composition Root for the jsonedit tool.
//
// jsonedit edits files holding an array of uniform objects: it deletes,
// renames and adds fields, slices ranges, extracts ids or field values,
// filters records by id and reports duplicate ids.
//
// Each run loads a whole file, applies the requested steps to the
// in-memory array and writes the result once. The building blocks live in:
//
//   - pkg/core: the JSON value model (ordered records, exact number equality).
//   - pkg/ops: the array transforms themselves, as pure functions.
//   - pkg/adapters/fs: reading and writing JSON, JSONC and YAML files.
//   - pkg/editor: plans, step ordering, reporting and dry runs.
//
// Usage:
//
//	ed := jsonedit.New(jsonedit.WithIndent(2))
//	_, err := ed.Run(ctx, []string{"people.json"}, jsonedit.Plan{Delete: "tmp"})
package jsonedit
