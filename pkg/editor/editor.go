// Package editor runs a Plan against one or more input files.
//
// Each input goes through a single load, transform and save cycle. Every
// step of the plan runs on the in-memory document first. Writes start only
// after every input has been processed, so a failing step never leaves a
// half-edited file behind. Each file is replaced atomically, but writes to
// several files are not a transaction: if one write fails, the files
// written before it keep their new content.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/aretw0/jsonedit/pkg/ops"
)

// Store is the storage the editor reads from and writes to.
type Store interface {
	Read(path string) (core.Value, error)
	LoadDocument(path string) (core.Document, error)
	LoadIDs(path string) (*core.IDSet, error)
	Encode(path string, v core.Value) ([]byte, error)
	Write(path string, v core.Value) error
}

// Write is a pending file write.
type Write struct {
	Path  string
	Value core.Value
}

// Result collects what the plan produced for one input.
type Result struct {
	Input string

	Count          int
	Duplicates     ops.Duplicates
	DuplicateCount int
	Extracted      core.Document
	IDs            []core.Value
	FieldValues    []core.Value
	Removed        int
	Kept           int

	// Document is the working document after every step.
	Document core.Document
	Writes   []Write

	messages []string
}

// Messages returns the human readable summary lines.
func (r *Result) Messages() []string { return r.messages }

func (r *Result) say(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// Editor applies plans to files.
type Editor struct {
	store  Store
	logger *slog.Logger
	out    io.Writer
}

// New creates an Editor. A nil logger discards logs and a nil out writes
// reports to stdout.
func New(store Store, logger *slog.Logger, out io.Writer) *Editor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out == nil {
		out = os.Stdout
	}
	return &Editor{store: store, logger: logger, out: out}
}

// Run validates the plan, applies it to every input, writes the results
// and prints the summary. Writes start only after every input has been
// processed; the first failed write stops the run.
func (e *Editor) Run(ctx context.Context, inputs []string, plan Plan) ([]*Result, error) {
	if err := plan.Validate(inputs); err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(inputs))
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := e.Apply(input, plan)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	for _, res := range results {
		for _, w := range res.Writes {
			if plan.DryRun {
				if err := e.preview(w); err != nil {
					return nil, err
				}
				continue
			}
			if err := e.store.Write(w.Path, w.Value); err != nil {
				return nil, err
			}
		}
	}

	for _, res := range results {
		for _, msg := range res.messages {
			if len(results) > 1 {
				msg = res.Input + ": " + msg
			}
			fmt.Fprintln(e.out, msg)
		}
	}
	return results, nil
}

// Apply runs the plan against one input without writing anything. The
// returned Result lists the writes the plan calls for.
func (e *Editor) Apply(input string, plan Plan) (*Result, error) {
	doc, err := e.store.LoadDocument(input)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded document", "path", input, "records", len(doc))

	res := &Result{Input: input}

	if plan.Count {
		res.Count = ops.Count(doc)
		res.say("Total objects in %s: %d", input, res.Count)
	}

	if plan.FindDuplicates {
		res.Duplicates, res.DuplicateCount = ops.FindDuplicateIDs(doc)
		if plan.Output != "" {
			// Later edits mutate records in place; snapshot the report now.
			res.Writes = append(res.Writes, Write{Path: plan.Output, Value: res.Duplicates.Value().Clone()})
		}
		reportDuplicates(res, plan.Output)
	}

	if plan.Delete != "" {
		doc = ops.DeleteField(doc, plan.Delete)
		res.say("Deleted field '%s' from all objects", plan.Delete)
	}

	if plan.Rename != nil {
		doc = ops.RenameField(doc, plan.Rename.From, plan.Rename.To)
		res.say("Renamed field '%s' to '%s' in all objects", plan.Rename.From, plan.Rename.To)
	}

	if plan.Add != nil {
		doc = ops.AddField(doc, plan.Add.Name, plan.Add.Value)
		res.say("Added field '%s' with value '%s' to all objects", plan.Add.Name, display(plan.Add.Value))
	}

	if plan.Range != nil {
		res.Extracted = ops.ExtractRange(doc, plan.Range.Start, plan.Range.End)
		res.Writes = append(res.Writes, Write{Path: plan.Output, Value: res.Extracted.Value()})
		res.say("Extracted %d objects (from position %d to %d) to '%s'",
			len(res.Extracted), plan.Range.Start, plan.Range.End, plan.Output)
	}

	if plan.ExtractIDs {
		res.IDs = ops.ExtractIDs(doc)
		if plan.Output != "" {
			res.Writes = append(res.Writes, Write{Path: plan.Output, Value: core.Array(res.IDs...)})
			res.say("Extracted %d IDs to '%s'", len(res.IDs), plan.Output)
		} else {
			res.say("Extracted IDs: %s", core.Array(res.IDs...))
		}
	}

	if plan.ExtractField != "" {
		values, err := ops.ExtractField(doc, plan.ExtractField)
		if err != nil {
			return nil, fmt.Errorf("%s: field '%s': %w", input, plan.ExtractField, err)
		}
		res.FieldValues = values
		if plan.Output != "" {
			res.Writes = append(res.Writes, Write{Path: plan.Output, Value: core.Array(values...)})
			res.say("Extracted %d values of field '%s' to '%s'", len(values), plan.ExtractField, plan.Output)
		} else {
			res.say("Extracted values of field '%s': %s", plan.ExtractField, core.Array(values...))
		}
	}

	if plan.RemoveIDs != nil {
		ids, err := e.resolveIDs(*plan.RemoveIDs)
		if err != nil {
			return nil, err
		}
		doc, res.Removed = ops.RemoveByIDs(doc, ids)
		if res.Removed > 0 {
			res.say("Removed %d objects with matching IDs, %d objects remaining", res.Removed, len(doc))
		} else {
			res.say("No objects were removed, no matching IDs found")
		}
	}

	if plan.KeepIDs != nil {
		ids, err := e.resolveIDs(*plan.KeepIDs)
		if err != nil {
			return nil, err
		}
		before := len(doc)
		doc, res.Kept = ops.KeepByIDs(doc, ids)
		if res.Kept > 0 {
			res.say("Kept %d objects with matching IDs, removed %d objects", res.Kept, before-res.Kept)
		} else {
			res.say("No objects were kept, no matching IDs found")
		}
	}

	res.Document = doc
	if plan.Mutates() {
		dest := input
		if plan.Output != "" {
			dest = plan.Output
		}
		res.Writes = append(res.Writes, Write{Path: dest, Value: doc.Value()})
	}

	e.logger.Debug("applied plan", "path", input, "records", len(doc), "writes", len(res.Writes))
	return res, nil
}

// resolveIDs merges inline ids with the ids read from the source file.
func (e *Editor) resolveIDs(src IDSource) (*core.IDSet, error) {
	set := core.NewIDSet(src.IDs...)
	if src.File == "" {
		return set, nil
	}
	fromFile, err := e.store.LoadIDs(src.File)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded ids", "path", src.File, "ids", fromFile.Len())
	set.Merge(fromFile)
	return set, nil
}
