package editor

import (
	"errors"
	"fmt"

	"github.com/aretw0/jsonedit/pkg/adapters/fs"
	"github.com/aretw0/jsonedit/pkg/core"
)

// Plan validation errors.
var (
	ErrNoOperation    = errors.New("no operation requested")
	ErrOutputRequired = errors.New("extract-range requires an output path")
	ErrOutputIsInput  = errors.New("extract-range output must differ from the input file")
	ErrOutputConflict = errors.New("more than one result would be written to the same output")
	ErrNoInput        = errors.New("no input file")
)

// Rename describes a field rename.
type Rename struct {
	From, To string
}

// Field describes a field to add to every record.
type Field struct {
	Name  string
	Value core.Value
}

// Range selects records Start..End inclusive (0-based).
type Range struct {
	Start, End int
}

// IDSource names the ids used by remove/keep, either inline or as a file
// holding a flat JSON array. When both are given they are merged.
type IDSource struct {
	IDs  []core.Value
	File string
}

// Plan is the set of steps requested for one invocation. Steps always run
// in the order of the fields below, whatever order the flags came in.
type Plan struct {
	Count          bool
	FindDuplicates bool
	Delete         string
	Rename         *Rename
	Add            *Field
	Range          *Range
	ExtractIDs     bool
	ExtractField   string
	RemoveIDs      *IDSource
	KeepIDs        *IDSource

	// Output overrides the destination. Edits default to rewriting the input.
	Output string
	// DryRun prints a patch for every pending write instead of writing.
	DryRun bool
}

// Mutates reports whether the plan edits the working document.
func (p Plan) Mutates() bool {
	return p.Delete != "" || p.Rename != nil || p.Add != nil || p.RemoveIDs != nil || p.KeepIDs != nil
}

// Empty reports whether no step is requested.
func (p Plan) Empty() bool {
	return !p.Mutates() && !p.Count && !p.FindDuplicates && p.Range == nil && !p.ExtractIDs && p.ExtractField == ""
}

// outputWriters lists the steps that would write to Output.
func (p Plan) outputWriters() []string {
	if p.Output == "" {
		return nil
	}
	var steps []string
	if p.FindDuplicates {
		steps = append(steps, "find-duplicates")
	}
	if p.Mutates() {
		steps = append(steps, "edits")
	}
	if p.Range != nil {
		steps = append(steps, "extract-range")
	}
	if p.ExtractIDs {
		steps = append(steps, "extract-ids")
	}
	if p.ExtractField != "" {
		steps = append(steps, "extract-field")
	}
	return steps
}

// Validate rejects plans that cannot run, before anything is read.
func (p Plan) Validate(inputs []string) error {
	if len(inputs) == 0 {
		return ErrNoInput
	}
	if p.Empty() {
		return ErrNoOperation
	}
	if p.Rename != nil && (p.Rename.From == "" || p.Rename.To == "") {
		return errors.New("rename requires both the old and the new field name")
	}
	if p.Add != nil && p.Add.Name == "" {
		return errors.New("add requires a field name")
	}
	if p.Range != nil {
		if p.Output == "" {
			return ErrOutputRequired
		}
		for _, in := range inputs {
			if fs.SamePath(in, p.Output) {
				return fmt.Errorf("%w: %s", ErrOutputIsInput, in)
			}
		}
	}
	if p.Output != "" && len(inputs) > 1 {
		return fmt.Errorf("%w: %d input files share %s", ErrOutputConflict, len(inputs), p.Output)
	}
	if w := p.outputWriters(); len(w) > 1 {
		return fmt.Errorf("%w: %v", ErrOutputConflict, w)
	}
	return nil
}
