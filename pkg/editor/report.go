package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/wI2L/jsondiff"
)

func reportDuplicates(res *Result, output string) {
	if res.DuplicateCount == 0 {
		res.say("No duplicate IDs found")
		return
	}
	res.say("Found %d objects with duplicate IDs (%d unique IDs)", res.DuplicateCount, len(res.Duplicates))
	if output != "" {
		res.say("Duplicate objects saved to '%s'", output)
		return
	}
	for _, g := range res.Duplicates {
		indices := make([]string, 0, len(g.Matches))
		for _, idx := range g.Indices() {
			indices = append(indices, strconv.Itoa(idx))
		}
		res.say("ID '%s' appears %d times at indices: [%s]",
			display(g.ID), len(g.Matches), strings.Join(indices, ", "))
	}
}

// display renders strings bare and everything else as compact JSON.
func display(v core.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}

// preview prints the RFC 6902 patch that turns the current content of the
// destination into the pending value. A missing or unreadable destination
// is compared as null.
func (e *Editor) preview(w Write) error {
	before := []byte("null")
	current, err := e.store.Read(w.Path)
	switch {
	case err == nil:
		if before, err = core.EncodeCompact(current); err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist):
		e.logger.Debug("dry run: destination does not exist", "path", w.Path)
	default:
		e.logger.Warn("dry run: existing destination is unreadable, diffing against null", "path", w.Path, "error", err)
		fmt.Fprintf(e.out, "Warning: '%s' could not be read and would be overwritten\n", w.Path)
	}

	after, err := core.EncodeCompact(w.Value)
	if err != nil {
		return err
	}

	patch, err := Diff(before, after)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", w.Path, err)
	}
	if len(patch) == 0 {
		fmt.Fprintf(e.out, "Dry run: no changes to '%s'\n", w.Path)
		return nil
	}

	out, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Dry run: %d change(s) to '%s'\n%s\n", len(patch), w.Path, out)
	return nil
}

// Diff returns the JSON Patch turning before into after.
func Diff(before, after []byte) (jsondiff.Patch, error) {
	return jsondiff.CompareJSON(before, after)
}
