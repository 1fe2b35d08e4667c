package editor_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/jsonedit/pkg/adapters/fs"
	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/aretw0/jsonedit/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`

func setup(t *testing.T) (*editor.Editor, *bytes.Buffer, string) {
	t.Helper()
	var out bytes.Buffer
	return editor.New(fs.NewStore(fs.Config{}), nil, &out), &out, t.TempDir()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	v, err := core.Decode(raw)
	require.NoError(t, err)
	return v.String()
}

func TestRun_CountAndDuplicates(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)

	results, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		Count:          true,
		FindDuplicates: true,
		ExtractIDs:     true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 2, res.DuplicateCount)
	assert.Equal(t, "[1,2,1]", core.Array(res.IDs...).String())
	assert.Empty(t, res.Writes, "read-only steps without output write nothing")

	assert.Equal(t, strings.Join([]string{
		"Total objects in " + input + ": 3",
		"Found 2 objects with duplicate IDs (1 unique IDs)",
		"ID '1' appears 2 times at indices: [0, 2]",
		"Extracted IDs: [1,2,1]",
	}, "\n")+"\n", out.String())

	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, input))
}

func TestRun_DuplicatesToFile(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)
	report := filepath.Join(dir, "dups.json")

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{FindDuplicates: true, Output: report})
	require.NoError(t, err)

	assert.Equal(t,
		`[{"id":1,"count":2,"objects":[{"index":0,"data":{"id":1,"name":"a"}},{"index":2,"data":{"id":1,"name":"c"}}]}]`,
		readDoc(t, report))
	assert.Contains(t, out.String(), "Duplicate objects saved to '"+report+"'")
}

func TestRun_EditsInPlace(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", `[{"id":1,"tmp":true,"old":"x"},{"id":2}]`)

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		Delete: "tmp",
		Rename: &editor.Rename{From: "old", To: "new"},
		Add:    &editor.Field{Name: "status", Value: core.String("active")},
	})
	require.NoError(t, err)

	assert.Equal(t, `[{"id":1,"new":"x","status":"active"},{"id":2,"status":"active"}]`, readDoc(t, input))
	assert.Equal(t, strings.Join([]string{
		"Deleted field 'tmp' from all objects",
		"Renamed field 'old' to 'new' in all objects",
		"Added field 'status' with value 'active' to all objects",
	}, "\n")+"\n", out.String())
}

func TestRun_EditsToOutput(t *testing.T) {
	ed, _, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)
	output := filepath.Join(dir, "out.json")

	results, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		RemoveIDs: &editor.IDSource{IDs: []core.Value{core.Int(1)}},
		Output:    output,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, results[0].Removed)

	assert.Equal(t, `[{"id":2,"name":"b"}]`, readDoc(t, output))
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, input), "input untouched")
}

func TestRun_KeepByIDsFile(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", `[{"id":"a"},{"id":"b"},{"x":1},{"id":"c"}]`)
	ids := writeFile(t, dir, "ids.json", `["c"]`)

	results, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		KeepIDs: &editor.IDSource{IDs: []core.Value{core.String("a")}, File: ids},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, results[0].Kept)
	assert.Equal(t, `[{"id":"a"},{"id":"c"}]`, readDoc(t, input))
	assert.Equal(t, "Kept 2 objects with matching IDs, removed 2 objects\n", out.String())
}

func TestRun_NoMatches(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		RemoveIDs: &editor.IDSource{IDs: []core.Value{core.String("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "No objects were removed, no matching IDs found\n", out.String())
}

func TestRun_ExtractRange(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)
	output := filepath.Join(dir, "slice.json")

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		Range:  &editor.Range{Start: 2, End: 1},
		Output: output,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, output))
	assert.Equal(t, "Extracted 2 objects (from position 2 to 1) to '"+output+"'\n", out.String())
}

func TestRun_ExtractField(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)

	results, err := ed.Run(context.Background(), []string{input}, editor.Plan{ExtractField: "name"})
	require.NoError(t, err)
	assert.Len(t, results[0].FieldValues, 3)
	assert.Equal(t, `Extracted values of field 'name': ["a","b","c"]`+"\n", out.String())

	bad := writeFile(t, dir, "mixed.json", `[{"v":1},{"v":"x"}]`)
	_, err = ed.Run(context.Background(), []string{bad}, editor.Plan{ExtractField: "v"})
	assert.ErrorIs(t, err, core.ErrUnorderable)
}

func TestRun_Validation(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)
	ctx := context.Background()

	tests := []struct {
		name   string
		inputs []string
		plan   editor.Plan
		want   error
	}{
		{"nothing to do", []string{input}, editor.Plan{}, editor.ErrNoOperation},
		{"no input", nil, editor.Plan{Count: true}, editor.ErrNoInput},
		{"range without output", []string{input}, editor.Plan{Range: &editor.Range{End: 1}}, editor.ErrOutputRequired},
		{"range into input", []string{input}, editor.Plan{Range: &editor.Range{End: 1}, Output: input}, editor.ErrOutputIsInput},
		{"two writers", []string{input}, editor.Plan{Delete: "name", ExtractIDs: true, Output: filepath.Join(dir, "o.json")}, editor.ErrOutputConflict},
		{"output with several inputs", []string{input, input}, editor.Plan{Delete: "name", Output: filepath.Join(dir, "o.json")}, editor.ErrOutputConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ed.Run(ctx, tc.inputs, tc.plan)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Empty(t, out.String())
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, input))
}

func TestRun_FailureWritesNothing(t *testing.T) {
	ed, out, dir := setup(t)
	good := writeFile(t, dir, "a.json", scenario)
	bad := writeFile(t, dir, "b.json", `[{"id":1}`)

	_, err := ed.Run(context.Background(), []string{good, bad}, editor.Plan{Delete: "name"})
	assert.ErrorIs(t, err, core.ErrMalformed)
	assert.Empty(t, out.String())
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, good))

	_, err = ed.Run(context.Background(), []string{good}, editor.Plan{
		Delete:    "name",
		RemoveIDs: &editor.IDSource{File: filepath.Join(dir, "missing-ids.json")},
	})
	require.Error(t, err)
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, good))
}

func TestRun_SeveralInputs(t *testing.T) {
	ed, out, dir := setup(t)
	a := writeFile(t, dir, "a.json", `[{"id":1}]`)
	b := writeFile(t, dir, "b.json", `[{"id":1},{"id":2}]`)

	_, err := ed.Run(context.Background(), []string{a, b}, editor.Plan{Add: &editor.Field{Name: "seen", Value: core.Bool(true)}})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"seen":true}]`, readDoc(t, a))
	assert.Equal(t, `[{"id":1,"seen":true},{"id":2,"seen":true}]`, readDoc(t, b))
	assert.Contains(t, out.String(), a+": Added field 'seen' with value 'true' to all objects")
	assert.Contains(t, out.String(), b+": Added field 'seen' with value 'true' to all objects")
}

func TestRun_DryRun(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "data.json", `[{"id":1,"tmp":0}]`)

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{Delete: "tmp", DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, `[{"id":1,"tmp":0}]`, readDoc(t, input), "dry run must not write")
	assert.Contains(t, out.String(), "Dry run: 1 change(s) to '"+input+"'")
	assert.Contains(t, out.String(), `"remove"`)
	assert.Contains(t, out.String(), `/0/tmp`)

	out.Reset()
	_, err = ed.Run(context.Background(), []string{input}, editor.Plan{Delete: "absent", DryRun: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Dry run: no changes to '"+input+"'")
}

// failingStore refuses to write one path.
type failingStore struct {
	*fs.Store
	failOn string
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Write(path string, v core.Value) error {
	if path == s.failOn {
		return errDiskFull
	}
	return s.Store.Write(path, v)
}

func TestRun_WriteFailureStopsRun(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"id":1,"tmp":0}]`)
	b := writeFile(t, dir, "b.json", `[{"id":2,"tmp":0}]`)
	c := writeFile(t, dir, "c.json", `[{"id":3,"tmp":0}]`)

	var out bytes.Buffer
	store := &failingStore{Store: fs.NewStore(fs.Config{}), failOn: b}
	ed := editor.New(store, nil, &out)

	_, err := ed.Run(context.Background(), []string{a, b, c}, editor.Plan{Delete: "tmp"})
	assert.ErrorIs(t, err, errDiskFull)

	// Files are written in input order; the one before the failure keeps
	// its new content and the ones after it are untouched.
	assert.Equal(t, `[{"id":1}]`, readDoc(t, a))
	assert.Equal(t, `[{"id":2,"tmp":0}]`, readDoc(t, b))
	assert.Equal(t, `[{"id":3,"tmp":0}]`, readDoc(t, c))
	assert.Empty(t, out.String())
}

func TestRun_DryRunUnreadableDestination(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "data.json", scenario)
	dest := writeFile(t, dir, "ids.json", `[1,`)

	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	ed := editor.New(fs.NewStore(fs.Config{}), logger, &out)

	_, err := ed.Run(context.Background(), []string{input}, editor.Plan{ExtractIDs: true, Output: dest, DryRun: true})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, out.String(), "Warning: '"+dest+"' could not be read and would be overwritten")
	assert.Contains(t, out.String(), "Dry run: 1 change(s) to '"+dest+"'")

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, `[1,`, string(raw), "dry run must not write")

	// A destination that does not exist yet is not worth a warning.
	logs.Reset()
	out.Reset()
	_, err = ed.Run(context.Background(), []string{input}, editor.Plan{
		ExtractIDs: true, Output: filepath.Join(dir, "new.json"), DryRun: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "level=WARN")
	assert.NotContains(t, out.String(), "Warning:")
}

func TestRun_EmptyDocument(t *testing.T) {
	ed, out, dir := setup(t)
	input := writeFile(t, dir, "empty.json", `[]`)

	results, err := ed.Run(context.Background(), []string{input}, editor.Plan{
		Count:          true,
		FindDuplicates: true,
		ExtractIDs:     true,
		ExtractField:   "name",
	})
	require.NoError(t, err)
	res := results[0]
	assert.Zero(t, res.Count)
	assert.Zero(t, res.DuplicateCount)
	assert.Empty(t, res.IDs)
	assert.Empty(t, res.FieldValues)
	assert.Contains(t, out.String(), "No duplicate IDs found")
	assert.Contains(t, out.String(), "Extracted IDs: []")
}

func TestRun_Cancelled(t *testing.T) {
	ed, _, dir := setup(t)
	input := writeFile(t, dir, "data.json", scenario)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ed.Run(ctx, []string{input}, editor.Plan{Delete: "name"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`, readDoc(t, input))
}
