package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/jsonedit"
	"github.com/aretw0/jsonedit/internal/platform"
	"github.com/aretw0/jsonedit/pkg/adapters/fs"
	"github.com/aretw0/jsonedit/pkg/editor"
	"github.com/spf13/cobra"
)

// flags holds the raw command line values of one invocation.
type flags struct {
	verbose    bool
	configPath string

	count          bool
	findDuplicates bool
	deleteField    string
	rename         string
	add            string
	extractRange   string
	extractIDs     bool
	extractField   string
	removeByIDs    string
	keepByIDs      string
	ids            []string
	keep           bool

	output string
	dryRun bool
	jsonc  bool
	indent int
}

// plan turns the flags into an editor.Plan.
func (f *flags) plan() (editor.Plan, error) {
	p := editor.Plan{
		Count:          f.count,
		FindDuplicates: f.findDuplicates,
		Delete:         f.deleteField,
		ExtractIDs:     f.extractIDs,
		ExtractField:   f.extractField,
		Output:         f.output,
		DryRun:         f.dryRun,
	}

	var err error
	if f.rename != "" {
		if p.Rename, err = parseRename(f.rename); err != nil {
			return p, err
		}
	}
	if f.add != "" {
		if p.Add, err = parseField(f.add); err != nil {
			return p, err
		}
	}
	if f.extractRange != "" {
		if p.Range, err = parseRange(f.extractRange); err != nil {
			return p, err
		}
	}

	if f.removeByIDs != "" {
		p.RemoveIDs = &editor.IDSource{File: f.removeByIDs}
	}
	if f.keepByIDs != "" {
		p.KeepIDs = &editor.IDSource{File: f.keepByIDs}
	}
	if len(f.ids) > 0 {
		target := &p.RemoveIDs
		if f.keep {
			target = &p.KeepIDs
		}
		if *target == nil {
			*target = &editor.IDSource{}
		}
		(*target).IDs = parseIDs(f.ids)
	} else if f.keep {
		return p, fmt.Errorf("--keep requires --ids")
	}
	return p, nil
}

// loadConfig reads --config, or the config file found in the working
// directory, then applies the flags that were set explicitly.
func (f *flags) loadConfig(cmd *cobra.Command) (jsonedit.Config, error) {
	cfg := platform.DefaultConfig()

	path := f.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path, _ = platform.FindConfig(wd)
		}
	}
	if path != "" {
		loaded, err := jsonedit.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		slog.Debug("loaded config", "path", path)
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("indent") {
		cfg.Indent = f.indent
	}
	if set("jsonc") {
		cfg.JSONC = f.jsonc
	}
	if set("dry-run") {
		cfg.DryRun = f.dryRun
	}
	return cfg, nil
}

func (f *flags) run(cmd *cobra.Command, args []string) error {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}

	var inputs []string
	for _, arg := range args {
		paths, err := fs.Expand(arg)
		if err != nil {
			return err
		}
		inputs = append(inputs, paths...)
	}
	slog.Debug("resolved inputs", "count", len(inputs))

	plan, err := f.plan()
	if err != nil {
		return err
	}
	plan.DryRun = cfg.DryRun

	ed := jsonedit.New(
		jsonedit.WithConfig(cfg),
		jsonedit.WithLogger(slog.Default()),
		jsonedit.WithStdout(cmd.OutOrStdout()),
	)
	_, err = ed.Run(cmd.Context(), inputs, plan)
	return err
}

// newRootCmd builds the jsonedit command.
func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "jsonedit FILE...",
		Short: "Edit JSON files holding an array of objects",
		Long: `jsonedit loads a JSON array of objects, applies the requested steps and
writes the result back, or to --output.

Steps run in a fixed order, whatever order the flags are given in:
count, find-duplicates, delete, rename, add, extract-range, extract-ids,
extract-field, remove-by-ids, keep-by-ids.

FILE may be a glob pattern such as "data/**/*.json".`,
		Example: `  jsonedit people.json --count --find-duplicates
  jsonedit people.json --delete tmp --rename name,full_name --add active=true
  jsonedit people.json --extract-range 0,9 --output first10.json
  jsonedit people.json --ids 3,7 --keep --output subset.json`,
		Version:       jsonedit.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if f.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)
		},
		RunE: f.run,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&f.configPath, "config", "", "Config file (default: .jsonedit.yaml in the working directory)")

	fl := cmd.Flags()
	fl.BoolVar(&f.count, "count", false, "Print the number of objects")
	fl.BoolVar(&f.findDuplicates, "find-duplicates", false, "Report objects sharing an id")
	fl.StringVar(&f.deleteField, "delete", "", "Delete FIELD from every object")
	fl.StringVar(&f.rename, "rename", "", "Rename a field, as OLD,NEW")
	fl.StringVar(&f.add, "add", "", "Set FIELD=VALUE on every object (VALUE is parsed as JSON when possible)")
	fl.StringVar(&f.extractRange, "extract-range", "", "Write objects START,END (0-based, inclusive) to --output")
	fl.BoolVar(&f.extractIDs, "extract-ids", false, "List the ids of every object")
	fl.StringVar(&f.extractField, "extract-field", "", "List the sorted values of FIELD")
	fl.StringVar(&f.removeByIDs, "remove-by-ids", "", "Remove objects whose id is listed in FILE")
	fl.StringVar(&f.keepByIDs, "keep-by-ids", "", "Keep only objects whose id is listed in FILE")
	fl.StringArrayVar(&f.ids, "ids", nil, "Inline ids for remove (or keep, with --keep); comma separated or repeated, JSON values kept as typed")
	fl.BoolVar(&f.keep, "keep", false, "Keep the objects matching --ids instead of removing them")
	fl.StringVarP(&f.output, "output", "o", "", "Write results to PATH instead of the input")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Print a JSON Patch of each pending write instead of writing")
	fl.BoolVar(&f.jsonc, "jsonc", false, "Accept comments and trailing commas in .json inputs")
	fl.IntVar(&f.indent, "indent", 2, "Spaces per level in written files (negative: compact)")

	return cmd
}

// Execute runs the root command.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fatal("Error", err)
	}
}
