package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/aretw0/jsonedit/pkg/editor"
)

// coerce reads text as JSON when it parses, and as a plain string otherwise.
// "3" is the number 3, "true" is a boolean, "null" is null and "abc" is "abc".
func coerce(text string) core.Value {
	v, err := core.Decode([]byte(text))
	if err != nil {
		return core.String(text)
	}
	return v
}

// parseIDs reads the values of --ids. A value that is a JSON scalar as a
// whole is one id, so '"1"' is the string "1" and '"a,b"' keeps its comma.
// A JSON array contributes its elements. Anything else is split on commas
// and each part is coerced.
func parseIDs(values []string) []core.Value {
	var ids []core.Value
	for _, text := range values {
		if v, err := core.Decode([]byte(text)); err == nil {
			if items, ok := v.AsArray(); ok {
				ids = append(ids, items...)
			} else {
				ids = append(ids, v)
			}
			continue
		}
		for _, part := range strings.Split(text, ",") {
			ids = append(ids, coerce(strings.TrimSpace(part)))
		}
	}
	return ids
}

// parsePair splits "a,b" into its two halves.
func parsePair(flag, text string) (string, string, error) {
	a, b, ok := strings.Cut(text, ",")
	if !ok {
		return "", "", fmt.Errorf("--%s expects two comma separated values, got %q", flag, text)
	}
	return strings.TrimSpace(a), strings.TrimSpace(b), nil
}

func parseRename(text string) (*editor.Rename, error) {
	from, to, err := parsePair("rename", text)
	if err != nil {
		return nil, err
	}
	return &editor.Rename{From: from, To: to}, nil
}

func parseRange(text string) (*editor.Range, error) {
	a, b, err := parsePair("extract-range", text)
	if err != nil {
		return nil, err
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return nil, fmt.Errorf("--extract-range start: %w", err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return nil, fmt.Errorf("--extract-range end: %w", err)
	}
	return &editor.Range{Start: start, End: end}, nil
}

// parseField splits FIELD=VALUE. Only the first '=' separates.
func parseField(text string) (*editor.Field, error) {
	name, raw, ok := strings.Cut(text, "=")
	if !ok {
		return nil, fmt.Errorf("--add expects FIELD=VALUE, got %q", text)
	}
	return &editor.Field{Name: name, Value: coerce(raw)}, nil
}
