// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linestrip

import (
	"fmt"
	"sort"
)

// Preset is a named set of ranges for a known revision of a file
type Preset struct {
	Name        string
	Description string
	Path        string
	Ranges      []Range
}

var presets = map[string]Preset{
	"unused-tabs": {
		Name:        "unused-tabs",
		Description: "remove the unused analytics tabs from the frontend App component",
		Path:        "frontend/src/App.js",
		Ranges: []Range{
			{Start: 1142, End: 1476, Label: "TrendsTab"},
			{Start: 1479, End: 1786, Label: "DemographicsTab"},
			{Start: 1788, End: 2121, Label: "ExternalFactorsTab"},
		},
	},
}

func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}

	// callers may append to the ranges
	p.Ranges = append([]Range(nil), p.Ranges...)

	return p, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
