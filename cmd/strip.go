// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canonical/tdms-auth/pkg/linestrip"
)

type stripOptions struct {
	file        string
	ranges      []string
	preset      string
	output      string
	inPlace     bool
	noBackup    bool
	expectLines int
}

func newStripCmd() *cobra.Command {
	o := new(stripOptions)

	c := &cobra.Command{
		Use:   "strip",
		Short: "Remove line ranges from a source file",
		Long: `Remove 1-based inclusive line ranges from a file.

The result goes to <file>.stripped unless --output or --in-place is given.
In-place runs keep a <file>.bak copy unless --no-backup is set.
Ranges are positional: running strip again on its output removes different lines.`,
		Example: `  app strip --file frontend/src/App.js --range 1142-1476 --range 1479-1786
  app strip --preset unused-tabs --in-place --expect-lines 2121`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cmd, o)
		},
	}

	c.Flags().StringVar(&o.file, "file", "", "File to strip, defaults to the preset's file")
	c.Flags().StringArrayVar(&o.ranges, "range", nil, "Line range to remove as start-end, repeatable")
	c.Flags().StringVar(&o.preset, "preset", "", fmt.Sprintf("Named range set, one of: %s", strings.Join(linestrip.PresetNames(), ", ")))
	c.Flags().StringVar(&o.output, "output", "", "Output file, defaults to <file>.stripped")
	c.Flags().BoolVar(&o.inPlace, "in-place", false, "Overwrite the input file")
	c.Flags().BoolVar(&o.noBackup, "no-backup", false, "Skip the .bak copy when overwriting in place")
	c.Flags().IntVar(&o.expectLines, "expect-lines", 0, "Abort unless the file has exactly this many lines")

	c.MarkFlagsMutuallyExclusive("output", "in-place")

	return c
}

func runStrip(cmd *cobra.Command, o *stripOptions) error {
	opts := linestrip.Options{
		Path:        o.file,
		Output:      o.output,
		InPlace:     o.inPlace,
		NoBackup:    o.noBackup,
		ExpectLines: o.expectLines,
	}

	if o.preset != "" {
		preset, err := linestrip.LookupPreset(o.preset)
		if err != nil {
			return err
		}

		opts.Ranges = preset.Ranges
		if opts.Path == "" {
			opts.Path = preset.Path
		}
	}

	extra, err := linestrip.ParseRanges(o.ranges)
	if err != nil {
		return err
	}
	opts.Ranges = append(opts.Ranges, extra...)

	if opts.Path == "" {
		return fmt.Errorf("--file is required without --preset")
	}

	res, err := linestrip.StripFile(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, r := range res.Overflowing {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: range %s goes past the last line (%d)\n", r, res.Total)
	}

	if res.Backup != "" {
		fmt.Fprintf(out, "Backup written to %s\n", res.Backup)
	}

	fmt.Fprintf(out, "Removed %d of %d lines, %d kept, written to %s\n", res.Removed, res.Total, res.Kept, res.Output)

	return nil
}

func init() {
	rootCmd.AddCommand(newStripCmd())
}
