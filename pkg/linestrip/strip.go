// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linestrip

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/renameio/v2"
)

const (
	defaultOutputSuffix = ".stripped"
	backupSuffix        = ".bak"
)

type Result struct {
	Total   int
	Kept    int
	Removed int
	// Overflowing lists the ranges reaching past the last line of the input
	Overflowing []Range

	Output string
	Backup string
}

type Options struct {
	Path   string
	Ranges []Range

	// Output defaults to Path with a ".stripped" suffix
	Output string
	// InPlace overwrites Path, a ".bak" copy is written first unless NoBackup is set
	InPlace  bool
	NoBackup bool
	// ExpectLines aborts when positive and the input has a different number of lines
	ExpectLines int
}

// Strip copies r to w dropping every line whose 1-based position falls in one of ranges
// Line endings are preserved, including a missing newline on the last line
func Strip(r io.Reader, w io.Writer, ranges []Range) (Result, error) {
	var res Result

	if err := validateRanges(ranges); err != nil {
		return res, err
	}

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			res.Total++

			if !utf8.ValidString(line) {
				return res, fmt.Errorf("%w: line %d", ErrInvalidEncoding, res.Total)
			}

			if contains(ranges, res.Total) {
				res.Removed++
			} else {
				if _, werr := bw.WriteString(line); werr != nil {
					return res, werr
				}
				res.Kept++
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
	}

	for _, rg := range ranges {
		if rg.End > res.Total {
			res.Overflowing = append(res.Overflowing, rg)
		}
	}

	return res, bw.Flush()
}

// StripFile applies Strip to a file, the output is replaced atomically
func StripFile(opts Options) (Result, error) {
	var res Result

	if err := validateRanges(opts.Ranges); err != nil {
		return res, err
	}

	output, err := outputPath(opts)
	if err != nil {
		return res, err
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return res, err
	}

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return res, err
	}

	if opts.ExpectLines > 0 {
		if n := CountLines(data); n != opts.ExpectLines {
			return res, fmt.Errorf("%w: %s has %d lines, expected %d", ErrLineCountMismatch, opts.Path, n, opts.ExpectLines)
		}
	}

	var buf bytes.Buffer
	if res, err = Strip(bytes.NewReader(data), &buf, opts.Ranges); err != nil {
		return res, err
	}

	if opts.InPlace && !opts.NoBackup {
		res.Backup = opts.Path + backupSuffix
		if err := writeFileAtomic(res.Backup, data, info.Mode().Perm()); err != nil {
			return res, fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := writeFileAtomic(output, buf.Bytes(), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write output: %w", err)
	}

	res.Output = output

	return res, nil
}

// CountLines counts lines the way Strip numbers them
func CountLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func validateRanges(ranges []Range) error {
	if len(ranges) == 0 {
		return ErrNoRanges
	}

	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func outputPath(opts Options) (string, error) {
	if opts.InPlace {
		return opts.Path, nil
	}

	if opts.Output == "" {
		return opts.Path + defaultOutputSuffix, nil
	}

	in, err := filepath.Abs(opts.Path)
	if err != nil {
		return "", err
	}

	out, err := filepath.Abs(opts.Output)
	if err != nil {
		return "", err
	}

	if in == out {
		return "", ErrSameOutput
	}

	return opts.Output, nil
}

// writeFileAtomic syncs data to a temporary file next to path before renaming it over path
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm, renameio.WithTempDir(filepath.Dir(path)), renameio.IgnoreUmask())
}
