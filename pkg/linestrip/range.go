// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linestrip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Range is a 1-based inclusive span of lines
type Range struct {
	Start int `validate:"gte=1"`
	End   int `validate:"gtefield=Start"`
	// Label is informational, it names the section being removed
	Label string
}

func (r Range) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	if r.Label != "" {
		return fmt.Sprintf("%s: %d-%d", r.Label, r.Start, r.End)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Validate checks the bounds of the range
func (r Range) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidRange, r, err)
	}
	return nil
}

// ParseRange parses "start-end" or a single line number "n"
func ParseRange(s string) (Range, error) {
	var r Range

	start, end, found := strings.Cut(strings.TrimSpace(s), "-")

	var err error
	if r.Start, err = strconv.Atoi(strings.TrimSpace(start)); err != nil {
		return Range{}, fmt.Errorf("%w %q: bad start", ErrInvalidRange, s)
	}

	r.End = r.Start
	if found {
		if r.End, err = strconv.Atoi(strings.TrimSpace(end)); err != nil {
			return Range{}, fmt.Errorf("%w %q: bad end", ErrInvalidRange, s)
		}
	}

	if err := r.Validate(); err != nil {
		return Range{}, err
	}

	return r, nil
}

func ParseRanges(values []string) ([]Range, error) {
	ranges := make([]Range, 0, len(values))

	for _, v := range values {
		r, err := ParseRange(v)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	return ranges, nil
}

func contains(ranges []Range, line int) bool {
	for _, r := range ranges {
		if r.Contains(line) {
			return true
		}
	}
	return false
}
