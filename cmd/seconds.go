// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// secondsValue is a duration flag that also accepts a plain number of seconds, e.g. 0.5
type secondsValue time.Duration

func newSecondsValue(d time.Duration) *secondsValue {
	v := secondsValue(d)
	return &v
}

func (s *secondsValue) Set(v string) error {
	d, err := parseSeconds(v)
	if err != nil {
		return err
	}
	*s = secondsValue(d)
	return nil
}

// String renders the value in a form viper can cast back to a duration
func (s *secondsValue) String() string {
	return time.Duration(*s).String()
}

func (s *secondsValue) Type() string {
	return "duration"
}

// parseSeconds parses a duration like 500ms or a number of seconds like 0.5
func parseSeconds(v string) (time.Duration, error) {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/float64(time.Second) {
			return 0, fmt.Errorf("invalid number of seconds %q", v)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q, expected seconds like 0.5 or a duration like 500ms", v)
	}
	return d, nil
}
