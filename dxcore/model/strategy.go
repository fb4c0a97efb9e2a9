/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package model

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxbump/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Strategy controls how dxbump folds the commits of one release into the
// next semantic version.
//
// A range of commits (for example, everything since the last release tag) can
// be read in two ways:
//
//  1. As one batch, where only the highest-impact change matters and exactly
//     one bump is applied. This is the default and the rule the changelog and
//     release flow are built around.
//
//  2. As a chronological sequence, where every commit applies its own bump
//     as if a release had been cut after each change.
//
// Strategy is selected through the "bump.strategy" configuration key.
type Strategy int

const (
	// MaxSeverity computes a single bump from the most severe commit.
	//
	// A breaking change beats a feature, which beats a fix. Exactly one bump
	// is applied to the current version and commit order is irrelevant.
	//
	// Example:
	//   Current = 1.0.0
	//   Commits = feat, fix, fix, feat!, fix
	//   Next    = 2.0.0
	MaxSeverity Strategy = iota

	// Sequential applies each commit's bump in chronological order.
	//
	// Commits are supplied newest-first (the order git log produces), so
	// the fold starts at the last element. Lower-severity changes that
	// follow a higher-severity one bump again on top of it.
	//
	// Example:
	//   Current = 1.0.0
	//   Commits (oldest first) = feat, fix, fix, feat!, fix
	//     1.0.0 --feat--> 1.1.0 --fix--> 1.1.1 --fix--> 1.1.2
	//     1.1.2 --feat!--> 2.0.0 --fix--> 2.0.1
	//   Next    = 2.0.1
	Sequential
)

var _ Model = (*Strategy)(nil)

// String constants for Strategy values used in configuration files, CLI
// flags and serialized output.
const (
	MaxSeverityStr = "max-severity"
	SequentialStr  = "sequential"
)

// String returns the canonical kebab-case name of the Strategy, or "unknown"
// for values outside the defined constants.
func (s Strategy) String() string {
	switch s {
	case MaxSeverity:
		return MaxSeverityStr
	case Sequential:
		return SequentialStr
	default:
		return "unknown"
	}
}

// ParseStrategy converts a textual representation into a Strategy value.
//
// Case, dashes and underscores are ignored, so YAML files and environment
// variables can use their natural style: "max-severity", "MaxSeverity" and
// "MAX_SEVERITY" all select MaxSeverity. Any other input yields
// *errors.ParseError.
func ParseStrategy(str string) (Strategy, error) {
	if s, ok := strategyNames[normalizeStrategy(str)]; ok {
		return s, nil
	}
	return MaxSeverity, &errors.ParseError{Type: "Strategy", Value: str}
}

var strategyNames = map[string]Strategy{
	normalizeStrategy(MaxSeverityStr): MaxSeverity,
	normalizeStrategy(SequentialStr):  Sequential,
}

func normalizeStrategy(str string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(str)))
}

// Valid reports whether s is one of the defined constants.
func (s Strategy) Valid() bool {
	return s == MaxSeverity || s == Sequential
}

// MarshalJSON encodes the Strategy as its canonical string.
func (s Strategy) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Strategy", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts either the string form or the numeric constant.
func (s *Strategy) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Strategy", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Strategy", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseStrategy(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Strategy", Data: data, Reason: err.Error()}
	}
	*s = Strategy(i)
	if !s.Valid() {
		return &errors.UnmarshalError{Type: "Strategy", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Strategy", Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TypeName returns "Strategy".
func (s Strategy) TypeName() string {
	return "Strategy"
}

// Redacted is identical to String; strategies carry nothing sensitive.
func (s Strategy) Redacted() string {
	return s.String()
}

// IsZero reports whether s is the default MaxSeverity strategy.
func (s Strategy) IsZero() bool {
	return s == MaxSeverity
}

// Validate returns *errors.ValidationError for values outside the defined
// constants.
func (s Strategy) Validate() error {
	if !s.Valid() {
		return &errors.ValidationError{
			Type:   "Strategy",
			Reason: "invalid Strategy value",
			Value:  int(s),
		}
	}
	return nil
}

// MarshalYAML encodes the Strategy as its canonical string.
func (s Strategy) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Strategy", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseStrategy.
func (s *Strategy) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Strategy", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStrategy(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
