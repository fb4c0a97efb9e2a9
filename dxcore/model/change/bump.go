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

// Package change decides how a set of commits moves a semantic version.
//
// Bump is the decision; Policy is the rule that produces it. The default
// policy is the Conventional Commits rule: a breaking change bumps major, a
// feature bumps minor, a fix bumps patch, and nothing else releases.
package change

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/semver"
	"gopkg.in/yaml.v3"
)

// Bump is the version increment a release applies. Values are ordered by
// severity, so the larger of two bumps is the one that wins.
type Bump int

const (
	// BumpNone leaves the version unchanged. It is what a range of commits
	// with no breaking change, feature or fix produces, and it is not an
	// error.
	BumpNone Bump = iota

	// BumpPatch yields X.Y.(Z+1).
	BumpPatch

	// BumpMinor yields X.(Y+1).0.
	BumpMinor

	// BumpMajor yields (X+1).0.0. It applies to 0.x versions as well, so
	// a breaking change on 0.9.3 yields 1.0.0.
	BumpMajor
)

// String constants for Bump values. They appear in CLI output and plan
// documents and MUST stay stable.
const (
	BumpNoneStr  = "none"
	BumpPatchStr = "patch"
	BumpMinorStr = "minor"
	BumpMajorStr = "major"
)

// ParseBump converts a case-insensitive name ("none", "patch", "minor",
// "major") into a Bump value. Any other input yields *errors.ParseError.
func ParseBump(s string) (Bump, error) {
	for b := BumpNone; b <= BumpMajor; b++ {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return BumpNone, &errors.ParseError{Type: "Bump", Value: s}
}

// String returns the lowercase name of the Bump, or "unknown".
func (b Bump) String() string {
	switch b {
	case BumpNone:
		return BumpNoneStr
	case BumpPatch:
		return BumpPatchStr
	case BumpMinor:
		return BumpMinorStr
	case BumpMajor:
		return BumpMajorStr
	default:
		return "unknown"
	}
}

// Valid reports whether b is one of the defined constants.
func (b Bump) Valid() bool {
	return b >= BumpNone && b <= BumpMajor
}

// Max returns the more severe of b and other.
func (b Bump) Max(other Bump) Bump {
	if other > b {
		return other
	}
	return b
}

// Apply returns v advanced by b. BumpNone and invalid values return v
// unchanged, prerelease and metadata included.
func (b Bump) Apply(v semver.Version) semver.Version {
	switch b {
	case BumpMajor:
		return v.IncMajor()
	case BumpMinor:
		return v.IncMinor()
	case BumpPatch:
		return v.IncPatch()
	default:
		return v
	}
}

// TypeName returns "Bump".
func (b Bump) TypeName() string {
	return "Bump"
}

// Redacted is identical to String.
func (b Bump) Redacted() string {
	return b.String()
}

// IsZero reports whether b is BumpNone. BumpNone is a valid decision.
func (b Bump) IsZero() bool {
	return b == BumpNone
}

// Validate returns *errors.ValidationError for values outside the defined
// constants.
func (b Bump) Validate() error {
	if !b.Valid() {
		return &errors.ValidationError{
			Type:   "Bump",
			Reason: "invalid Bump value",
			Value:  int(b),
		}
	}
	return nil
}

// MarshalJSON encodes a valid Bump as its lowercase name.
func (b Bump) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bump", Value: int(b)}
	}
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON accepts the string form or the numeric constant.
func (b *Bump) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseBump(s)
		if err != nil {
			return err
		}
		*b = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: err.Error()}
	}
	*b = Bump(i)
	if !b.Valid() {
		return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

// MarshalYAML encodes a valid Bump as its lowercase name.
func (b Bump) MarshalYAML() (any, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bump", Value: int(b)}
	}
	return b.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseBump.
func (b *Bump) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Bump", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseBump(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Bump) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bump", Value: int(b)}
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bump) UnmarshalText(text []byte) error {
	parsed, err := ParseBump(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

var _ model.Model = (*Bump)(nil)
