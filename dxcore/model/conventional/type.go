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

// Package conventional parses commit messages written in the Conventional
// Commits 1.0.0 format into structured values.
//
// The entry point is Parse, which is total: every git.RawCommit yields a
// Commit. Messages that do not follow the convention degrade to Type Other
// with the first line kept verbatim as the subject, so a repository with a
// messy history still produces a changelog and a version decision.
package conventional

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Type is the conventional commit type of a change.
//
// The closed set covers the two core types of the Conventional Commits
// specification (feat and fix) and the widely adopted Angular extensions.
// Other is the zero value: it tags commits whose header did not match the
// convention, and it never contributes to a version bump unless a policy
// explicitly lists it.
//
// Type values serialize to their lowercase names in JSON and YAML.
//
//	t := conventional.Feat
//	fmt.Println(t.String()) // "feat"
type Type uint8

const (
	// Other marks a commit whose header is not a conventional header, or
	// whose type token is not one of the known types. It is the zero value.
	Other Type = iota

	// Feat introduces user-visible functionality. Triggers a minor bump.
	Feat

	// Fix corrects a defect. Triggers a patch bump.
	Fix

	// Docs changes documentation only.
	Docs

	// Style changes formatting without affecting meaning.
	Style

	// Refactor restructures code without changing behavior.
	Refactor

	// Perf improves performance.
	Perf

	// Test adds or corrects tests.
	Test

	// Build changes the build system or external dependencies.
	Build

	// CI changes continuous integration configuration.
	CI

	// Chore covers maintenance that touches neither source nor tests.
	Chore

	// Revert reverts a previous commit.
	Revert

	// maxType is a sentinel for range checks. It MUST remain last.
	maxType
)

// Canonical lowercase names, as they appear in commit headers.
const (
	OtherStr    = "other"
	FeatStr     = "feat"
	FixStr      = "fix"
	DocsStr     = "docs"
	StyleStr    = "style"
	RefactorStr = "refactor"
	PerfStr     = "perf"
	TestStr     = "test"
	BuildStr    = "build"
	CIStr       = "ci"
	ChoreStr    = "chore"
	RevertStr   = "revert"
)

// headerTypes maps header tokens to types. "other" is deliberately absent: it
// is a classification, not something a commit author writes.
var headerTypes = map[string]Type{
	FeatStr:     Feat,
	FixStr:      Fix,
	DocsStr:     Docs,
	StyleStr:    Style,
	RefactorStr: Refactor,
	PerfStr:     Perf,
	TestStr:     Test,
	BuildStr:    Build,
	CIStr:       CI,
	ChoreStr:    Chore,
	RevertStr:   Revert,
}

// LookupType resolves a commit header type token.
//
// Matching is exact and case-sensitive: "feat" is Feat, while "Feat" and
// "FEAT" are not recognized. The second result reports whether the token is
// a known header type; on false the returned Type is Other.
func LookupType(token string) (Type, bool) {
	t, ok := headerTypes[token]
	return t, ok
}

// ParseType parses a configured type name, for example an entry of the
// "bump.patch_types" setting.
//
// Unlike LookupType, ParseType is lenient: surrounding whitespace is trimmed,
// matching is case-insensitive, and "other" is accepted.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Other, fmt.Errorf("Type string cannot be empty")
	}
	if normalized == OtherStr {
		return Other, nil
	}
	if t, ok := headerTypes[normalized]; ok {
		return t, nil
	}
	return Other, fmt.Errorf("unknown Type: %q", s)
}

// Types returns every valid Type in declaration order, Other first.
func Types() []Type {
	out := make([]Type, 0, maxType)
	for t := Other; t < maxType; t++ {
		out = append(out, t)
	}
	return out
}

// String returns the lowercase name of the Type, or "unknown" for values out
// of range.
func (t Type) String() string {
	switch t {
	case Other:
		return OtherStr
	case Feat:
		return FeatStr
	case Fix:
		return FixStr
	case Docs:
		return DocsStr
	case Style:
		return StyleStr
	case Refactor:
		return RefactorStr
	case Perf:
		return PerfStr
	case Test:
		return TestStr
	case Build:
		return BuildStr
	case CI:
		return CIStr
	case Chore:
		return ChoreStr
	case Revert:
		return RevertStr
	default:
		return "unknown"
	}
}

// Redacted is identical to String; commit types carry nothing sensitive.
func (t Type) Redacted() string {
	return t.String()
}

// TypeName returns "Type".
func (t Type) TypeName() string {
	return "Type"
}

// IsZero reports whether t is Other.
func (t Type) IsZero() bool {
	return t == Other
}

// Validate reports an error for values outside the defined constants.
func (t Type) Validate() error {
	if t >= maxType {
		return fmt.Errorf("Type value %d is out of valid range [0, %d)", t, maxType)
	}
	return nil
}

// MarshalJSON encodes the Type as its lowercase name.
func (t Type) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string through ParseType.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*t = parsed
	return nil
}

// MarshalYAML encodes the Type as its lowercase name.
func (t Type) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return t.String(), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseType.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*t = parsed
	return nil
}

// Compile-time verification that Type implements model.Model interface.
var _ model.Model = (*Type)(nil)
