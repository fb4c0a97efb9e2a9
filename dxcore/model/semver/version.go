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

// Package semver provides the semantic version value that dxbump reads from
// release tags and manifests and computes transitions on.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	dxerrors "dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Version represents a semantic version according to Semantic Versioning 2.0.0
// (https://semver.org).
//
// This implementation wraps github.com/blang/semver/v4 for parsing, validation
// and precedence so that dxbump stays fully SemVer 2.0.0 compliant while
// exposing plain integer fields.
//
// Version supports the full format Major.Minor.Patch[-Prerelease][+Metadata].
// Ordering follows SemVer 2.0.0: Major, then Minor, then Patch, a prerelease
// sorts below its release, and build metadata never affects precedence.
//
// The zero value corresponds to 0.0.0 and is a legitimate starting point for
// a repository without release tags. dxbump never discovers a Version from a
// manifest itself; it receives the current version from a collaborator and
// computes the next one with IncMajor, IncMinor or IncPatch.
type Version struct {
	// Major is the first component. Incrementing it signals a breaking change.
	Major int

	// Minor is the second component. Incrementing it signals a
	// backwards-compatible feature.
	Minor int

	// Patch is the third component. Incrementing it signals a
	// backwards-compatible fix.
	Patch int

	// Prerelease is an optional dot-separated pre-release identifier such
	// as "alpha.1" or "rc.2". Identifiers contain only [0-9A-Za-z-] and
	// numeric identifiers have no leading zeroes.
	Prerelease string

	// Metadata is optional dot-separated build metadata such as
	// "build.123". It is ignored for precedence.
	Metadata string
}

var _ model.Model = (*Version)(nil)

// ParseVersion parses a SemVer 2.0.0 version string into a Version value.
//
// An optional leading "v" is tolerated and stripped, so release tag names
// such as "v1.4.0" parse directly.
//
// Examples:
//
//	ParseVersion("1.2.3")                 -> Version{Major: 1, Minor: 2, Patch: 3}
//	ParseVersion("v2.0.0")                -> Version{Major: 2}
//	ParseVersion("1.0.0-alpha.1")         -> Version{1, 0, 0, "alpha.1", ""}
//	ParseVersion("v2.0.0-rc.1+build.123") -> Version{2, 0, 0, "rc.1", "build.123"}
//
// On error ParseVersion returns a zero Version and a descriptive error.
func ParseVersion(s string) (Version, error) {
	// blang/semver does not accept the tag-style "v" prefix
	s = strings.TrimPrefix(s, "v")

	bv, err := bsemver.Parse(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version format %q: %w", s, err)
	}

	return fromBlangSemver(bv), nil
}

// MustParseVersion is like ParseVersion but panics on error. It is intended
// for constants in tests and package-level variables.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical textual representation of the Version.
//
//	Version{Major: 1, Minor: 2, Patch: 3}.String()                 // "1.2.3"
//	Version{Major: 1, Prerelease: "rc.1", Metadata: "b5"}.String() // "1.0.0-rc.1+b5"
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// Tag returns the release tag name for the Version, i.e. String prefixed
// with "v". This is the form used by release links and git tags.
func (v Version) Tag() string {
	return "v" + v.String()
}

// Redacted is identical to String; versions carry nothing sensitive.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IncMajor returns the next major version: (Major+1).0.0.
//
// Prerelease and Metadata are dropped. A 0.x version is bumped like any
// other; whether 0.x lines suppress major bumps is a policy decision that
// belongs to the caller.
func (v Version) IncMajor() Version {
	return Version{Major: v.Major + 1}
}

// IncMinor returns the next minor version: Major.(Minor+1).0.
func (v Version) IncMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// IncPatch returns the next patch version: Major.Minor.(Patch+1).
func (v Version) IncPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// toBlangSemver converts this Version to a blang/semver.Version by round
// tripping through the canonical string.
func (v Version) toBlangSemver() (bsemver.Version, error) {
	bv, err := bsemver.Parse(v.String())
	if err != nil {
		return bsemver.Version{}, fmt.Errorf("failed to convert to blang/semver: %w", err)
	}
	return bv, nil
}

// fromBlangSemver creates a Version from a blang/semver.Version.
func fromBlangSemver(bv bsemver.Version) Version {
	var prerelease string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		prerelease = strings.Join(parts, ".")
	}

	var metadata string
	if len(bv.Build) > 0 {
		metadata = strings.Join(bv.Build, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: prerelease,
		Metadata:   metadata,
	}
}

// Validate checks that the Version components are well-formed according to
// SemVer 2.0.0: non-negative numeric components and syntactically valid
// prerelease and metadata identifiers.
func (v Version) Validate() error {
	// blang/semver uses uint64 and cannot see negative values
	if v.Major < 0 {
		return &dxerrors.ValidationError{Type: "Version", Field: "Major", Reason: "must be non-negative", Value: v.Major}
	}
	if v.Minor < 0 {
		return &dxerrors.ValidationError{Type: "Version", Field: "Minor", Reason: "must be non-negative", Value: v.Minor}
	}
	if v.Patch < 0 {
		return &dxerrors.ValidationError{Type: "Version", Field: "Patch", Reason: "must be non-negative", Value: v.Patch}
	}

	if _, err := v.toBlangSemver(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// IsZero reports whether the Version is exactly 0.0.0 with no prerelease or
// build metadata.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Prerelease == "" && v.Metadata == ""
}

// Compare compares v with other according to SemVer 2.0.0 precedence and
// returns -1, 0 or +1.
//
// Build metadata is ignored. If either side is not a valid version the
// comparison falls back to the numeric core only.
func (v Version) Compare(other Version) int {
	bv, err := v.toBlangSemver()
	if err != nil {
		return compareCore(v, other)
	}
	bother, err := other.toBlangSemver()
	if err != nil {
		return compareCore(v, other)
	}
	return bv.Compare(bother)
}

func compareCore(a, b Version) int {
	switch {
	case a.Major != b.Major:
		return cmpInt(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmpInt(a.Minor, b.Minor)
	default:
		return cmpInt(a.Patch, b.Patch)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v is strictly less than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other have the same precedence.
// Per SemVer 2.0.0, 1.0.0+build1 equals 1.0.0+build2.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Greater reports whether v is strictly greater than other.
func (v Version) Greater(other Version) bool {
	return v.Compare(other) > 0
}

// MarshalJSON encodes a valid Version as a JSON string such as "1.2.3".
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string through ParseVersion; a leading "v" is
// accepted.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{
			Type:   "Version",
			Data:   data,
			Reason: err.Error(),
		}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// MarshalYAML encodes a valid Version as a scalar string.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseVersion.
func (v *Version) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{
			Type:   "Version",
			Reason: err.Error(),
		}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}
