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

package git

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/semver"
	"gopkg.in/yaml.v3"
)

// Tag is a release tag as found in a repository: its short name (without
// "refs/tags/"), the commit it points at, and whether it is annotated.
//
// Only tags whose name is a "v"-prefixed semantic version count as releases;
// Version reports that. Lightweight and annotated tags are treated the same.
type Tag struct {
	// Name is the short tag name, for example "v1.4.0".
	Name string `json:"name" yaml:"name"`

	// Commit is the commit the tag resolves to. For annotated tags this is
	// the target of the tag object, not the tag object itself.
	Commit Hash `json:"commit" yaml:"commit"`

	// Annotated reports whether the tag is an annotated tag object.
	Annotated bool `json:"annotated,omitempty" yaml:"annotated,omitempty"`
}

var _ model.Model = (*Tag)(nil)

// Version parses the tag name as a release version. The "v" prefix is
// required; "1.4.0" is not a release tag.
func (t Tag) Version() (semver.Version, bool) {
	if !strings.HasPrefix(t.Name, "v") {
		return semver.Version{}, false
	}
	v, err := semver.ParseVersion(t.Name)
	if err != nil {
		return semver.Version{}, false
	}
	return v, true
}

// String renders "<name> (<short commit>)".
func (t Tag) String() string {
	if t.Commit.IsZero() {
		return t.Name
	}
	return t.Name + " (" + t.Commit.Short() + ")"
}

// Redacted is identical to String.
func (t Tag) Redacted() string {
	return t.String()
}

// TypeName returns "Tag".
func (t Tag) TypeName() string {
	return "Tag"
}

// IsZero reports whether the tag is unset. A repository without release tags
// yields the zero Tag.
func (t Tag) IsZero() bool {
	return t.Name == "" && t.Commit.IsZero() && !t.Annotated
}

// Validate accepts the zero Tag, or a named tag pointing at a valid commit.
func (t Tag) Validate() error {
	if t.IsZero() {
		return nil
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%s Name must not be empty", t.TypeName())
	}
	if strings.ContainsAny(t.Name, " \t\r\n~^:?*[\\") {
		return fmt.Errorf("%s Name %q contains characters git does not allow in ref names", t.TypeName(), t.Name)
	}
	if t.Commit.IsZero() {
		return fmt.Errorf("%s Commit must not be empty", t.TypeName())
	}
	if err := t.Commit.Validate(); err != nil {
		return fmt.Errorf("invalid %s Commit: %w", t.TypeName(), err)
	}
	return nil
}

// MarshalJSON encodes a valid Tag as a JSON object.
func (t Tag) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	type tag Tag
	return json.Marshal(tag(t))
}

// UnmarshalJSON decodes and validates a Tag.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type tag Tag
	var tmp tag
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed := Tag(tmp)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes a valid Tag as a YAML mapping.
func (t Tag) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	type tag Tag
	return tag(t), nil
}

// UnmarshalYAML decodes and validates a Tag.
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	type tag Tag
	var tmp tag
	if err := node.Decode(&tmp); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed := Tag(tmp)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*t = parsed
	return nil
}
