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

package conventional

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Scope is the optional parenthesized component of a conventional header,
// naming the part of the codebase a change affects:
//
//	feat(parser): accept CRLF line endings
//	     ^^^^^^
//
// Scope is kept exactly as written in the header. It is not lowercased or
// trimmed, so "Core API" in a header renders as "Core API" in the changelog.
// The only structural constraints are the ones the header grammar imposes: a
// scope cannot contain a closing parenthesis or a line break.
//
// The zero value (empty string) means the header carried no scope. A header
// with empty parentheses, "fix(): x", also yields the zero value.
type Scope string

// ParseScope validates s as a scope and returns it unchanged.
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if err := scope.Validate(); err != nil {
		return "", err
	}
	return scope, nil
}

// String returns the scope text.
func (s Scope) String() string {
	return string(s)
}

// Redacted is identical to String.
func (s Scope) Redacted() string {
	return string(s)
}

// TypeName returns "Scope".
func (s Scope) TypeName() string {
	return "Scope"
}

// IsZero reports whether no scope is present.
func (s Scope) IsZero() bool {
	return s == ""
}

// Validate rejects scopes that the header grammar could not have produced.
func (s Scope) Validate() error {
	if strings.Contains(string(s), ")") {
		return fmt.Errorf("Scope %q must not contain ')'", string(s))
	}
	if strings.ContainsAny(string(s), "\r\n") {
		return fmt.Errorf("Scope %q must not contain line breaks", string(s))
	}
	return nil
}

// MarshalJSON encodes the scope as a JSON string.
func (s Scope) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON decodes a JSON string and validates it.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed, err := ParseScope(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the scope as a YAML scalar.
func (s Scope) MarshalYAML() (interface{}, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	return string(s), nil
}

// UnmarshalYAML decodes a YAML scalar and validates it.
func (s *Scope) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed, err := ParseScope(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*s = parsed
	return nil
}

// Compile-time verification that Scope implements model.Model interface.
var _ model.Model = (*Scope)(nil)
