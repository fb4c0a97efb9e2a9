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
	"regexp"
	"strings"

	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// trailerKeyPattern follows git interpret-trailers: an ASCII letter
	// followed by letters, digits and hyphens.
	trailerKeyPattern = `^[A-Za-z][A-Za-z0-9-]*$`

	// BreakingChangeKey is the Conventional Commits footer token announcing a
	// breaking change. It is the only trailer key allowed to contain a space.
	BreakingChangeKey = "BREAKING CHANGE"

	// BreakingChangeAltKey is the hyphenated synonym of BreakingChangeKey.
	BreakingChangeAltKey = "BREAKING-CHANGE"
)

const (
	// TrailerKeyMaxLen is the maximum key length in code points.
	TrailerKeyMaxLen = 64

	// TrailerValueMaxLen is the maximum value length in code points. Longer
	// footers belong in the body.
	TrailerValueMaxLen = 256
)

// TrailerKeyRegexp validates trailer keys. It is safe for concurrent use.
var TrailerKeyRegexp = regexp.MustCompile(trailerKeyPattern)

// Trailer is a single "Key: Value" footer line at the end of a commit
// message, such as "Signed-off-by: Jane Doe <jane@example.com>" or
// "Refs: #123".
//
// Parse collects trailers from the final paragraph of a message when every
// line of that paragraph is a trailer. The BREAKING CHANGE footer is also a
// trailer; its value doubles as Commit.BreakingNote.
//
// The zero value means "no trailer" and is valid.
type Trailer struct {
	// Key is the footer token without the colon, casing preserved.
	Key string `json:"key" yaml:"key"`

	// Value is the single-line footer text with surrounding whitespace
	// removed.
	Value string `json:"value" yaml:"value"`
}

// ParseTrailer splits s on the first colon and validates both halves.
//
//	tr, err := conventional.ParseTrailer("Fixes: #123")
//	// tr.Key == "Fixes", tr.Value == "#123"
func ParseTrailer(s string) (Trailer, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return Trailer{}, fmt.Errorf("trailer string cannot be empty")
	}

	colonIdx := strings.Index(normalized, ":")
	if colonIdx == -1 {
		return Trailer{}, fmt.Errorf("trailer string must contain colon separator: %q", s)
	}

	trailer := Trailer{
		Key:   strings.TrimSpace(normalized[:colonIdx]),
		Value: strings.TrimSpace(normalized[colonIdx+1:]),
	}
	if trailer.Key == "" {
		return Trailer{}, fmt.Errorf("trailer key cannot be empty: %q", s)
	}

	if err := trailer.Validate(); err != nil {
		return Trailer{}, fmt.Errorf("invalid trailer: %w", err)
	}

	return trailer, nil
}

// IsBreaking reports whether the trailer is a BREAKING CHANGE footer.
func (tr Trailer) IsBreaking() bool {
	return tr.Key == BreakingChangeKey || tr.Key == BreakingChangeAltKey
}

// String renders the trailer as "Key: Value", "Key:" when the value is
// empty, or "" for the zero value.
func (tr Trailer) String() string {
	if tr.IsZero() {
		return ""
	}
	if tr.Value == "" {
		return tr.Key + ":"
	}
	return tr.Key + ": " + tr.Value
}

// Redacted returns only the key. Trailer values routinely carry e-mail
// addresses.
func (tr Trailer) Redacted() string {
	return tr.Key
}

// TypeName returns "Trailer".
func (tr Trailer) TypeName() string {
	return "Trailer"
}

// IsZero reports whether both key and value are empty.
func (tr Trailer) IsZero() bool {
	return tr.Key == "" && tr.Value == ""
}

// Validate checks the key format and that the value is a single line within
// TrailerValueMaxLen.
func (tr Trailer) Validate() error {
	if tr.IsZero() {
		return nil
	}

	if tr.Key == "" {
		return fmt.Errorf("Trailer Key cannot be empty")
	}
	if n := len([]rune(tr.Key)); n > TrailerKeyMaxLen {
		return fmt.Errorf("Trailer Key %q is too long (maximum length: %d)", tr.Key, TrailerKeyMaxLen)
	}
	if tr.Key != BreakingChangeKey && !TrailerKeyRegexp.MatchString(tr.Key) {
		return fmt.Errorf("Trailer Key %q does not match required format (must start with letter, contain only letters, digits, and hyphens)", tr.Key)
	}

	if strings.ContainsAny(tr.Value, "\n\r") {
		return fmt.Errorf("Trailer Value %q contains newline characters (not allowed)", tr.Value)
	}
	if n := len([]rune(tr.Value)); n > TrailerValueMaxLen {
		return fmt.Errorf("Trailer Value is too long: %d runes (maximum: %d)", n, TrailerValueMaxLen)
	}

	return nil
}

// MarshalJSON encodes the trailer as {"key": ..., "value": ...}.
func (tr Trailer) MarshalJSON() ([]byte, error) {
	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", tr.TypeName(), err)
	}
	type trailer Trailer
	return json.Marshal(trailer(tr))
}

// UnmarshalJSON decodes, trims and validates a trailer object.
func (tr *Trailer) UnmarshalJSON(data []byte) error {
	type trailer Trailer
	var t trailer
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed := Trailer{Key: strings.TrimSpace(t.Key), Value: strings.TrimSpace(t.Value)}
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*tr = parsed
	return nil
}

// MarshalYAML encodes the trailer as a key/value mapping.
func (tr Trailer) MarshalYAML() (interface{}, error) {
	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", tr.TypeName(), err)
	}
	type trailer Trailer
	return trailer(tr), nil
}

// UnmarshalYAML decodes, trims and validates a trailer mapping.
func (tr *Trailer) UnmarshalYAML(node *yaml.Node) error {
	type trailer Trailer
	var t trailer
	if err := node.Decode(&t); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed := Trailer{Key: strings.TrimSpace(t.Key), Value: strings.TrimSpace(t.Value)}
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*tr = parsed
	return nil
}

// Compile-time verification that Trailer implements model.Model interface.
var _ model.Model = (*Trailer)(nil)
