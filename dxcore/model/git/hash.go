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

// Package git holds the value types dxbump exchanges with version control:
// commit hashes, the raw commit records consumed by the conventional commit
// parser, and parsed remote locations used to build changelog links.
//
// The package performs no I/O. Reading a repository is the job of
// dxcore/repo, which produces these values.
package git

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// HashHexSizeSHA1 is the length of a full SHA-1 object name.
	HashHexSizeSHA1 = 40

	// HashHexSizeSHA256 is the length of a full SHA-256 object name.
	HashHexSizeSHA256 = 64

	// HashMinLen is the shortest abbreviated object name git accepts.
	HashMinLen = 4

	// HashShortLen is the abbreviation length used in changelog links.
	HashShortLen = 7
)

// HashHexRegexp matches a lowercase hexadecimal object name, full or
// abbreviated.
var HashHexRegexp = regexp.MustCompile(`^[0-9a-f]{4,64}$`)

// Hash is a git object name in lowercase hexadecimal.
//
// Full SHA-1 (40) and SHA-256 (64) names are the norm, but abbreviated names
// of at least HashMinLen characters are accepted so that commit lists copied
// from "git log --oneline" can be fed to the parser. The zero value means "no
// hash" and is valid.
type Hash string

// ParseHash trims and lowercases s and validates the result.
func ParseHash(s string) (Hash, error) {
	hash := Hash(strings.ToLower(strings.TrimSpace(s)))
	if err := hash.Validate(); err != nil {
		return "", fmt.Errorf("invalid hash: %w", err)
	}
	return hash, nil
}

// String returns the full hash.
func (h Hash) String() string {
	return string(h)
}

// Redacted returns the abbreviated hash.
func (h Hash) Redacted() string {
	return h.Short()
}

// TypeName returns "Hash".
func (h Hash) TypeName() string {
	return "Hash"
}

// IsZero reports whether the hash is empty.
func (h Hash) IsZero() bool {
	return h == ""
}

// Short returns the first HashShortLen characters, or the whole hash when it
// is shorter.
func (h Hash) Short() string {
	str := string(h)
	if len(str) < HashShortLen {
		return str
	}
	return str[:HashShortLen]
}

// IsFull reports whether h is a complete SHA-1 or SHA-256 object name.
func (h Hash) IsFull() bool {
	return len(h) == HashHexSizeSHA1 || len(h) == HashHexSizeSHA256
}

// Validate accepts the zero value or a lowercase hex string of HashMinLen to
// HashHexSizeSHA256 characters.
func (h Hash) Validate() error {
	if h.IsZero() {
		return nil
	}

	str := string(h)
	if len(str) < HashMinLen || len(str) > HashHexSizeSHA256 {
		return fmt.Errorf("Hash %q has invalid length: %d (expected %d to %d)", str, len(str), HashMinLen, HashHexSizeSHA256)
	}
	if !HashHexRegexp.MatchString(str) {
		return fmt.Errorf("Hash %q contains invalid characters (must be lowercase hexadecimal [0-9a-f])", str)
	}

	return nil
}

// MarshalJSON encodes the hash as a JSON string.
func (h Hash) MarshalJSON() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return json.Marshal(string(h))
}

// UnmarshalJSON decodes a JSON string through ParseHash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed, err := ParseHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*h = parsed
	return nil
}

// MarshalYAML encodes the hash as a YAML scalar.
func (h Hash) MarshalYAML() (interface{}, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return string(h), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseHash.
func (h *Hash) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed, err := ParseHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*h = parsed
	return nil
}

// Compile-time check that Hash implements model.Model interface.
var _ model.Model = (*Hash)(nil)
