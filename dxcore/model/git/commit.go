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

	"dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

// CommitMessageMaxLen is the maximum accepted commit message size in bytes.
const CommitMessageMaxLen = 1048576 // 1MB

// RawCommit is a commit as version control reports it: an object name and
// the full message text. It is the input of conventional.Parse.
//
// RawCommit carries no interpretation. The message is stored exactly as
// read, including CRLF line endings and trailing newlines; normalizing it is
// the parser's job.
//
//	RawCommit{
//	    Hash:    "a1b2c3d4e5f67890abcdef1234567890abcdef12",
//	    Message: "feat(api): add pagination\n\nRefs: #42\n",
//	}
type RawCommit struct {
	// Hash identifies the commit. It MAY be empty for synthetic commits
	// built in tests or read from a plain list.
	Hash Hash `json:"hash" yaml:"hash"`

	// Message is the complete commit message.
	Message string `json:"message" yaml:"message"`
}

// Summary returns the first line of the message without a trailing CR.
func (c RawCommit) Summary() string {
	line, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSuffix(line, "\r")
}

// String renders "<short> <summary>", as in git log --oneline.
func (c RawCommit) String() string {
	if c.Hash.IsZero() {
		return c.Summary()
	}
	return c.Hash.Short() + " " + c.Summary()
}

// Redacted returns the abbreviated hash only; messages may mention private
// details.
func (c RawCommit) Redacted() string {
	return c.Hash.Short()
}

// TypeName returns "RawCommit".
func (c RawCommit) TypeName() string {
	return "RawCommit"
}

// IsZero reports whether both hash and message are empty.
func (c RawCommit) IsZero() bool {
	return c.Hash.IsZero() && c.Message == ""
}

// Validate checks the hash and the message size.
func (c RawCommit) Validate() error {
	if err := c.Hash.Validate(); err != nil {
		return &errors.ValidationError{Type: "RawCommit", Field: "Hash", Reason: err.Error(), Value: string(c.Hash)}
	}
	if len(c.Message) > CommitMessageMaxLen {
		return &errors.ValidationError{
			Type:   "RawCommit",
			Field:  "Message",
			Reason: fmt.Sprintf("exceeds %d bytes", CommitMessageMaxLen),
			Value:  len(c.Message),
		}
	}
	return nil
}

// MarshalJSON encodes a valid RawCommit as {"hash": ..., "message": ...}.
func (c RawCommit) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type rawCommit RawCommit
	return json.Marshal(rawCommit(c))
}

// UnmarshalJSON decodes and validates a RawCommit.
func (c *RawCommit) UnmarshalJSON(data []byte) error {
	type rawCommit RawCommit
	var rc rawCommit
	if err := json.Unmarshal(data, &rc); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed := RawCommit(rc)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes a valid RawCommit as a mapping.
func (c RawCommit) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type rawCommit RawCommit
	return rawCommit(c), nil
}

// UnmarshalYAML decodes and validates a RawCommit.
func (c *RawCommit) UnmarshalYAML(node *yaml.Node) error {
	type rawCommit RawCommit
	var rc rawCommit
	if err := node.Decode(&rc); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed := RawCommit(rc)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*c = parsed
	return nil
}

// Compile-time check that RawCommit implements model.Model interface.
var _ model.Model = (*RawCommit)(nil)
