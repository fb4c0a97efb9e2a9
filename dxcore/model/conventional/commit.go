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
	"dirpx.dev/dxbump/dxcore/model/git"
	"gopkg.in/yaml.v3"
)

const (
	// headerPattern matches "<type>[(<scope>)][!]: <subject>".
	//
	// Capture groups:
	//   1. type token
	//   2. scope, without parentheses (may be empty)
	//   3. "!" breaking marker
	//   4. subject
	headerPattern = `^(\w+)(?:\(([^)]*)\))?(!)?:\s+(.+)$`
)

// HeaderRegexp is the compiled header grammar. It is safe for concurrent use.
var HeaderRegexp = regexp.MustCompile(headerPattern)

// breakingMarkers are the footer prefixes that flag a breaking change.
var breakingMarkers = []string{BreakingChangeKey + ":", BreakingChangeAltKey + ":"}

// Commit is a commit message interpreted under the Conventional Commits
// convention.
//
// A Commit is always produced by Parse and is never an error value. When the
// header does not follow the convention, Type is Other, Scope is empty and
// Subject holds the first line of the message verbatim; Breaking can still
// be set by a BREAKING CHANGE footer.
//
//	c := conventional.Parse(git.RawCommit{
//	    Hash:    "a1b2c3d4e5f67890abcdef1234567890abcdef12",
//	    Message: "feat(api)!: drop v1 endpoints\n\nBREAKING CHANGE: v1 is gone",
//	})
//	// c.Type == Feat, c.Scope == "api", c.Subject == "drop v1 endpoints"
//	// c.Breaking == true, c.BreakingNote == "v1 is gone"
type Commit struct {
	// Hash identifies the source commit, lowercased.
	Hash git.Hash `json:"hash,omitempty" yaml:"hash,omitempty"`

	// Type is the header type, or Other.
	Type Type `json:"type" yaml:"type"`

	// Scope is the header scope, verbatim. Empty when absent.
	Scope Scope `json:"scope,omitempty" yaml:"scope,omitempty"`

	// Subject is the header text after ": ", or the whole first line for a
	// non-conventional message.
	Subject string `json:"subject" yaml:"subject"`

	// Body is the message text after the header with surrounding blank
	// lines removed. It includes any footers.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Breaking reports a "!" in the header or a BREAKING CHANGE footer.
	Breaking bool `json:"breaking,omitempty" yaml:"breaking,omitempty"`

	// BreakingNote is the text of the first BREAKING CHANGE footer.
	BreakingNote string `json:"breakingNote,omitempty" yaml:"breakingNote,omitempty"`

	// Trailers are the footers of the final paragraph, when that paragraph
	// consists of footers only.
	Trailers []Trailer `json:"trailers,omitempty" yaml:"trailers,omitempty"`
}

// Compile-time assertion that Commit implements model.Model.
var _ model.Model = (*Commit)(nil)

// Parse interprets raw under the Conventional Commits convention.
//
// Parse is total and pure. CRLF and lone CR line endings are normalized to
// LF first. The header (first line) is matched against HeaderRegexp and its
// type token against the known types with exact, case-sensitive comparison;
// anything else falls back to Type Other with the first line as Subject.
// The body is the text after the first blank line following the header, or
// every remaining line when there is no blank separator. Every line of the
// message, the header included, is scanned for a line starting with
// "BREAKING CHANGE:" or "BREAKING-CHANGE:". A hash that is not a valid
// commit id is dropped.
func Parse(raw git.RawCommit) Commit {
	text := strings.ReplaceAll(raw.Message, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	header := lines[0]

	c := Commit{
		Type:    Other,
		Subject: header,
	}
	if h, err := git.ParseHash(string(raw.Hash)); err == nil {
		c.Hash = h
	}

	if m := HeaderRegexp.FindStringSubmatch(header); m != nil {
		if t, ok := LookupType(m[1]); ok {
			c.Type = t
			c.Scope = Scope(m[2])
			c.Subject = strings.TrimSpace(m[4])
			c.Breaking = m[3] == "!"
		}
	}

	c.Body = body(lines[1:])

	if note, ok := breakingNote(lines); ok {
		c.Breaking = true
		c.BreakingNote = note
	}

	c.Trailers = footers(c.Body)

	return c
}

// body returns the text after the first blank line, or all of rest when it
// has no blank line.
func body(rest []string) string {
	for i, line := range rest {
		if strings.TrimSpace(line) == "" {
			return strings.TrimSpace(strings.Join(rest[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(strings.Join(rest, "\n"))
}

// ParseAll parses every commit, preserving order.
func ParseAll(raws []git.RawCommit) []Commit {
	out := make([]Commit, len(raws))
	for i, raw := range raws {
		out[i] = Parse(raw)
	}
	return out
}

// breakingNote finds the first breaking footer and returns its text,
// including continuation lines up to the next blank line.
func breakingNote(lines []string) (string, bool) {
	for i, line := range lines {
		for _, marker := range breakingMarkers {
			if !strings.HasPrefix(line, marker) {
				continue
			}
			note := []string{strings.TrimSpace(strings.TrimPrefix(line, marker))}
			for _, next := range lines[i+1:] {
				if strings.TrimSpace(next) == "" {
					break
				}
				note = append(note, strings.TrimSpace(next))
			}
			return strings.TrimSpace(strings.Join(note, "\n")), true
		}
	}
	return "", false
}

// footers returns the trailers of the final paragraph of body, or nil when
// any line of that paragraph is not a trailer.
func footers(body string) []Trailer {
	if body == "" {
		return nil
	}

	paragraph := body
	if idx := strings.LastIndex(body, "\n\n"); idx != -1 {
		paragraph = body[idx+2:]
	}

	var out []Trailer
	for _, line := range strings.Split(paragraph, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tr, err := ParseTrailer(line)
		if err != nil {
			return nil
		}
		out = append(out, tr)
	}
	return out
}

// IsConventional reports whether the header followed the convention.
func (c Commit) IsConventional() bool {
	return c.Type != Other
}

// Trailer returns the value of the first trailer with the given key.
func (c Commit) Trailer(key string) (string, bool) {
	for _, tr := range c.Trailers {
		if tr.Key == key {
			return tr.Value, true
		}
	}
	return "", false
}

// Header renders the canonical header line. Non-conventional commits render
// their subject unchanged.
func (c Commit) Header() string {
	if !c.IsConventional() {
		return c.Subject
	}
	var b strings.Builder
	b.WriteString(c.Type.String())
	if !c.Scope.IsZero() {
		b.WriteString("(" + c.Scope.String() + ")")
	}
	if c.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(c.Subject)
	return b.String()
}

// String renders "<short hash> <header>".
func (c Commit) String() string {
	if c.Hash.IsZero() {
		return c.Header()
	}
	return c.Hash.Short() + " " + c.Header()
}

// Redacted renders the short hash and type only.
func (c Commit) Redacted() string {
	return strings.TrimSpace(c.Hash.Short() + " " + c.Type.String())
}

// TypeName returns "Commit".
func (c Commit) TypeName() string {
	return "Commit"
}

// IsZero reports whether the commit carries no information at all.
func (c Commit) IsZero() bool {
	return c.Hash.IsZero() && c.Type == Other && c.Scope.IsZero() &&
		c.Subject == "" && c.Body == "" && !c.Breaking && c.BreakingNote == "" && len(c.Trailers) == 0
}

// Validate checks every component. Any commit returned by Parse is valid.
func (c Commit) Validate() error {
	if err := c.Hash.Validate(); err != nil {
		return fmt.Errorf("Commit.Hash: %w", err)
	}
	if err := c.Type.Validate(); err != nil {
		return fmt.Errorf("Commit.Type: %w", err)
	}
	if err := c.Scope.Validate(); err != nil {
		return fmt.Errorf("Commit.Scope: %w", err)
	}
	if strings.ContainsAny(c.Subject, "\r\n") {
		return fmt.Errorf("Commit.Subject %q must be a single line", c.Subject)
	}
	if c.BreakingNote != "" && !c.Breaking {
		return fmt.Errorf("Commit.BreakingNote is set but Breaking is false")
	}
	for i, tr := range c.Trailers {
		if err := tr.Validate(); err != nil {
			return fmt.Errorf("Commit.Trailers[%d]: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON encodes a valid Commit as a JSON object.
func (c Commit) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type commit Commit
	return json.Marshal(commit(c))
}

// UnmarshalJSON decodes and validates a Commit.
func (c *Commit) UnmarshalJSON(data []byte) error {
	type commit Commit
	var tmp commit
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed := Commit(tmp)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes a valid Commit as a YAML mapping.
func (c Commit) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type commit Commit
	return commit(c), nil
}

// UnmarshalYAML decodes and validates a Commit.
func (c *Commit) UnmarshalYAML(node *yaml.Node) error {
	type commit Commit
	var tmp commit
	if err := node.Decode(&tmp); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed := Commit(tmp)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*c = parsed
	return nil
}
