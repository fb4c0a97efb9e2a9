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

package release

import (
	"encoding/json"
	"fmt"

	dxerrors "dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/change"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/semver"
	"gopkg.in/yaml.v3"
)

// Plan is the outcome of inspecting the history since the last release: the
// version it starts from, the version it would cut and the commits that
// justify the step.
type Plan struct {
	// Current is the version in effect before the release.
	Current semver.Version `json:"current" yaml:"current"`

	// Next is the version the release would produce. It equals Current when
	// Bump is None and no override was given.
	Next semver.Version `json:"next" yaml:"next"`

	// Bump is the decision derived from Commits.
	Bump change.Bump `json:"bump" yaml:"bump"`

	// Override is set when Next was given explicitly instead of derived
	// from Bump.
	Override bool `json:"override,omitempty" yaml:"override,omitempty"`

	// Commits are the parsed commits since the last release, newest first.
	Commits []conventional.Commit `json:"commits,omitempty" yaml:"commits,omitempty"`
}

var _ model.Model = (*Plan)(nil)

// Tag returns the release tag name of Next.
func (p Plan) Tag() string {
	return p.Next.Tag()
}

// Releasable reports whether the plan moves the version forward.
func (p Plan) Releasable() bool {
	return p.Next.Greater(p.Current)
}

// String renders a one-line summary, for example
// "1.2.0 -> 1.3.0 (minor, 4 commits)".
func (p Plan) String() string {
	reason := p.Bump.String()
	if p.Override {
		reason = "release-as"
	}
	return fmt.Sprintf("%s -> %s (%s, %d commits)", p.Current, p.Next, reason, len(p.Commits))
}

// Redacted is identical to String; commit text is not included.
func (p Plan) Redacted() string {
	return p.String()
}

// TypeName returns "Plan".
func (p Plan) TypeName() string {
	return "Plan"
}

// IsZero reports whether the plan is empty.
func (p Plan) IsZero() bool {
	return p.Current.IsZero() && p.Next.IsZero() && p.Bump.IsZero() && !p.Override && len(p.Commits) == 0
}

// Validate checks both versions and every commit, and that Next follows from
// Current: never lower, and equal exactly when nothing is bumped.
func (p Plan) Validate() error {
	if err := p.Current.Validate(); err != nil {
		return fmt.Errorf("Plan.Current: %w", err)
	}
	if err := p.Next.Validate(); err != nil {
		return fmt.Errorf("Plan.Next: %w", err)
	}
	if err := p.Bump.Validate(); err != nil {
		return fmt.Errorf("Plan.Bump: %w", err)
	}
	if p.Next.Less(p.Current) {
		return &dxerrors.ValidationError{
			Type:   "Plan",
			Field:  "Next",
			Reason: "must not be lower than Current",
			Value:  p.Next.String(),
		}
	}
	if !p.Override && p.Bump == change.BumpNone && !p.Next.Equal(p.Current) {
		return &dxerrors.ValidationError{
			Type:   "Plan",
			Field:  "Next",
			Reason: "must equal Current when nothing is bumped",
			Value:  p.Next.String(),
		}
	}
	if err := model.ValidateAll(p.Commits); err != nil {
		return fmt.Errorf("Plan.Commits: %w", err)
	}
	return nil
}

type plan Plan

// MarshalJSON validates and encodes the Plan.
func (p Plan) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(plan(p))
}

// UnmarshalJSON decodes and validates the Plan.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var decoded plan
	if err := json.Unmarshal(data, &decoded); err != nil {
		return &dxerrors.UnmarshalError{Type: "Plan", Data: data, Reason: err.Error()}
	}
	if err := Plan(decoded).Validate(); err != nil {
		return err
	}
	*p = Plan(decoded)
	return nil
}

// MarshalYAML validates and encodes the Plan.
func (p Plan) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return plan(p), nil
}

// UnmarshalYAML decodes and validates the Plan.
func (p *Plan) UnmarshalYAML(node *yaml.Node) error {
	var decoded plan
	if err := node.Decode(&decoded); err != nil {
		return &dxerrors.UnmarshalError{Type: "Plan", Data: []byte(node.Value), Reason: err.Error()}
	}
	if err := Plan(decoded).Validate(); err != nil {
		return err
	}
	*p = Plan(decoded)
	return nil
}
