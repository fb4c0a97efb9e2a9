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

package change

import (
	"fmt"
	"slices"

	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/semver"
)

// Policy is the rule that turns parsed commits into a Bump.
//
// Classification of a single commit:
//
//	Breaking                 -> BumpMajor
//	Type == Feat             -> BumpMinor
//	Type listed in PatchTypes -> BumpPatch
//	anything else            -> BumpNone
//
// Strategy decides how per-commit bumps combine. MaxSeverity (the default)
// applies only the most severe one, which makes the result independent of
// commit order. Sequential replays each commit oldest-first.
type Policy struct {
	// Strategy selects how commits are folded into the next version.
	Strategy model.Strategy

	// PatchTypes lists the commit types that release a patch. Feat and
	// breaking changes are always release-worthy and need not be listed.
	PatchTypes []conventional.Type
}

// DefaultPolicy returns the Conventional Commits rule: max-severity with
// only fix commits releasing a patch.
func DefaultPolicy() Policy {
	return Policy{
		Strategy:   model.MaxSeverity,
		PatchTypes: []conventional.Type{conventional.Fix},
	}
}

// Validate checks the strategy and every patch type.
func (p Policy) Validate() error {
	if err := p.Strategy.Validate(); err != nil {
		return fmt.Errorf("Policy.Strategy: %w", err)
	}
	for i, t := range p.PatchTypes {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("Policy.PatchTypes[%d]: %w", i, err)
		}
	}
	return nil
}

// Classify returns the bump a single commit calls for.
func (p Policy) Classify(c conventional.Commit) Bump {
	switch {
	case c.Breaking:
		return BumpMajor
	case c.Type == conventional.Feat:
		return BumpMinor
	case slices.Contains(p.PatchTypes, c.Type):
		return BumpPatch
	default:
		return BumpNone
	}
}

// Decide returns the most severe bump among commits. It ignores Strategy:
// the answer is the headline severity of the release either way.
func (p Policy) Decide(commits []conventional.Commit) Bump {
	bump := BumpNone
	for _, c := range commits {
		bump = bump.Max(p.Classify(c))
		if bump == BumpMajor {
			break
		}
	}
	return bump
}

// Next returns the version following current for the given commits.
//
// Commits are expected newest-first, the order git log reports them. Under
// MaxSeverity the order is irrelevant. Under Sequential the fold starts at
// the last element, so each commit bumps on top of the versions produced by
// the commits that preceded it in history.
func (p Policy) Next(current semver.Version, commits []conventional.Commit) semver.Version {
	if p.Strategy != model.Sequential {
		return p.Decide(commits).Apply(current)
	}

	next := current
	for i := len(commits) - 1; i >= 0; i-- {
		next = p.Classify(commits[i]).Apply(next)
	}
	return next
}

// Decide applies DefaultPolicy.
func Decide(commits []conventional.Commit) Bump {
	return DefaultPolicy().Decide(commits)
}

// NextVersion applies DefaultPolicy: breaking bumps major, else a feature
// bumps minor, else a fix bumps patch, else the version is returned
// unchanged. Only the highest rule fires and commit order does not matter.
func NextVersion(current semver.Version, commits []conventional.Commit) semver.Version {
	return DefaultPolicy().Next(current, commits)
}
