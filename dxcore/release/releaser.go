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

// Package release orchestrates one release of a source tree: it reads the
// commits since the last release tag, decides the next version, prepends the
// changelog section and writes the version into the registered manifests.
//
// The package never commits, tags or pushes. Creating the release tag from
// Plan.Tag is left to the caller.
package release

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dirpx.dev/dxbump/dxcore/changelog"
	"dirpx.dev/dxbump/dxcore/model/change"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/git"
	"dirpx.dev/dxbump/dxcore/model/semver"
	"github.com/rs/zerolog"
)

// ErrNothingToRelease is returned by Release when no commit since the last
// release warrants a new version and empty releases were not allowed.
var ErrNothingToRelease = errors.New("dxbump: no releasable commits since the last release")

// History is the read-only view of the version control system a Releaser
// needs.
type History interface {
	// LatestRelease returns the newest release tag, or false when the
	// repository has none.
	LatestRelease(ctx context.Context) (git.Tag, bool, error)

	// CommitsSince returns the commits reachable from HEAD but not from
	// since, newest first. A zero Tag selects the whole history.
	CommitsSince(ctx context.Context, since git.Tag) ([]git.RawCommit, error)
}

// Options configures a Releaser.
type Options struct {
	// Policy decides the bump. The zero value is the max-severity rule with
	// no patch-worthy types, so callers normally pass change.DefaultPolicy.
	Policy change.Policy

	// ChangelogDir is the directory holding CHANGELOG.md.
	ChangelogDir string

	// IncludeAll renders every commit type in the changelog, not only
	// breaking changes, features and fixes.
	IncludeAll bool

	// Links builds commit and version links. Nil means plain text.
	Links changelog.LinkBuilder

	// Manifests receive the new version. The current version is the
	// higher of their shared version and the latest release tag.
	Manifests Manifests

	// Logger receives progress events. The zero Logger is silent.
	Logger zerolog.Logger

	// Now stamps the changelog heading. Nil means time.Now.
	Now func() time.Time
}

// ReleaseOptions tunes a single Release call.
type ReleaseOptions struct {
	// ReleaseAs forces the next version instead of deriving it from the
	// commits. It must be greater than the current version.
	ReleaseAs string

	// AllowEmpty cuts a patch release when no commit warrants one.
	AllowEmpty bool
}

// Releaser plans and performs releases against a History.
type Releaser struct {
	history History
	opts    Options
	log     zerolog.Logger
	now     func() time.Time
}

// New validates opts and returns a Releaser reading from history.
func New(history History, opts Options) (*Releaser, error) {
	if history == nil {
		return nil, errors.New("dxbump: release history is required")
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("release policy: %w", err)
	}
	if opts.ChangelogDir == "" {
		opts.ChangelogDir = "."
	}
	if opts.Links == nil {
		opts.Links = changelog.PlainLinkBuilder{}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Releaser{
		history: history,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "release").Logger(),
		now:     now,
	}, nil
}

// Plan inspects the history and returns what a release would do. releaseAs,
// when non-empty, overrides the derived version. Nothing is written.
func (r *Releaser) Plan(ctx context.Context, releaseAs string) (Plan, error) {
	tag, found, err := r.history.LatestRelease(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("finding latest release: %w", err)
	}

	current, err := r.currentVersion(tag, found)
	if err != nil {
		return Plan{}, err
	}

	raw, err := r.history.CommitsSince(ctx, tag)
	if err != nil {
		return Plan{}, fmt.Errorf("listing commits: %w", err)
	}
	commits := conventional.ParseAll(raw)

	p := Plan{
		Current: current,
		Bump:    r.opts.Policy.Decide(commits),
		Next:    r.opts.Policy.Next(current, commits),
		Commits: commits,
	}

	if releaseAs != "" {
		forced, err := semver.ParseVersion(releaseAs)
		if err != nil {
			return Plan{}, fmt.Errorf("release-as: %w", err)
		}
		if !forced.Greater(current) {
			return Plan{}, fmt.Errorf("release-as: %s is not greater than the current version %s", forced, current)
		}
		p.Next = forced
		p.Override = true
	}

	r.log.Debug().
		Str("tag", tag.Name).
		Int("commits", len(commits)).
		Stringer("bump", p.Bump).
		Stringer("current", p.Current).
		Stringer("next", p.Next).
		Msg("planned release")

	return p, nil
}

// Release plans a release and, when it moves the version forward, writes the
// changelog section and then the manifests. The returned Plan describes what
// was written.
func (r *Releaser) Release(ctx context.Context, opts ReleaseOptions) (Plan, error) {
	p, err := r.Plan(ctx, opts.ReleaseAs)
	if err != nil {
		return Plan{}, err
	}

	if !p.Releasable() {
		if !opts.AllowEmpty {
			return p, ErrNothingToRelease
		}
		p.Next = p.Current.IncPatch()
		p.Override = true
		r.log.Info().Stringer("next", p.Next).Msg("no releasable commits, cutting an empty release")
	}

	if err := p.Validate(); err != nil {
		return Plan{}, err
	}

	cl, err := changelog.Discover(r.opts.ChangelogDir)
	if err != nil {
		return Plan{}, err
	}
	if err := cl.Write(p.Next, r.now(), r.opts.Links, p.Commits, r.opts.IncludeAll); err != nil {
		return Plan{}, fmt.Errorf("writing changelog: %w", err)
	}
	r.log.Info().Str("path", cl.FilePath()).Stringer("version", p.Next).Msg("changelog updated")

	if !r.opts.Manifests.IsEmpty() {
		if err := r.opts.Manifests.WriteVersion(p.Next); err != nil {
			return Plan{}, err
		}
		r.log.Info().Strs("paths", r.opts.Manifests.Paths()).Stringer("version", p.Next).Msg("manifests updated")
	}

	return p, nil
}

func (r *Releaser) currentVersion(tag git.Tag, found bool) (semver.Version, error) {
	var tagged semver.Version
	if found {
		v, ok := tag.Version()
		if !ok {
			return semver.Version{}, fmt.Errorf("release tag %q is not a version", tag.Name)
		}
		tagged = v
	}

	if r.opts.Manifests.IsEmpty() {
		return tagged, nil
	}

	v, err := r.opts.Manifests.Version()
	if err != nil {
		return semver.Version{}, err
	}
	if !found || v.Equal(tagged) {
		return v, nil
	}

	current := v
	if tagged.Greater(v) {
		current = tagged
	}
	r.log.Warn().
		Stringer("manifest", v).
		Str("tag", tag.Name).
		Stringer("using", current).
		Msg("manifest version differs from the latest release tag")
	return current, nil
}
