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

package changelog

import (
	"strings"

	"dirpx.dev/dxbump/dxcore/errors"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/git"
	"dirpx.dev/dxbump/dxcore/model/semver"
)

// LinkBuilder turns commits and versions into hyperlinks for the rendered
// changelog. An empty string means "no link": the renderer then emits the
// bare version heading or omits the commit suffix.
type LinkBuilder interface {
	// CommitLink returns the URL of the commit page, or "".
	CommitLink(c conventional.Commit) string

	// VersionLink returns the URL of the release page, or "".
	VersionLink(v semver.Version) string
}

// Link modes accepted by ResolveLinkBuilder.
const (
	LinksAuto   = "auto"
	LinksPlain  = "plain"
	LinksGitHub = "github"
)

// PlainLinkBuilder produces no links.
type PlainLinkBuilder struct{}

var _ LinkBuilder = PlainLinkBuilder{}

// CommitLink returns "".
func (PlainLinkBuilder) CommitLink(conventional.Commit) string { return "" }

// VersionLink returns "".
func (PlainLinkBuilder) VersionLink(semver.Version) string { return "" }

// GithubLinkBuilder links to commit and release pages of a GitHub
// repository. HTTPS and SSH remotes of the same repository produce identical
// links.
type GithubLinkBuilder struct {
	base string
}

var _ LinkBuilder = (*GithubLinkBuilder)(nil)

// NewGithubLinkBuilder builds a GithubLinkBuilder from a git remote URL such
// as "https://github.com/org/repo.git" or "git@github.com:org/repo.git".
//
// Any other remote is rejected with *errors.ConfigError.
func NewGithubLinkBuilder(remoteURL string) (*GithubLinkBuilder, error) {
	remote, err := git.ParseRemote(remoteURL)
	if err != nil {
		return nil, &errors.ConfigError{Key: "remote_url", Value: remoteURL, Reason: err.Error()}
	}
	if !remote.IsGitHub() {
		return nil, &errors.ConfigError{Key: "remote_url", Value: remoteURL, Reason: "not a github.com remote"}
	}
	return &GithubLinkBuilder{
		base: "https://www.github.com/" + remote.Owner + "/" + remote.Repo,
	}, nil
}

// BaseURL returns "https://www.github.com/<org>/<repo>".
func (b *GithubLinkBuilder) BaseURL() string {
	return b.base
}

// CommitLink returns ".../commit/<full hash>", or "" for a commit without
// hash.
func (b *GithubLinkBuilder) CommitLink(c conventional.Commit) string {
	if c.Hash.IsZero() {
		return ""
	}
	return b.base + "/commit/" + c.Hash.String()
}

// VersionLink returns ".../releases/tag/v<version>".
func (b *GithubLinkBuilder) VersionLink(v semver.Version) string {
	return b.base + "/releases/tag/" + v.Tag()
}

// ResolveLinkBuilder picks a LinkBuilder for a configured mode.
//
//	"plain"  -> PlainLinkBuilder
//	"github" -> NewGithubLinkBuilder(remoteURL); errors are returned
//	"auto"   -> GitHub links when remoteURL is a GitHub remote
//
// In auto mode an empty remote, a local path or a remote on another host gives
// plain links. A remote that names github.com but cannot be parsed as
// owner/repo is a *errors.ConfigError rather than a silent plain fallback.
//
// An unknown mode is a *errors.ConfigError.
func ResolveLinkBuilder(mode, remoteURL string) (LinkBuilder, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case LinksPlain:
		return PlainLinkBuilder{}, nil
	case LinksGitHub:
		return githubLinks(remoteURL)
	case LinksAuto, "":
		if strings.TrimSpace(remoteURL) == "" {
			return PlainLinkBuilder{}, nil
		}
		if r, err := git.ParseRemote(remoteURL); err == nil && !r.IsGitHub() {
			return PlainLinkBuilder{}, nil
		}
		if !strings.Contains(strings.ToLower(remoteURL), "github.com") {
			return PlainLinkBuilder{}, nil
		}
		return githubLinks(remoteURL)
	default:
		return nil, &errors.ConfigError{Key: "links", Value: mode, Reason: "must be one of auto, plain, github"}
	}
}

func githubLinks(remoteURL string) (LinkBuilder, error) {
	gh, err := NewGithubLinkBuilder(remoteURL)
	if err != nil {
		return nil, err
	}
	return gh, nil
}
