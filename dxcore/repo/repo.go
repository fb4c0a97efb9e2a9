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

// Package repo reads release history from a git repository with go-git.
//
// The package is read-only: it lists tags and commits and reads remote URLs,
// and never writes objects or references.
package repo

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	xsemver "golang.org/x/mod/semver"

	"dirpx.dev/dxbump/dxcore/model/git"
	"dirpx.dev/dxbump/dxcore/release"
)

// ErrRemoteNotFound is returned by RemoteURL for an unknown remote name.
var ErrRemoteNotFound = errors.New("dxbump: git remote not found")

// Repository is a read-only view over a git repository.
type Repository struct {
	repo *gogit.Repository
	log  zerolog.Logger
}

var _ release.History = (*Repository)(nil)

// Open opens the repository containing path, walking up to the enclosing
// .git directory.
func Open(path string, logger zerolog.Logger) (*Repository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return &Repository{
		repo: r,
		log:  logger.With().Str("component", "repo").Logger(),
	}, nil
}

// RemoteURL returns the first URL configured for the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s has no URL", ErrRemoteNotFound, name)
	}
	return urls[0], nil
}

// Tags lists every tag that resolves to a commit. Annotated tags are peeled
// to their target commit; tags on trees or blobs are skipped.
func (r *Repository) Tags(ctx context.Context) ([]git.Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []git.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag := git.Tag{Name: ref.Name().Short(), Commit: git.Hash(ref.Hash().String())}

		obj, err := r.repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			commit, err := obj.Commit()
			if errors.Is(err, object.ErrUnsupportedObject) {
				r.log.Debug().Str("tag", tag.Name).Msg("skipping tag that does not point to a commit")
				return nil
			}
			if err != nil {
				return fmt.Errorf("resolving tag %s: %w", tag.Name, err)
			}
			tag.Commit = git.Hash(commit.Hash.String())
			tag.Annotated = true
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// lightweight tag
		default:
			return fmt.Errorf("reading tag %s: %w", tag.Name, err)
		}

		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// LatestRelease returns the tag with the highest semantic version among tags
// named v<MAJOR>.<MINOR>.<PATCH>[-PRERELEASE][+BUILD]. Other tags are ignored.
func (r *Repository) LatestRelease(ctx context.Context) (git.Tag, bool, error) {
	tags, err := r.Tags(ctx)
	if err != nil {
		return git.Tag{}, false, err
	}

	var (
		latest git.Tag
		found  bool
	)
	for _, tag := range tags {
		if !isReleaseTag(tag) {
			continue
		}
		if !found || xsemver.Compare(tag.Name, latest.Name) > 0 {
			latest = tag
			found = true
		}
	}

	if found {
		r.log.Debug().Str("tag", latest.Name).Str("commit", latest.Commit.Short()).Msg("latest release tag")
	}
	return latest, found, nil
}

// isReleaseTag rejects the shorthand forms x/mod accepts ("v1", "v1.2") so
// that every release tag also parses as a full version.
func isReleaseTag(tag git.Tag) bool {
	if !xsemver.IsValid(tag.Name) {
		return false
	}
	_, ok := tag.Version()
	return ok
}

// CommitsSince returns the commits reachable from HEAD that are not
// reachable from since, newest first by committer time. A zero since lists
// the whole history. A repository without commits yields no commits.
func (r *Repository) CommitsSince(ctx context.Context, since git.Tag) ([]git.RawCommit, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	released := make(map[plumbing.Hash]struct{})
	if !since.IsZero() {
		if err := r.walk(ctx, plumbing.NewHash(string(since.Commit)), func(c *object.Commit) {
			released[c.Hash] = struct{}{}
		}); err != nil {
			return nil, fmt.Errorf("walking history of %s: %w", since.Name, err)
		}
	}

	var commits []git.RawCommit
	err = r.walk(ctx, head.Hash(), func(c *object.Commit) {
		if _, ok := released[c.Hash]; ok {
			return
		}
		commits = append(commits, git.RawCommit{Hash: git.Hash(c.Hash.String()), Message: c.Message})
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of HEAD: %w", err)
	}

	r.log.Debug().Str("since", since.Name).Int("commits", len(commits)).Msg("collected commits")
	return commits, nil
}

func (r *Repository) walk(ctx context.Context, from plumbing.Hash, visit func(*object.Commit)) error {
	iter, err := r.repo.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(c)
		return nil
	})
}
