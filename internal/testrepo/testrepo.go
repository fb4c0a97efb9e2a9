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

// Package testrepo builds throwaway git repositories for tests.
package testrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a git repository in a test temp directory. Commits get strictly
// increasing timestamps so history order is deterministic.
type Repo struct {
	t     testing.TB
	Dir   string
	Git   *gogit.Repository
	clock time.Time
	n     int
}

// New initialises an empty repository in t.TempDir().
func New(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	return &Repo{
		t:     t,
		Dir:   dir,
		Git:   r,
		clock: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *Repo) signature() *object.Signature {
	r.clock = r.clock.Add(time.Minute)
	return &object.Signature{Name: "Test", Email: "test@example.com", When: r.clock}
}

// Commit records a commit with message that touches a single tracked file.
func (r *Repo) Commit(message string) plumbing.Hash {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)

	r.n++
	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, "CHANGES"), []byte(fmt.Sprintf("change %d\n", r.n)), 0o644))
	_, err = wt.Add("CHANGES")
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: r.signature()})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag on hash.
func (r *Repo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Git.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag on hash.
func (r *Repo) AnnotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Git.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

// AddRemote registers a remote with a single URL.
func (r *Repo) AddRemote(name, url string) {
	r.t.Helper()
	_, err := r.Git.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(r.t, err)
}
