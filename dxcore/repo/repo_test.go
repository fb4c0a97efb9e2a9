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

package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dxbump/dxcore/model/git"
	"dirpx.dev/dxbump/dxcore/repo"
	"dirpx.dev/dxbump/internal/testrepo"
)

func open(t *testing.T, dir string) *repo.Repository {
	t.Helper()
	r, err := repo.Open(dir, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func messages(commits []git.RawCommit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.Summary())
	}
	return out
}

func TestOpen_DetectsDotGitFromSubdirectory(t *testing.T) {
	tr := testrepo.New(t)
	tr.Commit("feat: initial")

	sub := filepath.Join(tr.Dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, err := repo.Open(sub, zerolog.Nop())
	require.NoError(t, err)
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := repo.Open(t.TempDir(), zerolog.Nop())
	assert.Error(t, err)
}

func TestCommitsSince_EmptyRepository(t *testing.T) {
	tr := testrepo.New(t)

	commits, err := open(t, tr.Dir).CommitsSince(context.Background(), git.Tag{})
	require.NoError(t, err)
	assert.Empty(t, commits)

	_, found, err := open(t, tr.Dir).LatestRelease(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCommitsSince_WholeHistoryNewestFirst(t *testing.T) {
	tr := testrepo.New(t)
	first := tr.Commit("feat: first")
	tr.Commit("fix: second")
	tr.Commit("chore: third\n\nwith a body")

	commits, err := open(t, tr.Dir).CommitsSince(context.Background(), git.Tag{})
	require.NoError(t, err)
	assert.Equal(t, []string{"chore: third", "fix: second", "feat: first"}, messages(commits))
	assert.Equal(t, git.Hash(first.String()), commits[2].Hash)
	assert.Equal(t, "chore: third\n\nwith a body", strings.TrimRight(commits[0].Message, "\n"))
}

func TestCommitsSince_StopsAtReleaseTag(t *testing.T) {
	tr := testrepo.New(t)
	tr.Commit("feat: first")
	released := tr.Commit("fix: released")
	tr.Tag("v1.0.0", released)
	tr.Commit("feat: after")
	tr.Commit("fix: latest")

	r := open(t, tr.Dir)
	tag, found, err := r.LatestRelease(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v1.0.0", tag.Name)
	assert.Equal(t, git.Hash(released.String()), tag.Commit)

	commits, err := r.CommitsSince(context.Background(), tag)
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: latest", "feat: after"}, messages(commits))
}

func TestLatestRelease_PicksHighestVersion(t *testing.T) {
	tr := testrepo.New(t)
	a := tr.Commit("feat: a")
	b := tr.Commit("feat: b")
	c := tr.Commit("feat: c")
	d := tr.Commit("feat: d")

	tr.Tag("v1.9.0", a)
	tr.AnnotatedTag("v1.10.0", b)
	tr.Tag("v2.0.0-rc.1", c)
	tr.Tag("release-candidate", d)
	tr.Tag("v3", d)

	tag, found, err := open(t, tr.Dir).LatestRelease(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v2.0.0-rc.1", tag.Name)
	assert.Equal(t, git.Hash(c.String()), tag.Commit)
}

func TestTags_PeelsAnnotatedTags(t *testing.T) {
	tr := testrepo.New(t)
	h := tr.Commit("feat: a")
	tr.AnnotatedTag("v0.1.0", h)
	tr.Tag("v0.0.1", h)

	tags, err := open(t, tr.Dir).Tags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)

	byName := map[string]git.Tag{}
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	assert.True(t, byName["v0.1.0"].Annotated)
	assert.False(t, byName["v0.0.1"].Annotated)
	assert.Equal(t, git.Hash(h.String()), byName["v0.1.0"].Commit)
	assert.Equal(t, git.Hash(h.String()), byName["v0.0.1"].Commit)
}

func TestCommitsSince_CancelledContext(t *testing.T) {
	tr := testrepo.New(t)
	tr.Commit("feat: a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := open(t, tr.Dir).CommitsSince(ctx, git.Tag{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteURL(t *testing.T) {
	tr := testrepo.New(t)
	tr.AddRemote("origin", "git@github.com:organization/repository.git")

	r := open(t, tr.Dir)
	url, err := r.RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:organization/repository.git", url)

	_, err = r.RemoteURL("upstream")
	assert.ErrorIs(t, err, repo.ErrRemoteNotFound)
}
