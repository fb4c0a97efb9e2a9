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

package changelog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dxbump/dxcore/changelog"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/git"
	"dirpx.dev/dxbump/dxcore/model/semver"
)

func parse(hash, message string) conventional.Commit {
	return conventional.Parse(git.RawCommit{Hash: git.Hash(hash), Message: message})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	c, err := changelog.Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "CHANGELOG.md"), c.FilePath())
	assert.False(t, c.Exists())
	assert.Empty(t, c.Content())
	assert.NoFileExists(t, c.FilePath())
}

func TestDiscover_LoadsExistingContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# Changes\n"), 0o644))

	c, err := changelog.Discover(dir)
	require.NoError(t, err)
	assert.True(t, c.Exists())
	assert.Equal(t, "# Changes\n", c.Content())
}

func TestDiscover_RejectsMissingOrFileDir(t *testing.T) {
	_, err := changelog.Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = changelog.Discover(file)
	assert.Error(t, err)
}

func TestWrite_EmptyCommitsStillWritesRelease(t *testing.T) {
	dir := t.TempDir()
	c, err := changelog.Discover(dir)
	require.NoError(t, err)

	require.NoError(t, c.Write(semver.MustParseVersion("1.1.0"), time.Time{}, changelog.PlainLinkBuilder{}, nil, false))

	assert.FileExists(t, c.FilePath())
	assert.Equal(t, "<a name=\"1.1.0\"></a>\n## 1.1.0 (1-1-1)\n\n", readFile(t, c.FilePath()))
	assert.True(t, c.Exists())
}

func TestWrite_FixFeatAndBreakingCommits(t *testing.T) {
	c, err := changelog.Discover(t.TempDir())
	require.NoError(t, err)

	commits := []conventional.Commit{
		parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a fix"),
		parse("b360d6a307909c6e571b29d4a329fd786c5d4543", "feat: a feature"),
		parse("c360d6a307909c6e571b29d4a329fd786c5d4543", "feat: a breaking change feature\nBREAKING CHANGE: this will break everything"),
	}
	require.NoError(t, c.Write(semver.MustParseVersion("1.1.0"), time.Time{}, changelog.PlainLinkBuilder{}, commits, false))

	want := "<a name=\"1.1.0\"></a>\n## 1.1.0 (1-1-1)\n\n" +
		"### Breaking Changes\n\n* a breaking change feature\n\n" +
		"### Features\n\n* a feature\n\n" +
		"### Bug Fixes\n\n* a fix\n\n"
	assert.Equal(t, want, readFile(t, c.FilePath()))
}

func TestWrite_KeepsHeaderWithoutReleases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"),
		[]byte("# Should be kept by versionize\n\nSome information about the changelog"), 0o644))

	c, err := changelog.Discover(dir)
	require.NoError(t, err)

	commits := []conventional.Commit{parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a fix in version 1.0.0")}
	require.NoError(t, c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, changelog.PlainLinkBuilder{}, commits, false))

	assert.Equal(t,
		"# Should be kept by versionize\n\nSome information about the changelog\n\n<a name=\"1.0.0\"></a>\n## 1.0.0 (1-1-1)\n\n### Bug Fixes\n\n* a fix in version 1.0.0\n\n",
		readFile(t, c.FilePath()))
}

func TestWrite_GithubLinks(t *testing.T) {
	for _, remote := range []string{
		"https://github.com/organization/repository.git",
		"git@github.com:organization/repository.git",
	} {
		t.Run(remote, func(t *testing.T) {
			links, err := changelog.NewGithubLinkBuilder(remote)
			require.NoError(t, err)

			c, err := changelog.Discover(t.TempDir())
			require.NoError(t, err)

			commits := []conventional.Commit{parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a fix in version 1.0.0")}
			require.NoError(t, c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, links, commits, false))

			content := readFile(t, c.FilePath())
			assert.Contains(t, content, "* a fix in version 1.0.0 ([a360d6a](https://www.github.com/organization/repository/commit/a360d6a307909c6e571b29d4a329fd786c5d4543))")
			assert.Contains(t, content, "## [1.0.0](https://www.github.com/organization/repository/releases/tag/v1.0.0)")
		})
	}
}

func TestWrite_SequentialReleasesNewestFirst(t *testing.T) {
	c, err := changelog.Discover(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, changelog.PlainLinkBuilder{},
		[]conventional.Commit{parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a fix in version 1.0.0")}, false))
	require.NoError(t, c.Write(semver.MustParseVersion("1.1.0"), time.Time{}, changelog.PlainLinkBuilder{},
		[]conventional.Commit{parse("b360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a fix in version 1.1.0")}, false))

	content := readFile(t, c.FilePath())
	assert.Contains(t, content, "<a name=\"1.0.0\"></a>")
	assert.Contains(t, content, "a fix in version 1.0.0")
	assert.Contains(t, content, "<a name=\"1.1.0\"></a>")
	assert.Contains(t, content, "a fix in version 1.1.0")
	assert.Less(t, strings.Index(content, `<a name="1.1.0">`), strings.Index(content, `<a name="1.0.0">`))
	assert.Equal(t, content, c.Content())

	releases := c.Releases()
	require.Len(t, releases, 2)
	assert.Equal(t, "1.1.0", releases[0].Version)
	assert.Equal(t, "1.0.0", releases[1].Version)
	assert.Equal(t, content, releases[0].Text+releases[1].Text)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "1.1.0", latest.Version)
}

func TestWrite_IncludeAll(t *testing.T) {
	commits := []conventional.Commit{
		parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "chore: nothing important"),
		parse("b360d6a307909c6e571b29d4a329fd786c5d4543", "chore: some foo bar"),
	}

	c, err := changelog.Discover(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Write(semver.MustParseVersion("1.1.0"), time.Time{}, changelog.PlainLinkBuilder{}, commits, true))

	content := readFile(t, c.FilePath())
	assert.Contains(t, content, "nothing important")
	assert.Contains(t, content, "some foo bar")

	filtered, err := changelog.Discover(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, filtered.Write(semver.MustParseVersion("1.1.0"), time.Time{}, changelog.PlainLinkBuilder{}, commits, false))
	assert.NotContains(t, readFile(t, filtered.FilePath()), "nothing important")
}

func TestWrite_InvalidCommitLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("# Keep\n"), 0o644))

	c, err := changelog.Discover(dir)
	require.NoError(t, err)

	bad := conventional.Commit{Type: conventional.Fix, Subject: "multi\nline"}
	err = c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, changelog.PlainLinkBuilder{}, []conventional.Commit{bad}, false)
	require.Error(t, err)

	assert.Equal(t, "# Keep\n", readFile(t, path))
	assert.Equal(t, "# Keep\n", c.Content())
}

func TestWrite_OddlyFormattedCommitsStillRelease(t *testing.T) {
	c, err := changelog.Discover(t.TempDir())
	require.NoError(t, err)

	commits := []conventional.Commit{
		parse("a360d6a307909c6e571b29d4a329fd786c5d4543", "fix: a\rb"),
		parse("abc", "fix: short id"),
		parse("not-hex", "feat: odd id"),
	}
	require.NoError(t, c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, changelog.PlainLinkBuilder{}, commits, false))

	assert.Equal(t,
		"<a name=\"1.0.0\"></a>\n## 1.0.0 (1-1-1)\n\n### Features\n\n* odd id\n\n### Bug Fixes\n\n* a\n* short id\n\n",
		readFile(t, c.FilePath()))
}

func TestWrite_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	c, err := changelog.Discover(dir)
	require.NoError(t, err)
	require.NoError(t, c.Write(semver.MustParseVersion("0.1.0"), time.Time{}, nil, nil, false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CHANGELOG.md", entries[0].Name())
}

func TestHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"),
		[]byte("# Changelog\n\n<a name=\"1.0.0\"></a>\n## 1.0.0 (2024-1-2)\n\n"), 0o644))

	c, err := changelog.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n\n", c.Header())
	require.Len(t, c.Releases(), 1)
}

func TestWrite_HeaderWithNonVersionAnchor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"),
		[]byte("<a name=\"top\"></a>\n# Changelog\n\nintro"), 0o644))

	c, err := changelog.Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, c.Releases())

	require.NoError(t, c.Write(semver.MustParseVersion("1.0.0"), time.Time{}, changelog.PlainLinkBuilder{},
		[]conventional.Commit{parse("", "fix: x")}, false))

	assert.Equal(t,
		"<a name=\"top\"></a>\n# Changelog\n\nintro\n\n<a name=\"1.0.0\"></a>\n## 1.0.0 (1-1-1)\n\n### Bug Fixes\n\n* x\n\n",
		readFile(t, c.FilePath()))
	assert.Equal(t, "<a name=\"top\"></a>\n# Changelog\n\nintro\n\n", c.Header())

	releases := c.Releases()
	require.Len(t, releases, 1)
	assert.Equal(t, "1.0.0", releases[0].Version)
}
