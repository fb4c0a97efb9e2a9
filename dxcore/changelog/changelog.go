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

// Package changelog renders release notes from parsed commits and merges
// them into a CHANGELOG.md without disturbing the text already there.
//
// A changelog document is an optional free-form header followed by release
// blocks, newest first. Each block starts with an HTML anchor naming its
// version, which is also how existing releases are found again:
//
//	# Changelog
//
//	<a name="1.1.0"></a>
//	## 1.1.0 (2025-3-7)
//	...
//	<a name="1.0.0"></a>
//	## 1.0.0 (2025-1-20)
//	...
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/semver"
)

// FileName is the changelog file name inside the project directory.
const FileName = "CHANGELOG.md"

// Changelog is a CHANGELOG.md bound to a directory, together with the
// content last read from or written to it.
//
// A Changelog is not safe for concurrent use, and two Changelogs bound to the
// same file overwrite each other. Serializing releases is up to the caller.
type Changelog struct {
	path    string
	content string
	exists  bool
}

// Release is one release block found in a changelog.
type Release struct {
	// Version is the text of the anchor name, for example "1.1.0".
	Version string

	// Text is the whole block, anchor included.
	Text string
}

// Discover binds the changelog of dir and loads its content when the file
// exists. It never creates the file; Write does.
//
// dir must be an existing directory.
func Discover(dir string) (*Changelog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("changelog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("changelog directory %s is not a directory", dir)
	}

	c := &Changelog{path: filepath.Join(dir, FileName)}

	data, err := os.ReadFile(c.path)
	switch {
	case err == nil:
		c.content = string(data)
		c.exists = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}

	return c, nil
}

// FilePath returns "<dir>/CHANGELOG.md".
func (c *Changelog) FilePath() string {
	return c.path
}

// Content returns the current document text.
func (c *Changelog) Content() string {
	return c.content
}

// Exists reports whether the file existed at Discover or has been written
// since.
func (c *Changelog) Exists() bool {
	return c.exists
}

// Write renders a release block, merges it into the current content and
// persists the whole document.
//
// Commits are validated first; nothing touches the disk if any is invalid.
// The file is replaced atomically through a temporary file in the same
// directory, and the in-memory content is updated only after the rename
// succeeds.
func (c *Changelog) Write(v semver.Version, at time.Time, links LinkBuilder, commits []conventional.Commit, includeAll bool) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("cannot render release: %w", err)
	}
	if err := model.ValidateAll(commits); err != nil {
		return fmt.Errorf("cannot render release %s: %w", v, err)
	}

	merged := Merge(c.content, Render(v, at, links, commits, includeAll))

	if err := atomicWriteFile(c.path, []byte(merged)); err != nil {
		return err
	}

	c.content = merged
	c.exists = true
	return nil
}

// Header returns the text before the first release anchor: the whole
// document when there is no release yet.
func (c *Changelog) Header() string {
	idx, _ := nextAnchor(c.content, 0)
	if idx == -1 {
		return c.content
	}
	return c.content[:idx]
}

// Releases returns the release blocks in document order, newest first.
func (c *Changelog) Releases() []Release {
	type anchor struct {
		start int
		name  string
	}

	var anchors []anchor
	for from := 0; ; {
		start, name := nextAnchor(c.content, from)
		if start == -1 {
			break
		}
		anchors = append(anchors, anchor{start, name})
		from = start + len(AnchorMarker)
	}

	out := make([]Release, 0, len(anchors))
	for k, a := range anchors {
		end := len(c.content)
		if k+1 < len(anchors) {
			end = anchors[k+1].start
		}
		out = append(out, Release{Version: a.name, Text: c.content[a.start:end]})
	}

	return out
}

// Latest returns the newest release block, if any.
func (c *Changelog) Latest() (Release, bool) {
	releases := c.Releases()
	if len(releases) == 0 {
		return Release{}, false
	}
	return releases[0], true
}

// atomicWriteFile writes data to a temporary file next to path and renames it
// into place.
func atomicWriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
