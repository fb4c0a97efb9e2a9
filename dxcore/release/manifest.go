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
	"errors"
	"fmt"
	"os"
	"strings"

	"dirpx.dev/dxbump/dxcore/model/semver"
	"dirpx.dev/rxmerr"
)

var (
	// ErrNoManifests is returned by Manifests.Version when nothing was
	// registered.
	ErrNoManifests = errors.New("dxbump: no version manifests")

	// ErrInconsistentVersions is returned when registered manifests disagree
	// on the current version.
	ErrInconsistentVersions = errors.New("dxbump: manifests carry inconsistent versions")
)

// Manifest is a version-bearing file that a release rewrites.
type Manifest interface {
	// Path identifies the manifest in logs and errors.
	Path() string

	// Version reads the version the manifest currently carries.
	Version() (semver.Version, error)

	// WriteVersion persists v into the manifest.
	WriteVersion(v semver.Version) error
}

// Manifests fans a version out to every registered Manifest.
type Manifests []Manifest

// IsEmpty reports whether no manifest is registered.
func (m Manifests) IsEmpty() bool {
	return len(m) == 0
}

// Paths lists the manifest paths in registration order.
func (m Manifests) Paths() []string {
	paths := make([]string, 0, len(m))
	for _, manifest := range m {
		paths = append(paths, manifest.Path())
	}
	return paths
}

// Version returns the version shared by all manifests.
//
// It fails with ErrNoManifests when the set is empty and with
// ErrInconsistentVersions when any manifest disagrees with the first one.
func (m Manifests) Version() (semver.Version, error) {
	if m.IsEmpty() {
		return semver.Version{}, ErrNoManifests
	}

	first, err := m[0].Version()
	if err != nil {
		return semver.Version{}, fmt.Errorf("reading %s: %w", m[0].Path(), err)
	}

	for _, manifest := range m[1:] {
		v, err := manifest.Version()
		if err != nil {
			return semver.Version{}, fmt.Errorf("reading %s: %w", manifest.Path(), err)
		}
		if !v.Equal(first) {
			return semver.Version{}, fmt.Errorf("%w: %s has %s, %s has %s",
				ErrInconsistentVersions, m[0].Path(), first, manifest.Path(), v)
		}
	}

	return first, nil
}

// HasInconsistentVersioning reports whether the manifests cannot agree on a
// single current version. An empty set counts as inconsistent.
func (m Manifests) HasInconsistentVersioning() bool {
	_, err := m.Version()
	return err != nil
}

// WriteVersion writes v into every manifest.
//
// A failing manifest does not stop the others; all failures are returned
// together.
func (m Manifests) WriteVersion(v semver.Version) error {
	if err := v.Validate(); err != nil {
		return err
	}

	c := rxmerr.NewCollector()
	for _, manifest := range m {
		if err := manifest.WriteVersion(v); err != nil {
			c.Append(fmt.Errorf("writing %s: %w", manifest.Path(), err))
		}
	}
	return c.Err()
}

// VersionFile is a plain-text manifest holding a single version line such
// as "1.4.0".
type VersionFile struct {
	path string
}

var _ Manifest = (*VersionFile)(nil)

// NewVersionFile binds a VersionFile to path. The file is not touched.
func NewVersionFile(path string) *VersionFile {
	return &VersionFile{path: path}
}

// Path returns the bound file path.
func (f *VersionFile) Path() string {
	return f.path
}

// Version parses the file content. A missing file reads as 0.0.0 so that the
// first release creates it.
func (f *VersionFile) Version() (semver.Version, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return semver.Version{}, nil
	}
	if err != nil {
		return semver.Version{}, err
	}
	return semver.ParseVersion(strings.TrimSpace(string(data)))
}

// WriteVersion replaces the file content with v followed by a newline.
func (f *VersionFile) WriteVersion(v semver.Version) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(v.String()+"\n"), 0o644)
}
