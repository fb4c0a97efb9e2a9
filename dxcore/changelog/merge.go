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

	"dirpx.dev/dxbump/dxcore/model/semver"
)

// AnchorMarker is the text every release block starts with.
const AnchorMarker = `<a name="`

const anchorEnd = `"></a>`

// nextAnchor finds the first release anchor at or after from: an
// `<a name="V"></a>` whose V is a semantic version. Other HTML anchors are
// skipped. It returns the anchor offset and V, or -1.
func nextAnchor(s string, from int) (int, string) {
	for from < len(s) {
		i := strings.Index(s[from:], AnchorMarker)
		if i == -1 {
			return -1, ""
		}
		start := from + i
		rest := s[start+len(AnchorMarker):]
		if end := strings.Index(rest, anchorEnd); end != -1 {
			name := rest[:end]
			if _, err := semver.ParseVersion(name); err == nil {
				return start, name
			}
		}
		from = start + len(AnchorMarker)
	}
	return -1, ""
}

// Merge inserts a release block into existing changelog text.
//
//   - Blank existing text: the block becomes the whole document.
//   - Text without any release anchor: the block is appended after a blank
//     line, so a hand-written header stays on top.
//   - Otherwise: the block goes immediately before the first release anchor,
//     making it the newest release while keeping everything else byte for
//     byte. Anchors whose name is not a version belong to the header.
func Merge(existing, block string) string {
	if strings.TrimSpace(existing) == "" {
		return block
	}

	idx, _ := nextAnchor(existing, 0)
	if idx == -1 {
		return existing + "\n\n" + block
	}

	return existing[:idx] + block + existing[idx:]
}
