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
	"fmt"
	"strings"
	"time"

	"dirpx.dev/dxbump/dxcore/model/conventional"
	"dirpx.dev/dxbump/dxcore/model/semver"
)

// Section titles.
const (
	TitleBreaking = "Breaking Changes"
	TitleFeatures = "Features"
	TitleFixes    = "Bug Fixes"
)

// extraSections lists, in rendering order, the sections that appear only
// when every commit type is included.
var extraSections = []struct {
	typ   conventional.Type
	title string
}{
	{conventional.Perf, "Performance Improvements"},
	{conventional.Revert, "Reverts"},
	{conventional.Docs, "Documentation"},
	{conventional.Style, "Styles"},
	{conventional.Refactor, "Code Refactoring"},
	{conventional.Test, "Tests"},
	{conventional.Build, "Build System"},
	{conventional.CI, "Continuous Integration"},
	{conventional.Chore, "Chores"},
	{conventional.Other, "Other Changes"},
}

type section struct {
	title   string
	commits []conventional.Commit
}

// Render returns the Markdown block for one release:
//
//	<a name="1.1.0"></a>
//	## 1.1.0 (2025-3-7)
//
//	### Features
//
//	* **api:** add pagination
//
// Without includeAll only breaking changes, features and fixes are listed.
// Each commit lands in exactly one section: breaking commits go to Breaking
// Changes regardless of type. Sections keep the input order of commits and
// empty sections are skipped; with no commits at all the block is just the
// anchor and heading.
func Render(v semver.Version, at time.Time, links LinkBuilder, commits []conventional.Commit, includeAll bool) string {
	if links == nil {
		links = PlainLinkBuilder{}
	}

	var b strings.Builder
	b.WriteString(Anchor(v))
	b.WriteString("\n")
	b.WriteString("## " + heading(v, links) + " (" + FormatDate(at) + ")\n\n")

	for _, s := range group(commits, includeAll) {
		if len(s.commits) == 0 {
			continue
		}
		b.WriteString("### " + s.title + "\n\n")
		for _, c := range s.commits {
			b.WriteString(bullet(c, links))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Anchor returns the HTML anchor that marks the start of a release block.
func Anchor(v semver.Version) string {
	return fmt.Sprintf(`<a name="%s"></a>`, v.String())
}

// FormatDate renders year-month-day without zero padding. The zero
// time.Time renders as "1-1-1".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

func heading(v semver.Version, links LinkBuilder) string {
	if link := links.VersionLink(v); link != "" {
		return "[" + v.String() + "](" + link + ")"
	}
	return v.String()
}

func bullet(c conventional.Commit, links LinkBuilder) string {
	var b strings.Builder
	b.WriteString("* ")
	if !c.Scope.IsZero() {
		b.WriteString("**" + c.Scope.String() + ":** ")
	}
	b.WriteString(c.Subject)
	if link := links.CommitLink(c); link != "" {
		b.WriteString(" ([" + c.Hash.Short() + "](" + link + "))")
	}
	b.WriteString("\n")
	return b.String()
}

// Releasable reports whether a commit is listed without includeAll.
func Releasable(c conventional.Commit) bool {
	return c.Breaking || c.Type == conventional.Feat || c.Type == conventional.Fix
}

func group(commits []conventional.Commit, includeAll bool) []section {
	breaking := section{title: TitleBreaking}
	features := section{title: TitleFeatures}
	fixes := section{title: TitleFixes}

	extras := make([]section, len(extraSections))
	index := make(map[conventional.Type]int, len(extraSections))
	for i, e := range extraSections {
		extras[i] = section{title: e.title}
		index[e.typ] = i
	}

	for _, c := range commits {
		if !includeAll && !Releasable(c) {
			continue
		}
		switch {
		case c.Breaking:
			breaking.commits = append(breaking.commits, c)
		case c.Type == conventional.Feat:
			features.commits = append(features.commits, c)
		case c.Type == conventional.Fix:
			fixes.commits = append(fixes.commits, c)
		default:
			if i, ok := index[c.Type]; ok {
				extras[i].commits = append(extras[i].commits, c)
			}
		}
	}

	return append([]section{breaking, features, fixes}, extras...)
}
