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

package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote is a hosted repository location extracted from a git remote URL.
//
// Both URL styles git understands resolve to the same Remote:
//
//	https://github.com/org/repo.git  -> {Host: "github.com", Owner: "org", Repo: "repo"}
//	git@github.com:org/repo.git      -> {Host: "github.com", Owner: "org", Repo: "repo"}
//	ssh://git@github.com/org/repo    -> {Host: "github.com", Owner: "org", Repo: "repo"}
type Remote struct {
	// Host is the lowercase host name without port.
	Host string

	// Owner is the user or organization that owns the repository.
	Owner string

	// Repo is the repository name without the ".git" suffix.
	Repo string
}

// ParseRemote parses a remote URL in HTTPS, SSH or SCP-like form.
//
// The path must have exactly two segments, owner and repository. Local paths
// and file:// URLs are rejected because they name no hosted repository.
func ParseRemote(rawURL string) (Remote, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Remote{}, fmt.Errorf("remote URL cannot be empty")
	}

	ep, err := transport.NewEndpoint(trimmed)
	if err != nil {
		return Remote{}, fmt.Errorf("invalid remote URL %q: %w", rawURL, err)
	}
	if ep.Protocol == "file" || ep.Host == "" {
		return Remote{}, fmt.Errorf("remote URL %q does not name a hosted repository", rawURL)
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Remote{}, fmt.Errorf("remote URL %q must have the form <host>/<owner>/<repo>", rawURL)
	}

	return Remote{
		Host:  strings.ToLower(ep.Host),
		Owner: owner,
		Repo:  repo,
	}, nil
}

// IsGitHub reports whether the remote is hosted on github.com.
func (r Remote) IsGitHub() bool {
	return r.Host == "github.com" || r.Host == "www.github.com"
}

// String renders "host/owner/repo".
func (r Remote) String() string {
	return r.Host + "/" + r.Owner + "/" + r.Repo
}
