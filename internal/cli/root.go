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

// Package cli implements the dxbump command tree.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dirpx.dev/dxbump/dxcore/changelog"
	"dirpx.dev/dxbump/dxcore/config"
	"dirpx.dev/dxbump/dxcore/release"
	"dirpx.dev/dxbump/dxcore/repo"
)

// app carries the state shared by subcommands once the persistent flags and
// the configuration have been read.
type app struct {
	version    string
	dir        string
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

// Execute runs the command tree against os.Args.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "dxbump",
		Short: "Version and changelog automation from Conventional Commits",
		Long: `dxbump reads the commits since the last v-prefixed release tag, decides
the next semantic version and prepends the release notes to CHANGELOG.md.

It never commits, tags or pushes; tag the release yourself once the
changes are reviewed.

Examples:
  dxbump next                   # show the planned version
  dxbump next --format json     # the plan as JSON
  dxbump release                # write CHANGELOG.md and the version file
  dxbump release --release-as 2.0.0`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Repository directory")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default <dir>/"+config.FileName+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level (trace, debug, info, warn, error)")

	root.AddCommand(newNextCommand(a), newReleaseCommand(a), newVersionCommand(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{Path: a.configPath, Dir: a.dir})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := cfg.Log.Logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	a.cfg = cfg
	a.log = logger
	return nil
}

// releaser wires the repository, link builder, policy and manifests named by
// the configuration.
func (a *app) releaser() (*release.Releaser, error) {
	r, err := repo.Open(a.dir, a.log)
	if err != nil {
		return nil, err
	}

	links, err := a.links(r)
	if err != nil {
		return nil, err
	}

	policy, err := a.cfg.Policy()
	if err != nil {
		return nil, err
	}

	var manifests release.Manifests
	if a.cfg.VersionFile != "" {
		path := a.cfg.VersionFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.dir, path)
		}
		manifests = append(manifests, release.NewVersionFile(path))
	}

	return release.New(r, release.Options{
		Policy:       policy,
		ChangelogDir: a.cfg.ChangelogDir(a.dir),
		IncludeAll:   a.cfg.Changelog.IncludeAll,
		Links:        links,
		Manifests:    manifests,
		Logger:       a.log,
	})
}

func (a *app) links(r *repo.Repository) (changelog.LinkBuilder, error) {
	if a.cfg.Links == changelog.LinksPlain {
		return changelog.PlainLinkBuilder{}, nil
	}

	url := a.cfg.RemoteURL
	if url == "" {
		remote, err := r.RemoteURL(a.cfg.Remote)
		switch {
		case err == nil:
			url = remote
		case errors.Is(err, repo.ErrRemoteNotFound) && a.cfg.Links == changelog.LinksAuto:
			a.log.Debug().Str("remote", a.cfg.Remote).Msg("no remote, using plain links")
		default:
			return nil, err
		}
	}

	return changelog.ResolveLinkBuilder(a.cfg.Links, url)
}
