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

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/dxbump/dxcore/release"
)

func newReleaseCommand(a *app) *cobra.Command {
	var opts release.ReleaseOptions

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Write the changelog section and the new version",
		Long: `Write the changelog section for the next version and update the
configured version file.

When no commit since the last release is a breaking change, a feature or
a fix, release stops with an error unless --allow-empty is given, in which
case a patch release is cut.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.releaser()
			if err != nil {
				return err
			}

			p, err := r.Release(cmd.Context(), opts)
			if errors.Is(err, release.ErrNothingToRelease) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Version %s was not affected by the commits since the last release.\n", p.Current)
				fmt.Fprintln(cmd.ErrOrStderr(), "Use --allow-empty to cut a release anyway.")
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Released %s (%s)\n", p.Next, p.Bump)
			fmt.Fprintf(cmd.OutOrStdout(), "Review the changes, commit them and tag the release with: git tag %s\n", p.Tag())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.AllowEmpty, "allow-empty", false, "Cut a patch release even without releasable commits")
	cmd.Flags().StringVar(&opts.ReleaseAs, "release-as", "", "Release this version instead of the derived one")
	return cmd
}
