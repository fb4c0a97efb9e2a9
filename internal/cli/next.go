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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dirpx.dev/dxbump/dxcore/model"
	"dirpx.dev/dxbump/dxcore/release"
)

// Output formats of the next command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newNextCommand(a *app) *cobra.Command {
	var (
		format    string
		releaseAs string
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next version without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("--format must be %s, %s or %s", formatText, formatJSON, formatYAML)
			}

			r, err := a.releaser()
			if err != nil {
				return err
			}
			p, err := r.Plan(cmd.Context(), releaseAs)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), p, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&releaseAs, "release-as", "", "Use this version instead of the derived one")
	return cmd
}

func writePlan(w io.Writer, p release.Plan, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case formatJSON:
		data, err = model.ToJSON(p)
		if err == nil {
			data = append(data, '\n')
		}
	case formatYAML:
		data, err = model.ToYAML(p)
	default:
		_, err = io.WriteString(w, planText(p))
		return err
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func planText(p release.Plan) string {
	s := p.String() + "\n"
	if !p.Releasable() {
		s += "nothing to release\n"
	}
	for _, c := range p.Commits {
		s += "  " + c.String() + "\n"
	}
	return s
}
