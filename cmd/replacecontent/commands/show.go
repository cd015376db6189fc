// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/replacecontent/cmd/replacecontent/opts"
	"gitlab.com/tozd/go/errors"
)

// NewShowCmd creates a new show command
func NewShowCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show what replacement would change",
		Long: `Show processes every content file without writing it.
It will:
1. Load replacement values
2. Scan each file for placeholder markers
3. Print a line diff per changed placeholder, or start the diff tool
   for each changed file when --diff-tool is set
4. List files with invalid markers

With --write, show behaves like update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.NewOperator(ctx)
			if err != nil {
				return err
			}

			if opts.Config.Write {
				if _, err := op.Update(ctx); err != nil {
					return errors.Errorf("updating: %w", err)
				}
				return nil
			}

			if _, err := op.Show(ctx); err != nil {
				return errors.Errorf("showing differences: %w", err)
			}
			return nil
		},
	}

	return cmd
}
