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

// NewUpdateCmd creates a new update command
func NewUpdateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Write replacement values into placeholder regions",
		Long: `Update replaces placeholder bodies and writes changed files back.
Files are replaced atomically. Files with invalid markers are left
untouched and make the command fail after all other files are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts.Config.Write = true
			op, err := opts.NewOperator(ctx)
			if err != nil {
				return err
			}

			if _, err := op.Update(ctx); err != nil {
				return errors.Errorf("updating: %w", err)
			}
			return nil
		},
	}

	return cmd
}
