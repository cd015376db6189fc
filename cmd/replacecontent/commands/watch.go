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
	"time"

	"github.com/spf13/cobra"
	"github.com/walteh/replacecontent/cmd/replacecontent/opts"
	"github.com/walteh/replacecontent/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewWatchCmd creates a new watch command
func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run whenever content or replacement files change",
		Long: `Watch runs once, then again each time files below the content
directory or the replacements directory settle after a change.
With --write changes are written, otherwise they are shown.
Stop it with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.NewOperator(ctx)
			if err != nil {
				return err
			}

			opts.UserLogger.LogStateChange("watching " + opts.Config.String())
			if err := op.Watch(ctx, debounce); err != nil {
				return errors.Errorf("watching: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", operation.DefaultDebounce, "quiet period before a change triggers a run")

	return cmd
}
