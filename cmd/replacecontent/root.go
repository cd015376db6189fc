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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacecontent/cmd/replacecontent/commands"
	"github.com/walteh/replacecontent/cmd/replacecontent/opts"
	"github.com/walteh/replacecontent/pkg/config"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// defaultConfigFile is loaded from the working directory when --config is
// not given
const defaultConfigFile = ".replacecontent"

// newRootCmd creates the root command and its subcommands
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	show := commands.NewShowCmd(o)

	rootCmd := &cobra.Command{
		Use:   "replacecontent",
		Short: "Keep placeholder regions in source files in sync with replacement values",
		Long: `replacecontent finds regions marked by comments such as

  /* <Placeholder Name> */
  ...
  /* </Placeholder Name> */

and replaces their bodies with values from a replacements directory.
Without a command it shows what would change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
		RunE: show.RunE,
	}

	addRootFlags(rootCmd, &o.Flags)

	rootCmd.AddCommand(
		show,
		commands.NewUpdateCmd(o),
		commands.NewCheckCmd(o),
		commands.NewWatchCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *opts.Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.ConfigFile, "config", "c", "", "config file path (default ./"+defaultConfigFile+" when present)")
	pf.BoolVarP(&f.Debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&f.Directory, "directory", "", "directory to process recursively")
	pf.StringVar(&f.File, "file", "", "single file to process")
	pf.StringVar(&f.Replacements, "replacements", "", "replacements directory (default Replacements)")
	pf.StringVar(&f.Extensions, "extensions", "", "file extensions to include, separated by ',' or ';' (.* for all)")
	pf.BoolVar(&f.Write, "write", false, "write changes instead of showing them")
	pf.BoolVar(&f.Verbose, "verbose", false, "list every processed file")
	pf.IntVar(&f.Workers, "workers", 0, "files processed in parallel (default one per CPU)")
	pf.StringVar(&f.DiffTool, "diff-tool", "", "external diff command, called as: <cmd> <temp> <target>")
}

// setup configures logging and loads the configuration
func setup(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := setupLogging(cmd.Context(), o.Flags.Debug)
	cmd.SetContext(ctx)

	o.Out = cmd.OutOrStdout()
	o.UserLogger = status.NewUserLogger(ctx)

	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(ctx, cmd, o.Flags)
	if err != nil {
		return err
	}
	o.Config = cfg

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration ready")
	return nil
}

// setupLogging builds the zerolog logger for the command context
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
		pterm.EnableDebugMessages()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// loadConfig reads the config file, if any, and applies flags that were
// set explicitly
func loadConfig(ctx context.Context, cmd *cobra.Command, f opts.Flags) (*config.Config, error) {
	path := f.ConfigFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = f.File
		if !flags.Changed("directory") {
			cfg.Directory = ""
		}
	}
	if flags.Changed("directory") {
		cfg.Directory = f.Directory
	}
	if flags.Changed("replacements") {
		cfg.ReplacementsDirectory = f.Replacements
	}
	if flags.Changed("extensions") {
		cfg.FileExtensions = config.ParseExtensions(f.Extensions)
	}
	if flags.Changed("write") {
		cfg.Write = f.Write
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if flags.Changed("workers") {
		cfg.Workers = f.Workers
	}
	if flags.Changed("diff-tool") {
		cfg.DiffTool = f.DiffTool
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
