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

package operation

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/config"
	"github.com/walteh/replacecontent/pkg/content"
	"github.com/walteh/replacecontent/pkg/filetype"
	"github.com/walteh/replacecontent/pkg/log"
	"github.com/walteh/replacecontent/pkg/placeholder"
	"github.com/walteh/replacecontent/pkg/provider"
	"github.com/walteh/replacecontent/pkg/replacement"
	"github.com/walteh/replacecontent/pkg/report"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidContent is returned when at least one unit has malformed markers
var ErrInvalidContent = errors.Base("invalid placeholder markers")

// 🔧 Options contains what an Operator works with. Only Config and
// Provider are required.
type Options struct {
	// Config is the validated replacecontent configuration
	Config *config.Config
	// Provider lists and reads content files
	Provider provider.Provider
	// Status writes files and tracks unit outcomes
	Status *status.Manager
	// FileTypes maps extensions to comment delimiters
	FileTypes *filetype.Registry
	// Replacements overrides loading values from the configuration
	Replacements *placeholder.ReplacementMap
	// Logger prints console output
	Logger *log.Logger
	// DiffTool is launched by Show for modified files
	DiffTool *report.DiffTool
}

// 🎮 Operator runs replacecontent passes
type Operator struct {
	config       *config.Config
	provider     provider.Provider
	status       *status.Manager
	fileTypes    *filetype.Registry
	replacements *placeholder.ReplacementMap
	logger       *log.Logger
	diffTool     *report.DiffTool
	runner       *Runner
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Provider == nil {
		return nil, errors.Errorf("provider is required")
	}

	op := &Operator{
		config:       opts.Config,
		provider:     opts.Provider,
		status:       opts.Status,
		fileTypes:    opts.FileTypes,
		replacements: opts.Replacements,
		logger:       opts.Logger,
		diffTool:     opts.DiffTool,
		runner:       NewRunner(opts.Config.Workers),
	}
	if op.status == nil {
		op.status = status.New("", nil)
	}
	if op.fileTypes == nil {
		op.fileTypes = opts.Config.FileTypeRegistry()
	}
	if op.logger == nil {
		op.logger = log.New(io.Discard, zerolog.Disabled)
	}
	if op.diffTool == nil {
		op.diffTool = report.NewDiffTool(opts.Config.DiffTool)
	}
	return op, nil
}

// 📊 Result is the outcome of processing a content set
type Result struct {
	Units    []*content.Unit // Every unit in input order
	Invalid  []*content.Unit // Units with malformed markers
	Modified []*content.Unit // Valid units whose text changes
}

// HasInvalid reports whether any unit is invalid
func (r *Result) HasInvalid() bool {
	return len(r.Invalid) > 0
}

// 📚 LoadReplacements builds the replacement map from the replacements
// directory and the inline values of the configuration. Inline values win.
// The default directory may be absent; a configured one must exist.
func (o *Operator) LoadReplacements(ctx context.Context) (*placeholder.ReplacementMap, error) {
	if o.replacements != nil {
		return o.replacements, nil
	}

	m := placeholder.NewReplacementMap()

	dir := o.config.ReplacementsDirectory
	optional := dir == "" || filepath.Base(dir) == config.DefaultReplacementsDirectory
	if dir != "" {
		n, err := replacement.LoadDirectory(ctx, m, dir, optional)
		if err != nil {
			return nil, errors.Errorf("loading replacements: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Str("directory", dir).Int("values", n).Msg("replacements loaded")
	}

	m.SetAll(o.config.Replacements)
	return m, nil
}

// 📥 Load reads every content file the provider lists into a new set
func (o *Operator) Load(ctx context.Context) (*content.Set, error) {
	args := o.config.SourceArgs()

	files, err := o.provider.ListFiles(ctx, args)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}

	texts := make([]string, len(files))
	err = o.runner.Each(ctx, len(files), func(ctx context.Context, i int) error {
		text, err := provider.ReadFile(ctx, o.provider, args, files[i])
		if err != nil {
			return err
		}
		texts[i] = text
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("reading files: %w", err)
	}

	set := content.NewSet(o.fileTypes)
	for i, path := range files {
		if _, err := set.AddFile(ctx, path, texts[i]); err != nil {
			return nil, errors.Errorf("adding file: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Int("files", set.Len()).Msg("content loaded")
	return set, nil
}

// 🔄 Process scans, substitutes and reassembles every unit of set in
// parallel and records each unit's status
func (o *Operator) Process(ctx context.Context, set *content.Set, m *placeholder.ReplacementMap) (*Result, error) {
	units := set.Units()

	o.status.StartOperation(ctx, len(units))
	err := o.runner.Each(ctx, len(units), func(ctx context.Context, i int) error {
		if err := units[i].Process(m); err != nil {
			return err
		}
		o.status.UpdateProgress(ctx, i+1)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("processing content: %w", err)
	}
	o.status.FinishOperation(ctx)

	res := &Result{Units: units}
	for _, u := range units {
		info := unitInfo(u)
		switch info.Status {
		case status.StatusInvalid:
			res.Invalid = append(res.Invalid, u)
		case status.StatusModified:
			res.Modified = append(res.Modified, u)
		}
		o.status.TrackFile(ctx, u.Identifier, info)
	}
	return res, nil
}

// run loads replacements and content, then processes it
func (o *Operator) run(ctx context.Context) (*Result, error) {
	o.status.Reset()

	m, err := o.LoadReplacements(ctx)
	if err != nil {
		return nil, err
	}

	set, err := o.Load(ctx)
	if err != nil {
		return nil, err
	}

	o.logger.StartRun(ctx, log.RunOperation{
		Source:       o.source(ctx),
		Replacements: m.Len(),
		Write:        o.config.Write,
	})
	defer o.logger.EndRun(ctx)

	return o.Process(ctx, set, m)
}

// source describes what the provider reads, for headers
func (o *Operator) source(ctx context.Context) string {
	info, err := o.provider.GetSourceInfo(ctx, o.config.SourceArgs())
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("no source info")
		return o.config.String()
	}
	return info
}

// 📋 unitInfo derives the status record of a processed unit
func unitInfo(u *content.Unit) status.FileInfo {
	info := status.FileInfo{Path: u.Identifier}

	switch {
	case u.Skipped():
		info.Status = status.StatusSkipped
	case !u.Valid():
		info.Status = status.StatusInvalid
		if diag, ok := u.Diagnostic(); ok {
			info.Message = diag.ErrorMessage
		}
	case u.Modified():
		info.Status = status.StatusModified
		info.Checksum = status.Checksum([]byte(u.Next()))
	default:
		info.Status = status.StatusUnchanged
	}

	for _, c := range u.Changes() {
		if c.Missing {
			info.Missing++
		} else {
			info.Changes++
		}
	}
	return info
}

// 📝 logUnit prints one console line for u when verbose
func (o *Operator) logUnit(ctx context.Context, u *content.Unit, st status.FileStatus) {
	if !o.config.Verbose {
		return
	}
	info := unitInfo(u)
	o.logger.LogUnitOperation(ctx, log.UnitOperation{
		Path:         u.Identifier,
		FileType:     u.FileType.Name,
		Status:       st.String(),
		IsUpdated:    st == status.StatusUpdated,
		IsModified:   st == status.StatusModified,
		IsInvalid:    st == status.StatusInvalid,
		IsSkipped:    st == status.StatusSkipped,
		Placeholders: info.Changes,
		Missing:      info.Missing,
	})
}

// printInvalid lists invalid units on the console
func (o *Operator) printInvalid(res *Result) {
	if !res.HasInvalid() {
		return
	}
	o.logger.Println(strings.TrimSuffix(report.Invalid(res.Invalid), "\n"))
}

// invalidError returns ErrInvalidContent when any unit is invalid
func invalidError(res *Result) error {
	if !res.HasInvalid() {
		return nil
	}
	return errors.Errorf("%w: %d of %d units", ErrInvalidContent, len(res.Invalid), len(res.Units))
}
