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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/content"
	"github.com/walteh/replacecontent/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// 👀 ShowResult is the outcome of Show
type ShowResult struct {
	*Result

	Report      string              // Text report, empty when a diff tool was used
	TempFiles   []string            // Side files written for the diff tool
	NotPossible int                 // Modified units without a file to compare against
	Launch      report.LaunchResult // Last diff tool launch outcome
}

// 👀 Show reports what would change without touching content files. With a
// diff tool configured, modified files get a ".temp" side file and the tool
// is started per file; otherwise a text report is printed.
func (o *Operator) Show(ctx context.Context) (*ShowResult, error) {
	res, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range res.Units {
		o.logUnit(ctx, u, unitInfo(u).Status)
	}
	o.printInvalid(res)

	if o.diffTool.Enabled() {
		return o.showDiffTool(ctx, res)
	}
	return o.showText(ctx, res)
}

func (o *Operator) showText(ctx context.Context, res *Result) (*ShowResult, error) {
	parts := make([]string, len(res.Units))
	err := o.runner.Each(ctx, len(res.Units), func(ctx context.Context, i int) error {
		parts[i] = report.Unit(res.Units[i])
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("building report: %w", err)
	}

	sr := &ShowResult{Result: res, Report: report.Join(parts)}
	if len(res.Modified) == 0 && sr.Report == "" {
		o.logger.Println(report.NoDifferences)
		return sr, nil
	}
	o.logger.Println(strings.TrimSuffix(sr.Report, "\n"))
	return sr, nil
}

func (o *Operator) showDiffTool(ctx context.Context, res *Result) (*ShowResult, error) {
	logger := zerolog.Ctx(ctx)
	sr := &ShowResult{Result: res, Launch: report.LaunchDisabled}

	var diffs []*content.Unit
	for _, u := range res.Units {
		if u.Skipped() || !u.Valid() {
			continue
		}
		if u.FilePath == "" {
			if u.Modified() {
				sr.NotPossible++
			}
			continue
		}
		if !u.Modified() {
			removed, err := o.status.RemoveTempFile(ctx, u.FilePath)
			if err != nil {
				return nil, errors.Errorf("cleaning up %s: %w", u.FilePath, err)
			}
			if removed {
				logger.Debug().Str("path", u.FilePath).Msg("stale temp file removed")
			}
			continue
		}
		temp, err := o.status.WriteTempFile(ctx, u.FilePath, []byte(u.Next()))
		if err != nil {
			return nil, errors.Errorf("preparing diff for %s: %w", u.FilePath, err)
		}
		sr.TempFiles = append(sr.TempFiles, temp)
		diffs = append(diffs, u)
	}

	if sr.NotPossible > 0 {
		o.logger.Warningf("%d units have no file to compare against", sr.NotPossible)
	}

	if len(diffs) == 0 {
		o.logger.Println(report.NoDifferences)
		return sr, nil
	}

	if o.config.Verbose {
		o.logger.Println("Differences found:")
		for _, u := range diffs {
			o.logger.Println("- " + u.FilePath)
		}
	}

	for i, u := range diffs {
		launch, err := o.diffTool.Launch(ctx, sr.TempFiles[i], u.FilePath)
		if err != nil {
			return nil, err
		}
		sr.Launch = launch
		if launch.Stops() {
			o.logger.Warningf("diff tool: %s", launch)
			break
		}
	}
	o.diffTool.Wait()

	return sr, nil
}
