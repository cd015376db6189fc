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

package status

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints unit outcomes for people, mirroring each line to zerolog
type UserLogger struct {
	log zerolog.Logger
	out io.Writer // nil means pterm's default output
}

// 🎯 NewUserLogger creates a user logger backed by the context's zerolog logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// WithWriter sends printed lines to w
func (u *UserLogger) WithWriter(w io.Writer) *UserLogger {
	u.out = w
	return u
}

// printer returns base with our prefix and writer
func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogFileChange prints the outcome of one unit
func (u *UserLogger) LogFileChange(info FileInfo) {
	var action string
	var printer *pterm.PrefixPrinter
	switch info.Status {
	case StatusUpdated:
		action = "Updated"
		printer = u.printer(pterm.Success, "✨")
	case StatusModified:
		action = "Modified"
		printer = u.printer(pterm.Info, "📝")
	case StatusInvalid:
		action = "Invalid"
		printer = u.printer(pterm.Error, "❌")
	case StatusSkipped:
		action = "Skipped"
		printer = u.printer(pterm.Debug, "⏭️")
	default:
		action = "Unchanged"
		printer = u.printer(pterm.Debug, "👍")
	}

	msg := fmt.Sprintf("%s %s", action, info.Path)
	if info.Message != "" {
		msg += fmt.Sprintf(" (%s)", info.Message)
	} else if info.Missing > 0 {
		msg += fmt.Sprintf(" (%d without replacement)", info.Missing)
	}

	printer.Println(msg)
	if info.Error != nil {
		pterm.Error.WithWriter(u.out).Println(info.Error)
		u.log.Error().Err(info.Error).Msg(msg)
		return
	}
	u.log.Debug().Str("status", info.Status.String()).Msg(msg)
}

// 📊 LogStateChange prints a run level message
func (u *UserLogger) LogStateChange(description string) {
	printer := u.printer(pterm.Info, "📦")
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation prints the result of a check
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

// 📋 LogSummary prints counts per status, skipping empty ones
func (u *UserLogger) LogSummary(counts map[FileStatus]int) {
	order := []FileStatus{StatusUpdated, StatusModified, StatusUnchanged, StatusInvalid, StatusSkipped}
	data := pterm.TableData{{"Status", "Files"}}
	for _, s := range order {
		if counts[s] == 0 {
			continue
		}
		data = append(data, []string{s.String(), fmt.Sprintf("%d", counts[s])})
		u.log.Debug().Str("status", s.String()).Int("count", counts[s]).Msg("summary")
	}
	if len(data) == 1 {
		return
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(u.out).Render()
}
