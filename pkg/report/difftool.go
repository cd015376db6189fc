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

package report

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxInstances caps concurrently running diff tool processes
const DefaultMaxInstances = 5

// 🚀 LaunchResult is the outcome of starting a diff tool
type LaunchResult int

const (
	LaunchStarted LaunchResult = iota
	LaunchDisabled
	LaunchNoToolFound
	LaunchTooManyRunning
)

func (r LaunchResult) String() string {
	switch r {
	case LaunchStarted:
		return "started"
	case LaunchDisabled:
		return "disabled"
	case LaunchNoToolFound:
		return "no diff tool found"
	case LaunchTooManyRunning:
		return "too many running diff tools"
	default:
		return "unknown"
	}
}

// Stops reports whether no further launches should be attempted
func (r LaunchResult) Stops() bool {
	return r != LaunchStarted
}

// 🛠️ DiffTool starts an external diff viewer as: command [args...] <temp> <target>
type DiffTool struct {
	command string
	args    []string
	max     int

	mu      sync.Mutex
	running int
	wg      sync.WaitGroup
}

// 🏭 NewDiffTool parses a command line. An empty line gives a disabled tool.
func NewDiffTool(commandLine string) *DiffTool {
	fields := strings.Fields(commandLine)
	t := &DiffTool{max: DefaultMaxInstances}
	if len(fields) > 0 {
		t.command, t.args = fields[0], fields[1:]
	}
	return t
}

// WithMaxInstances sets how many tool processes may run at once
func (t *DiffTool) WithMaxInstances(n int) *DiffTool {
	if n > 0 {
		t.max = n
	}
	return t
}

// Enabled reports whether a command is configured
func (t *DiffTool) Enabled() bool {
	return t != nil && t.command != ""
}

// Command returns the full argument list used for a pair of files
func (t *DiffTool) Command(tempFile, targetFile string) []string {
	out := append([]string{t.command}, t.args...)
	return append(out, tempFile, targetFile)
}

// 🚀 Launch starts the tool for one file pair without waiting for it
func (t *DiffTool) Launch(ctx context.Context, tempFile, targetFile string) (LaunchResult, error) {
	if !t.Enabled() {
		return LaunchDisabled, nil
	}

	bin, err := exec.LookPath(t.command)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("command", t.command).Msg("diff tool not found")
		return LaunchNoToolFound, nil
	}

	t.mu.Lock()
	if t.running >= t.max {
		t.mu.Unlock()
		return LaunchTooManyRunning, nil
	}
	t.running++
	t.mu.Unlock()

	argv := t.Command(tempFile, targetFile)
	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		t.release()
		return LaunchNoToolFound, errors.Errorf("starting diff tool %s: %w", t.command, err)
	}

	zerolog.Ctx(ctx).Debug().Strs("argv", argv).Int("pid", cmd.Process.Pid).Msg("diff tool started")

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.release()
		if err := cmd.Wait(); err != nil {
			// diff tools exit non-zero when files differ
			zerolog.Ctx(ctx).Debug().Err(err).Str("target", targetFile).Msg("diff tool exited")
		}
	}()

	return LaunchStarted, nil
}

func (t *DiffTool) release() {
	t.mu.Lock()
	t.running--
	t.mu.Unlock()
}

// Wait blocks until every started tool process has exited
func (t *DiffTool) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}
