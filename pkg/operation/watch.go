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
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// DefaultDebounce is how long a path must stay quiet before a pass runs
const DefaultDebounce = 500 * time.Millisecond

// 📈 WatchStats counts what a Watcher has seen
type WatchStats struct {
	Events        int
	Passes        int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// 👁️ Watcher re-runs Update, or Show when not writing, whenever content
// or replacement files change
type Watcher struct {
	op       *Operator
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	watched map[string]bool
	stats   WatchStats
}

// 🏭 NewWatcher creates a watcher for the operator's sources. A debounce
// below one millisecond uses DefaultDebounce.
func (o *Operator) NewWatcher(debounce time.Duration) (*Watcher, error) {
	if debounce < time.Millisecond {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		op:       o,
		watcher:  fw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		watched:  make(map[string]bool),
	}, nil
}

// 👁️ Watch runs a pass, then another after every quiet change, until ctx
// is cancelled
func (o *Operator) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := o.NewWatcher(debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx)
}

// Close releases the underlying file watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Stats returns a copy of the counters
func (w *Watcher) Stats() WatchStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// 🔄 Run watches until ctx is done. Pass failures are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if err := w.addRoots(ctx); err != nil {
		return err
	}

	w.op.logger.Header("watching " + w.op.source(ctx))
	w.pass(ctx)

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("watch stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if w.due(time.Now()) {
				w.pass(ctx)
			}
		}
	}
}

func (w *Watcher) tick() time.Duration {
	t := w.debounce / 5
	if t < 10*time.Millisecond {
		t = 10 * time.Millisecond
	}
	return t
}

// addRoots watches the content directory tree, the single file's directory
// and the replacements directory
func (w *Watcher) addRoots(ctx context.Context) error {
	cfg := w.op.config

	if cfg.Directory != "" {
		if err := w.addTree(ctx, cfg.Directory); err != nil {
			return err
		}
	}
	if cfg.File != "" {
		if err := w.add(ctx, filepath.Dir(cfg.File)); err != nil {
			return err
		}
	}
	if cfg.ReplacementsDirectory != "" {
		if info, err := os.Stat(cfg.ReplacementsDirectory); err == nil && info.IsDir() {
			if err := w.addTree(ctx, cfg.ReplacementsDirectory); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Watcher) addTree(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		return w.add(ctx, path)
	})
}

func (w *Watcher) add(ctx context.Context, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.Errorf("resolving %s: %w", dir, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[abs] {
		return nil
	}
	if err := w.watcher.Add(abs); err != nil {
		return errors.Errorf("watching %s: %w", abs, err)
	}
	w.watched[abs] = true
	zerolog.Ctx(ctx).Debug().Str("directory", abs).Msg("watching")
	return nil
}

// ignored reports whether a path is one of our own side files
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, status.TempSuffix) {
		return true
	}
	return strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp")
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if ignored(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(ctx, event.Name); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("directory", event.Name).Msg("new directory not watched")
			}
		}
	}

	zerolog.Ctx(ctx).Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("file event")

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = time.Now()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.stats.LastEventTime = time.Now()
}

// due reports, and clears, pending events once the newest is older than
// the debounce period
func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return false
	}
	for _, t := range w.pending {
		if now.Sub(t) < w.debounce {
			return false
		}
	}
	w.pending = make(map[string]time.Time)
	return true
}

// pass runs one Update or Show
func (w *Watcher) pass(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	var err error
	if w.op.config.Write {
		_, err = w.op.Update(ctx)
	} else {
		_, err = w.op.Show(ctx)
	}

	w.mu.Lock()
	w.stats.Passes++
	if err != nil && !errors.Is(err, ErrInvalidContent) && ctx.Err() == nil {
		w.stats.Errors++
	}
	w.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidContent):
		logger.Warn().Err(err).Msg("watch pass found invalid content")
	case ctx.Err() != nil:
	default:
		w.op.logger.Errorf("watch pass failed: %v", err)
	}
}
