package cmds

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/modelgen/compiler"
	"github.com/syssam/modelgen/internal/logger"
)

// watchedExts are the extensions of the files a regeneration depends on.
var watchedExts = []string{".go", ".yaml", ".yml", ".properties", ".snapshot"}

type cmdWatch struct {
	global   *CmdGlobal
	generate *cmdGenerate

	flagDebounce time.Duration

	mu sync.Mutex
	// generated holds the files written by the last run; their events are
	// ignored.
	generated map[string]bool
}

func (c *cmdWatch) Command() *cobra.Command {
	c.generate = &cmdGenerate{global: c.global}

	cmd := &cobra.Command{}
	cmd.Use = "watch [entity...]"
	cmd.Short = "Regenerate when entities or connections change"
	cmd.Long = `Description:
  Regenerate when entities or connections change

  Runs "generate" once, then again whenever a Go source file of an entity
  package, the project file, a connection file or the snapshot changes.
  Runs until interrupted.
`
	cmd.RunE = c.Run

	c.generate.flags(cmd.Flags())
	cmd.Flags().DurationVar(&c.flagDebounce, "debounce", 300*time.Millisecond, "Quiet period before regenerating")

	return cmd
}

func (c *cmdWatch) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer func() { _ = watcher.Close() }()

	c.regenerate(ctx, out, args)

	dirs, err := c.watchDirs(ctx)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		err := watcher.Add(dir)
		if err != nil {
			return err
		}

		slog.Debug("Watching", slog.String("dir", dir))
	}

	slog.Info("Watching for changes", slog.Int("dirs", len(dirs)))

	trigger := make(chan string, 1)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return c.events(ctx, watcher, trigger) })
	eg.Go(func() error { return c.debounce(ctx, trigger, func() { c.regenerate(ctx, out, args) }) })

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// events forwards relevant file events to trigger without blocking.
func (c *cmdWatch) events(ctx context.Context, w *fsnotify.Watcher, trigger chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			c.mu.Lock()
			ok = relevant(ev, c.generated)
			c.mu.Unlock()
			if !ok {
				continue
			}

			select {
			case trigger <- ev.Name:
			default:
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			slog.Warn("Watch error", logger.Err(err))
		}
	}
}

// debounce calls run once no trigger arrived for the debounce period.
func (c *cmdWatch) debounce(ctx context.Context, trigger <-chan string, run func()) error {
	timer := time.NewTimer(c.flagDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case name := <-trigger:
			slog.Debug("Change detected", slog.String("path", name))
			timer.Reset(c.flagDebounce)

		case <-timer.C:
			run()
		}
	}
}

func (c *cmdWatch) regenerate(ctx context.Context, out io.Writer, names []string) {
	err := c.global.LoadConfig()
	if err != nil {
		slog.Error("Failed to load project file", logger.Err(err))
		return
	}

	report, err := c.generate.generate(ctx, out, names)
	if report != nil {
		generated := make(map[string]bool)
		for _, p := range report.Paths() {
			generated[filepath.Clean(p)] = true
		}

		c.mu.Lock()
		c.generated = generated
		c.mu.Unlock()
	}

	if err != nil {
		slog.Error("Generation failed", logger.Err(err))
	}
}

// watchDirs returns the existing directories holding entity sources, the
// project file, connection files and the snapshot.
func (c *cmdWatch) watchDirs(ctx context.Context) ([]string, error) {
	cfg := c.global.Config
	entities, err := compiler.Entities(ctx, cfg, c.global.Dir)
	if err != nil {
		return nil, err
	}

	paths := []string{c.global.Dir}
	fileDir := func(p string) {
		if p == "" {
			return
		}

		if !filepath.IsAbs(p) {
			p = filepath.Join(c.global.Dir, p)
		}

		paths = append(paths, filepath.Dir(p))
	}

	fileDir(cfg.Connection)
	fileDir(cfg.Snapshot)
	fileDir(c.generate.flagConnection)
	fileDir(c.generate.flagSnapshot)
	for _, e := range entities {
		fileDir(e.Connection)
		if e.Dir != "" {
			paths = append(paths, e.Dir)
		}

		if e.Pos != "" {
			fileDir(strings.SplitN(e.Pos, ":", 2)[0])
		}
	}

	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			continue
		}

		dirs = append(dirs, filepath.Clean(p))
	}

	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

// relevant reports if ev changes an input of the generation.
func relevant(ev fsnotify.Event, generated map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	if generated[filepath.Clean(ev.Name)] || strings.HasSuffix(ev.Name, "_test.go") {
		return false
	}

	return slices.Contains(watchedExts, filepath.Ext(ev.Name))
}
