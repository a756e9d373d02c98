package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/coil/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/engine/loader"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WarmReport counts the outcome of a warm run.
type WarmReport struct {
	Hits     int
	Compiled int
	Failed   int
}

// Total returns the number of files processed.
func (r WarmReport) Total() int {
	return r.Hits + r.Compiled + r.Failed
}

// Warm precompiles every registered file under paths. Directories are
// walked recursively. Files that fail to compile are logged and counted;
// the run continues with the rest.
func (a *App) Warm(ctx context.Context, paths []string) (WarmReport, error) {
	if err := a.prepare(); err != nil {
		return WarmReport{}, err
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := a.collect(paths)
	if err != nil {
		return WarmReport{}, err
	}

	report, err := a.warmFiles(ctx, files)
	if err != nil {
		return report, err
	}

	a.logger.Info(fmt.Sprintf("warmed %d files (%d cached, %d compiled)", report.Total(), report.Hits, report.Compiled))
	if report.Failed > 0 {
		return report, zerr.With(domain.ErrWarmFailed, "failed", report.Failed)
	}
	return report, nil
}

// collect expands paths into the sorted list of registered files.
func (a *App) collect(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", root)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		for path, err := range a.walker.WalkFiles(root, a.registry.Handles) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", root)
			}
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// warmFiles loads files concurrently, bounded by the number of CPUs.
func (a *App) warmFiles(ctx context.Context, files []string) (WarmReport, error) {
	var (
		mu     sync.Mutex
		report WarmReport
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			outcome, err := a.warmFile(ctx, file)
			if ctx.Err() != nil {
				return ctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Failed++
				a.logger.Error(err)
			case outcome == loader.CacheHit:
				report.Hits++
			default:
				report.Compiled++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, zerr.Wrap(err, domain.ErrWarmFailed.Error())
	}
	return report, nil
}

func (a *App) warmFile(ctx context.Context, file string) (string, error) {
	l, err := a.loaderFor(file)
	if err != nil {
		return "", err
	}
	res, err := l.Load(ctx, file)
	if err != nil {
		return "", err
	}
	return res.Cache, nil
}

// Watch warms dir and then recompiles registered files as they change,
// until ctx is cancelled.
func (a *App) Watch(ctx context.Context, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := a.prepare(); err != nil {
		return err
	}
	if _, err := a.Warm(ctx, []string{dir}); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, dir); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.rewarm(ctx, paths)
	})

	a.logger.Info("watching " + dir)
	for ev := range a.watcher.Events() {
		if ev.Operation != ports.OpWrite && ev.Operation != ports.OpCreate {
			continue
		}
		if a.registry.Handles(ev.Path) {
			debouncer.Add(ev.Path)
		}
	}
	debouncer.Flush()

	return nil
}

// rewarm compiles the changed files that still exist.
func (a *App) rewarm(ctx context.Context, paths []string) {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return
	}

	report, err := a.warmFiles(ctx, files)
	if err != nil {
		return
	}
	if report.Compiled > 0 {
		a.logger.Info(fmt.Sprintf("recompiled %d files", report.Compiled))
	}
}
