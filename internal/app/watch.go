package app

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/sizemap/internal/adapters/registry"
	"go.trai.ch/sizemap/internal/adapters/watcher"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch prints the size of every root, then prints it again whenever a
// package file it depends on changes. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, args []string, opts Options) error {
	roots, err := parseRoots(args)
	if err != nil {
		return err
	}
	s, err := a.Open(opts)
	if err != nil {
		return err
	}
	kind, err := s.kind(opts.Kind)
	if err != nil {
		return err
	}

	for _, root := range roots {
		text, err := s.GetAssetSize(ctx, root, kind)
		if err != nil {
			return err
		}
		a.printer.PrintSize(root, text)
	}

	return a.watch(ctx, s, roots, kind, a.printer.PrintSize)
}

func (a *App) watch(
	ctx context.Context,
	s *Session,
	roots []domain.EntityID,
	kind domain.SizeKind,
	onChange func(domain.EntityID, string),
) error {
	if err := a.detector.Prime(s.Registry.Files()); err != nil {
		return zerr.Wrap(err, "failed to fingerprint package files")
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := a.watcher.Start(ctx, s.Manifest.Root); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info(fmt.Sprintf("watching %s", s.Manifest.Root))

	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-batches:
				if err := a.refresh(ctx, s, roots, kind, paths, onChange); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

// refresh invalidates the roots affected by the changed files and reports
// their new sizes.
func (a *App) refresh(
	ctx context.Context,
	s *Session,
	roots []domain.EntityID,
	kind domain.SizeKind,
	paths []string,
	onChange func(domain.EntityID, string),
) error {
	changed := make([]string, 0, len(paths))
	for _, path := range paths {
		ok, err := a.detector.Changed(path)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("could not fingerprint %s: %v", path, err))
			ok = true
		}
		if ok {
			changed = append(changed, path)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	s.Registry.Forget(changed...)

	var packages []domain.EntityID
	for _, path := range changed {
		packages = append(packages, s.Registry.PackagesForPath(path)...)
	}

	affected := affectedRoots(s.Registry, roots, packages)
	if s.Cache.Invalidate(affected...) == 0 {
		return nil
	}

	for _, root := range affected {
		text, err := s.GetAssetSize(ctx, root, kind)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		onChange(root, text)
	}
	return nil
}

// affectedRoots returns the roots that reference one of the changed packages,
// directly, through other packages or through a primary asset managing them.
func affectedRoots(reg *registry.Registry, roots, changed []domain.EntityID) []domain.EntityID {
	if len(changed) == 0 {
		return nil
	}

	reached := make(map[domain.EntityID]bool)
	queue := slices.Clone(changed)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if reached[id] {
			continue
		}
		reached[id] = true

		for _, category := range []domain.DependencyCategory{domain.CategoryPackage, domain.CategoryManage} {
			refs, err := reg.GetReferencers(id, category)
			if err != nil {
				continue
			}
			queue = append(queue, refs...)
		}
	}

	var affected []domain.EntityID
	for _, root := range roots {
		if reached[root] || chunkReaches(reg, root, reached) {
			affected = append(affected, root)
		}
	}
	return affected
}

func chunkReaches(reg *registry.Registry, root domain.EntityID, reached map[domain.EntityID]bool) bool {
	chunk, ok := root.ChunkID()
	if !ok {
		return false
	}
	membership, err := reg.GetChunkMembership(chunk)
	if err != nil {
		return false
	}
	for id := range reached {
		if membership.Contains(id) {
			return true
		}
	}
	return false
}
