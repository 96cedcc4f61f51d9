package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/sizemap/internal/adapters/config"
	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/adapters/registry"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/sizemap/internal/engine/sizecache"
	"go.trai.ch/sizemap/internal/engine/sizemap"
)

// Session is one loaded manifest with the engine and size cache built on it.
type Session struct {
	Manifest *domain.Manifest
	Registry *registry.Registry
	Engine   *sizemap.Engine
	Cache    *sizecache.Cache
	// DefaultKind is used when a command names no size kind.
	DefaultKind domain.SizeKind
}

func newSession(m *domain.Manifest, fsys fs.FileSystem, log ports.Logger, store ports.BaselineStore) (*Session, error) {
	reg, err := registry.New(m, fsys)
	if err != nil {
		return nil, err
	}
	engine := sizemap.New(reg, reg, reg, reg, log)

	var cacheOpts []sizecache.Option
	if store != nil && m.Path != "" {
		cacheOpts = append(cacheOpts, sizecache.WithBaselineStore(store, filepath.Dir(m.Path)))
	}

	return &Session{
		Manifest:    m,
		Registry:    reg,
		Engine:      engine,
		Cache:       sizecache.New(engine, log, cacheOpts...),
		DefaultKind: m.SizeKind,
	}, nil
}

// GetAssetSize returns the size of root followed by its change since it was
// first computed, e.g. "2.0 kB (+500 B)".
func (s *Session) GetAssetSize(ctx context.Context, root domain.EntityID, kind domain.SizeKind) (string, error) {
	record, err := s.Cache.GetSize(ctx, root, kind)
	if err != nil {
		return "", err
	}
	return domain.FormatDelta(record), nil
}

func (s *Session) kind(flag string) (domain.SizeKind, error) {
	if flag == "" {
		if s.DefaultKind == "" {
			return domain.DefaultSizeKind, nil
		}
		return s.DefaultKind, nil
	}
	return config.ParseSizeKind(flag)
}
