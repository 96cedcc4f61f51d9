// Package registry answers dependency, resolution, size and chunk queries from a loaded manifest.
package registry

import (
	"path/filepath"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.DependencyOracle = (*Registry)(nil)
	_ ports.EntityResolver   = (*Registry)(nil)
	_ ports.SizeOracle       = (*Registry)(nil)
	_ ports.ChunkRegistry    = (*Registry)(nil)
)

// DefaultStatCacheSize is the number of file sizes kept between Forget calls.
const DefaultStatCacheSize = 4096

// Registry serves the four oracles from a manifest.
// Disk sizes are read from the package files and memoised until forgotten.
type Registry struct {
	manifest *domain.Manifest
	fs       fs.FileSystem
	stats    *lru.Cache[string, int64]

	managers    map[domain.EntityID][]domain.EntityID
	referencers map[domain.EntityID][]domain.EntityID
	byPath      map[string][]domain.EntityID
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	statCacheSize int
}

// WithStatCacheSize bounds the number of memoised file sizes.
func WithStatCacheSize(n int) Option {
	return func(o *options) {
		o.statCacheSize = n
	}
}

// New indexes m. File sizes are read through fsys.
func New(m *domain.Manifest, fsys fs.FileSystem, opts ...Option) (*Registry, error) {
	o := options{statCacheSize: DefaultStatCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	stats, err := lru.New[string, int64](o.statCacheSize)
	if err != nil {
		return nil, zerr.With(err, "size", o.statCacheSize)
	}

	r := &Registry{
		manifest:    m,
		fs:          fsys,
		stats:       stats,
		managers:    make(map[domain.EntityID][]domain.EntityID),
		referencers: make(map[domain.EntityID][]domain.EntityID),
		byPath:      make(map[string][]domain.EntityID),
	}
	r.index()
	return r, nil
}

func (r *Registry) index() {
	for primary, managed := range r.manifest.PrimaryAssets {
		for _, id := range managed {
			r.managers[id] = append(r.managers[id], primary)
		}
	}
	for id, p := range r.manifest.Packages {
		for _, dep := range slices.Concat(p.DependsOn, p.EditorOnly) {
			r.referencers[dep] = append(r.referencers[dep], id)
		}
		if path := r.manifest.FilePath(p); path != "" {
			r.byPath[path] = append(r.byPath[path], id)
		}
	}

	// Map iteration order is random; keep answers stable.
	sortIndex(r.managers)
	sortIndex(r.referencers)
	sortIndex(r.byPath)
}

func sortIndex[K comparable](index map[K][]domain.EntityID) {
	for key, list := range index {
		slices.SortFunc(list, compareIDs)
		index[key] = slices.Compact(list)
	}
}

// Manifest returns the manifest the registry was built from.
func (r *Registry) Manifest() *domain.Manifest {
	return r.manifest
}

// GetDependencies returns the package references of a package, or the assets a
// primary asset manages. Editor-only references are included only when the
// query asks for them.
func (r *Registry) GetDependencies(id domain.EntityID, query domain.DependencyQuery) ([]domain.EntityID, error) {
	if id.IsPrimary() {
		if query.Category != domain.CategoryManage {
			return nil, nil
		}
		return slices.Clone(r.manifest.PrimaryAssets[id]), nil
	}

	if query.Category != domain.CategoryPackage {
		return nil, nil
	}
	p, ok := r.manifest.Package(id)
	if !ok {
		return nil, zerr.With(domain.ErrEntityNotFound, "id", id.String())
	}
	deps := slices.Clone(p.DependsOn)
	if query.Flags.Has(domain.FlagEditorOnly) {
		deps = append(deps, p.EditorOnly...)
	}
	return deps, nil
}

// GetReferencers returns the primary assets managing id, or the packages
// referencing it.
func (r *Registry) GetReferencers(id domain.EntityID, category domain.DependencyCategory) ([]domain.EntityID, error) {
	switch category {
	case domain.CategoryManage:
		return slices.Clone(r.managers[id]), nil
	case domain.CategoryPackage:
		return slices.Clone(r.referencers[id]), nil
	default:
		return nil, nil
	}
}

// Resolve returns the record of a manifest package.
func (r *Registry) Resolve(id domain.EntityID) (domain.AssetRecord, error) {
	p, ok := r.manifest.Package(id)
	if !ok || !id.IsPackage() {
		return domain.AssetRecord{}, zerr.With(domain.ErrEntityNotFound, "id", id.String())
	}
	return domain.AssetRecord{
		ID:          id,
		PackageName: id.PackageName(),
		AssetName:   id.AssetName(),
		Class:       p.Class,
	}, nil
}

// SynthesizePlaceholder returns the record of a primary asset. Primary assets
// need no manifest entry.
func (r *Registry) SynthesizePlaceholder(id domain.EntityID) domain.AssetRecord {
	return domain.AssetRecord{
		ID:        id,
		AssetName: id.Name(),
		Class:     domain.PrimaryAssetClass,
	}
}

// GetSize returns the size of a package. A size listed in the manifest wins;
// otherwise the disk kind falls back to the size of the package file.
func (r *Registry) GetSize(record domain.AssetRecord, kind domain.SizeKind) (int64, error) {
	p, ok := r.manifest.Package(record.ID)
	if !ok {
		return 0, zerr.With(domain.ErrSizeUnavailable, "id", record.ID.String())
	}
	if size, ok := p.Sizes[kind]; ok {
		return size, nil
	}
	if kind != domain.SizeKindDisk {
		err := zerr.With(domain.ErrSizeUnavailable, "id", record.ID.String())
		return 0, zerr.With(err, "kind", string(kind))
	}

	path := r.manifest.FilePath(p)
	if path == "" {
		return 0, zerr.With(domain.ErrSizeUnavailable, "id", record.ID.String())
	}
	return r.fileSize(path)
}

func (r *Registry) fileSize(path string) (int64, error) {
	if size, ok := r.stats.Get(path); ok {
		return size, nil
	}
	info, err := r.fs.Stat(path)
	if err != nil || info.IsDir() {
		return 0, zerr.With(domain.ErrSizeUnavailable, "path", path)
	}
	r.stats.Add(path, info.Size())
	return info.Size(), nil
}

// GetChunkMembership returns the assets assigned to a chunk.
func (r *Registry) GetChunkMembership(chunkID int) (domain.ChunkMembership, error) {
	m, ok := r.manifest.Chunks[chunkID]
	if !ok {
		return domain.ChunkMembership{}, zerr.With(domain.ErrChunkNotFound, "chunk", chunkID)
	}
	return m, nil
}

// Forget drops the memoised sizes of the given files.
func (r *Registry) Forget(paths ...string) {
	for _, path := range paths {
		r.stats.Remove(filepath.Clean(path))
	}
}

// PackagesForPath returns the packages stored in the file at path.
func (r *Registry) PackagesForPath(path string) []domain.EntityID {
	return slices.Clone(r.byPath[filepath.Clean(path)])
}

// Files returns every package file the registry reads.
func (r *Registry) Files() []string {
	return r.manifest.Files()
}

func compareIDs(a, b domain.EntityID) int {
	return strings.Compare(a.String(), b.String())
}
