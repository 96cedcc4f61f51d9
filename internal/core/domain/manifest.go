package domain

import (
	"path/filepath"
	"slices"
)

// PackageSpec describes one content package of the asset registry.
type PackageSpec struct {
	ID    EntityID
	Class string
	// File is the package file relative to the manifest root. It may be empty.
	File       string
	Sizes      map[SizeKind]int64
	DependsOn  []EntityID
	EditorOnly []EntityID
}

// Manifest is the loaded asset registry: packages, primary assets and chunk assignments.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path string
	// Root is the absolute directory package files are resolved against.
	Root          string
	SizeKind      SizeKind
	Packages      map[EntityID]*PackageSpec
	PrimaryAssets map[EntityID][]EntityID
	Chunks        map[int]ChunkMembership
}

// NewManifest creates an empty manifest rooted at root.
func NewManifest(root string) *Manifest {
	return &Manifest{
		Root:          root,
		Packages:      make(map[EntityID]*PackageSpec),
		PrimaryAssets: make(map[EntityID][]EntityID),
		Chunks:        make(map[int]ChunkMembership),
	}
}

// AddPackage registers a package, replacing any previous spec with the same id.
func (m *Manifest) AddPackage(p *PackageSpec) {
	m.Packages[p.ID] = p
}

// Package returns the spec of a package.
func (m *Manifest) Package(id EntityID) (*PackageSpec, bool) {
	p, ok := m.Packages[id]
	return p, ok
}

// FilePath returns the absolute path of a package file, or "" when the package has none.
func (m *Manifest) FilePath(p *PackageSpec) string {
	if p.File == "" {
		return ""
	}
	if filepath.IsAbs(p.File) {
		return filepath.Clean(p.File)
	}
	return filepath.Join(m.Root, p.File)
}

// Files returns the absolute paths of all package files, sorted.
func (m *Manifest) Files() []string {
	files := make([]string, 0, len(m.Packages))
	for _, p := range m.Packages {
		if path := m.FilePath(p); path != "" {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return slices.Compact(files)
}
