// Package config loads the asset registry manifest and environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// DefaultClass is given to packages whose manifest entry names no class.
const DefaultClass = "Package"

var validSizeKindRegex = regexp.MustCompile("^[a-z][a-z0-9_-]*$")

// Loader implements ports.ManifestLoader for sizemap.yaml files.
type Loader struct {
	Logger ports.Logger
	FS     fs.FileSystem
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(logger ports.Logger, fsys fs.FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load finds the nearest sizemap.yaml at or above cwd and loads it.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path, err := l.findManifest(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile loads the manifest at path.
func (l *Loader) LoadFile(path string) (*domain.Manifest, error) {
	var file ManifestFile
	if err := readAndUnmarshalYAML(l.FS, path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	kind, err := ParseSizeKind(file.SizeKind)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	m := domain.NewManifest(resolveRoot(path, file.Root))
	m.Path = path
	m.SizeKind = kind

	if err := l.addPackages(m, file.Packages); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := addPrimaryAssets(m, file.PrimaryAssets); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := addChunks(m, file.Chunks); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return m, nil
}

func (l *Loader) findManifest(cwd string) (string, error) {
	for dir := filepath.Clean(cwd); ; {
		candidate := filepath.Join(dir, domain.ManifestFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

// ParseSizeKind validates a size kind name. The empty string selects the default kind.
func ParseSizeKind(s string) (domain.SizeKind, error) {
	if s == "" {
		return domain.DefaultSizeKind, nil
	}
	if !validSizeKindRegex.MatchString(s) {
		return "", zerr.With(domain.ErrInvalidSizeKind, "size_kind", s)
	}
	return domain.SizeKind(s), nil
}

func (l *Loader) addPackages(m *domain.Manifest, packages map[string]*PackageDTO) error {
	for name, dto := range packages {
		id, err := parseID(domain.KindPackage, name)
		if err != nil {
			return err
		}
		if dto == nil {
			dto = &PackageDTO{}
		}

		spec := &domain.PackageSpec{
			ID:    id,
			Class: dto.Class,
			File:  dto.File,
			Sizes: make(map[domain.SizeKind]int64, len(dto.Sizes)),
		}
		if spec.Class == "" {
			spec.Class = DefaultClass
		}
		if spec.Class == domain.MissingClass {
			return zerr.With(domain.ErrReservedClass, "package", name)
		}

		for k, size := range dto.Sizes {
			kind, err := ParseSizeKind(k)
			if err != nil {
				return zerr.With(err, "package", name)
			}
			if size < 0 {
				l.Logger.Warn(fmt.Sprintf("negative %s size of %s treated as unknown", kind, name))
				continue
			}
			spec.Sizes[kind] = size
		}

		if spec.DependsOn, err = parseIDs(domain.KindInvalid, dto.DependsOn...); err != nil {
			return zerr.With(err, "package", name)
		}
		if spec.EditorOnly, err = parseIDs(domain.KindInvalid, dto.EditorOnly...); err != nil {
			return zerr.With(err, "package", name)
		}

		m.AddPackage(spec)
	}
	return nil
}

func addPrimaryAssets(m *domain.Manifest, primaries map[string]*PrimaryAssetDTO) error {
	for name, dto := range primaries {
		id, err := parseID(domain.KindPrimary, name)
		if err != nil {
			return err
		}
		var manages []domain.EntityID
		if dto != nil {
			if manages, err = parseIDs(domain.KindInvalid, dto.Manages...); err != nil {
				return zerr.With(err, "primary_asset", name)
			}
		}
		m.PrimaryAssets[id] = manages
	}
	return nil
}

func addChunks(m *domain.Manifest, chunks map[int]*ChunkDTO) error {
	for chunk, dto := range chunks {
		if chunk < 0 {
			return zerr.With(domain.ErrInvalidEntityID, "chunk", chunk)
		}
		if dto == nil {
			dto = &ChunkDTO{}
		}

		explicit, err := parseIDs(domain.KindInvalid, dto.Explicit...)
		if err != nil {
			return zerr.With(err, "chunk", chunk)
		}
		all, err := parseIDs(domain.KindPackage, dto.All...)
		if err != nil {
			return zerr.With(err, "chunk", chunk)
		}
		if len(all) == 0 {
			all = closure(m, explicit)
		}

		membership := domain.ChunkMembership{
			Explicit: explicit,
			All:      make(map[domain.EntityID]struct{}, len(all)+len(explicit)),
		}
		for _, id := range slices.Concat(explicit, all) {
			if id.IsPackage() {
				membership.All[id] = struct{}{}
			}
		}
		m.Chunks[chunk] = membership
	}
	return nil
}

// closure returns the packages reachable from ids through hard dependencies.
func closure(m *domain.Manifest, ids []domain.EntityID) []domain.EntityID {
	seen := make(map[domain.EntityID]bool)
	var out []domain.EntityID
	queue := slices.Clone(ids)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] || !id.IsPackage() || id.IsScript() {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if spec, ok := m.Package(id); ok {
			queue = append(queue, spec.DependsOn...)
		}
	}
	return out
}

// parseID parses an entity id, requiring kind unless it is domain.KindInvalid.
func parseID(kind domain.EntityKind, value string) (domain.EntityID, error) {
	id, err := domain.ParseEntityID(value)
	if err != nil {
		return domain.EntityID{}, err
	}
	if kind != domain.KindInvalid && id.Kind() != kind {
		return domain.EntityID{}, zerr.With(domain.ErrInvalidEntityID, "id", value)
	}
	return id, nil
}

func parseIDs(kind domain.EntityKind, values ...string) ([]domain.EntityID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]domain.EntityID, 0, len(values))
	for _, v := range values {
		id, err := parseID(kind, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func resolveRoot(manifestPath, configuredRoot string) string {
	manifestDir := filepath.Dir(manifestPath)
	if configuredRoot == "" {
		return filepath.Clean(manifestDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(manifestDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](fsys fs.FileSystem, path string, target *T) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	return nil
}
