package config_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sizemap/internal/adapters/config"
	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const arenaManifest = `
version: "1"
root: Content
sizeKind: disk
packages:
  /Game/Maps/Arena:
    class: World
    file: Maps/Arena.umap
    sizes:
      memory: 4096
    dependsOn: [/Game/Props/Crate, /Script/Engine]
    editorOnly: [/Game/Editor/Gizmo]
  /Game/Props/Crate:
    class: StaticMesh
    file: Props/Crate.uasset
  /Game/Props/Barrel: {}
primaryAssets:
  Map:Arena:
    manages: [/Game/Maps/Arena]
chunks:
  1:
    explicit: [/Game/Maps/Arena]
  2:
    explicit: [/Game/Props/Barrel]
    all: [/Game/Props/Barrel, /Game/Props/Crate]
`

func newLoader(t *testing.T, files fstest.MapFS) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log, fs.NewMapFSAdapter("/project", files))
}

func TestLoader_Load(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{
		"sizemap.yaml":               {Data: []byte(arenaManifest)},
		"Content/Maps/Arena.umap":    {Data: []byte("x")},
		"Content/Props/Crate.uasset": {Data: []byte("x")},
	})

	m, err := loader.Load("/project/Content/Maps")
	require.NoError(t, err)

	assert.Equal(t, "/project/sizemap.yaml", m.Path)
	assert.Equal(t, "/project/Content", m.Root)
	assert.Equal(t, domain.SizeKindDisk, m.SizeKind)
	require.Len(t, m.Packages, 3)

	arena, ok := m.Package(domain.PackageID("/Game/Maps/Arena"))
	require.True(t, ok)
	assert.Equal(t, "World", arena.Class)
	assert.Equal(t, map[domain.SizeKind]int64{domain.SizeKindMemory: 4096}, arena.Sizes)
	assert.Equal(t, []domain.EntityID{
		domain.PackageID("/Game/Props/Crate"),
		domain.PackageID("/Script/Engine"),
	}, arena.DependsOn)
	assert.Equal(t, []domain.EntityID{domain.PackageID("/Game/Editor/Gizmo")}, arena.EditorOnly)
	assert.Equal(t, "/project/Content/Maps/Arena.umap", m.FilePath(arena))

	barrel, ok := m.Package(domain.PackageID("/Game/Props/Barrel"))
	require.True(t, ok)
	assert.Equal(t, config.DefaultClass, barrel.Class)
	assert.Empty(t, m.FilePath(barrel))

	assert.Equal(t, []domain.EntityID{domain.PackageID("/Game/Maps/Arena")},
		m.PrimaryAssets[domain.PrimaryID("Map", "Arena")])

	assert.Equal(t, []string{
		"/project/Content/Maps/Arena.umap",
		"/project/Content/Props/Crate.uasset",
	}, m.Files())
}

func TestLoader_Chunks(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{"sizemap.yaml": {Data: []byte(arenaManifest)}})

	m, err := loader.LoadFile("/project/sizemap.yaml")
	require.NoError(t, err)

	derived := m.Chunks[1]
	assert.Equal(t, []domain.EntityID{domain.PackageID("/Game/Maps/Arena")}, derived.Explicit)
	assert.True(t, derived.Contains(domain.PackageID("/Game/Maps/Arena")))
	assert.True(t, derived.Contains(domain.PackageID("/Game/Props/Crate")), "hard dependencies join the chunk")
	assert.False(t, derived.Contains(domain.PackageID("/Script/Engine")))
	assert.False(t, derived.Contains(domain.PackageID("/Game/Editor/Gizmo")))

	listed := m.Chunks[2]
	assert.Len(t, listed.All, 2)
	assert.True(t, listed.Contains(domain.PackageID("/Game/Props/Crate")))
}

func TestLoader_DefaultsAndRoot(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantRoot string
		wantKind domain.SizeKind
	}{
		{
			name:     "empty manifest",
			manifest: "version: \"1\"\n",
			wantRoot: "/project",
			wantKind: domain.DefaultSizeKind,
		},
		{
			name:     "absolute root",
			manifest: "root: /assets\nsizeKind: memory\n",
			wantRoot: "/assets",
			wantKind: domain.SizeKindMemory,
		},
		{
			name:     "parent root",
			manifest: "root: ../shared\nsizeKind: cooked_size\n",
			wantRoot: "/shared",
			wantKind: domain.SizeKind("cooked_size"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader(t, fstest.MapFS{"sizemap.yaml": {Data: []byte(tt.manifest)}})

			m, err := loader.LoadFile("/project/sizemap.yaml")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, m.Root)
			assert.Equal(t, tt.wantKind, m.SizeKind)
			assert.Empty(t, m.Packages)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  error
	}{
		{
			name:     "malformed yaml",
			manifest: "packages: [",
			wantErr:  domain.ErrManifestParseFailed,
		},
		{
			name:     "package key is a primary id",
			manifest: "packages:\n  Map:Arena: {}\n",
			wantErr:  domain.ErrInvalidEntityID,
		},
		{
			name:     "bad dependency",
			manifest: "packages:\n  /Game/A:\n    dependsOn: [nonsense]\n",
			wantErr:  domain.ErrInvalidEntityID,
		},
		{
			name:     "primary key is a package",
			manifest: "primaryAssets:\n  /Game/A: {}\n",
			wantErr:  domain.ErrInvalidEntityID,
		},
		{
			name:     "invalid size kind",
			manifest: "sizeKind: Disk Size\n",
			wantErr:  domain.ErrInvalidSizeKind,
		},
		{
			name:     "invalid per-package size kind",
			manifest: "packages:\n  /Game/A:\n    sizes:\n      \"ON DISK\": 1\n",
			wantErr:  domain.ErrInvalidSizeKind,
		},
		{
			name:     "reserved class",
			manifest: "packages:\n  /Game/A:\n    class: MISSING!\n",
			wantErr:  domain.ErrReservedClass,
		},
		{
			name:     "negative chunk",
			manifest: "chunks:\n  -1:\n    explicit: [/Game/A]\n",
			wantErr:  domain.ErrInvalidEntityID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader(t, fstest.MapFS{"sizemap.yaml": {Data: []byte(tt.manifest)}})

			_, err := loader.LoadFile("/project/sizemap.yaml")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_NegativeSizeIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("negative disk size of /Game/A treated as unknown")

	loader := config.NewLoader(log, fs.NewMapFSAdapter("/project", fstest.MapFS{
		"sizemap.yaml": {Data: []byte("packages:\n  /Game/A:\n    sizes:\n      disk: -5\n")},
	}))

	m, err := loader.LoadFile("/project/sizemap.yaml")
	require.NoError(t, err)
	assert.Empty(t, m.Packages[domain.PackageID("/Game/A")].Sizes)
}

func TestLoader_NotFound(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{"Content/readme.txt": {Data: []byte("x")}})

	_, err := loader.Load("/project/Content")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestNotFound.Error())

	_, err = loader.LoadFile("/project/sizemap.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestReadFailed.Error())
}

func TestParseSizeKind(t *testing.T) {
	kind, err := config.ParseSizeKind("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSizeKind, kind)

	kind, err = config.ParseSizeKind("memory")
	require.NoError(t, err)
	assert.Equal(t, domain.SizeKindMemory, kind)

	_, err = config.ParseSizeKind("9lives")
	require.Error(t, err)
}
