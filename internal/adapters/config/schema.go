package config

// ManifestFile is the structure of sizemap.yaml.
type ManifestFile struct {
	Version       string                      `yaml:"version"`
	Root          string                      `yaml:"root"`
	SizeKind      string                      `yaml:"sizeKind"`
	Packages      map[string]*PackageDTO      `yaml:"packages"`
	PrimaryAssets map[string]*PrimaryAssetDTO `yaml:"primaryAssets"`
	Chunks        map[int]*ChunkDTO           `yaml:"chunks"`
}

// PackageDTO is one content package of the manifest.
type PackageDTO struct {
	Class      string           `yaml:"class"`
	File       string           `yaml:"file"`
	Sizes      map[string]int64 `yaml:"sizes"`
	DependsOn  []string         `yaml:"dependsOn"`
	EditorOnly []string         `yaml:"editorOnly"`
}

// PrimaryAssetDTO lists the entities a primary asset manages.
type PrimaryAssetDTO struct {
	Manages []string `yaml:"manages"`
}

// ChunkDTO assigns packages to a chunk. When All is empty it is derived from
// the explicit assets and their hard dependencies.
type ChunkDTO struct {
	Explicit []string `yaml:"explicit"`
	All      []string `yaml:"all"`
}
