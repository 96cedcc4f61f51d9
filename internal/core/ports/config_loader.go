package ports

import "go.trai.ch/sizemap/internal/core/domain"

// ManifestLoader defines the interface for loading the asset registry manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load walks up from cwd to the nearest sizemap.yaml and loads it.
	Load(cwd string) (*domain.Manifest, error)

	// LoadFile loads the manifest at the given path.
	LoadFile(path string) (*domain.Manifest, error)
}
