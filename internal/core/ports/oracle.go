package ports

import "go.trai.ch/sizemap/internal/core/domain"

// DependencyOracle answers forward and reverse dependency queries.
//
//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type DependencyOracle interface {
	// GetDependencies returns the direct dependencies of id matching the query.
	GetDependencies(id domain.EntityID, query domain.DependencyQuery) ([]domain.EntityID, error)

	// GetReferencers returns the entities that reference id in the given category.
	GetReferencers(id domain.EntityID, category domain.DependencyCategory) ([]domain.EntityID, error)
}

// EntityResolver maps identifiers to asset records.
type EntityResolver interface {
	// Resolve returns the record of a package.
	// It returns domain.ErrEntityNotFound when the package cannot be located.
	Resolve(id domain.EntityID) (domain.AssetRecord, error)

	// SynthesizePlaceholder returns a record standing in for a primary asset.
	SynthesizePlaceholder(id domain.EntityID) domain.AssetRecord
}

// SizeOracle reports the size of resolved assets.
type SizeOracle interface {
	// GetSize returns the size of the record in bytes for the given kind.
	// It returns domain.ErrSizeUnavailable when the kind does not apply to the asset.
	GetSize(record domain.AssetRecord, kind domain.SizeKind) (int64, error)
}

// ChunkRegistry reports chunk assignments.
type ChunkRegistry interface {
	// GetChunkMembership returns the assets assigned to a chunk.
	// It returns domain.ErrChunkNotFound for unknown chunks.
	GetChunkMembership(chunkID int) (domain.ChunkMembership, error)
}
