package ports

import "go.trai.ch/sizemap/internal/core/domain"

// BaselineStore defines the interface for persisting first-ever root sizes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BaselineStore interface {
	// Get retrieves the baseline stored under key.
	// Returns nil, nil if not found.
	Get(root, key string) (*domain.Baseline, error)

	// Put stores the baseline under key.
	Put(root, key string, baseline domain.Baseline) error
}
