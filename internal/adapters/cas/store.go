// Package cas implements the file-per-key baseline store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BaselineStore using a file-per-key strategy.
type Store struct{}

// NewStore creates a new BaselineStore. Every operation names the project root it works below.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the baseline stored under key.
func (s *Store) Get(root, key string) (*domain.Baseline, error) {
	filename := s.getFilename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrBaselineReadFailed.Error())
	}

	var baseline domain.Baseline
	if err := json.Unmarshal(data, &baseline); err != nil {
		return nil, zerr.Wrap(err, domain.ErrBaselineUnmarshalFailed.Error())
	}

	return &baseline, nil
}

// Put stores the baseline under key, replacing any previous one.
func (s *Store) Put(root, key string, baseline domain.Baseline) error {
	data, err := json.MarshalIndent(baseline, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrBaselineMarshalFailed.Error())
	}

	filename := s.getFilename(root, key)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrBaselineCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrBaselineWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, key string) string {
	hash := sha256.Sum256([]byte(key))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultBaselinePath())
	return filepath.Join(storeDir, hexHash+".json")
}
