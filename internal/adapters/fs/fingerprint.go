package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeDetector = (*Fingerprinter)(nil)

// Fingerprinter remembers the XXHash of file contents and reports real changes.
// Editors that rewrite a file with identical bytes do not count as a change.
type Fingerprinter struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewFingerprinter creates an empty Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{hashes: make(map[string]uint64)}
}

// ComputeFileHash computes the XXHash of a file's content.
func ComputeFileHash(path string) (uint64, error) {
	sum, opened, err := hashFile(path)
	if err != nil {
		if !opened {
			return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
		}
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return sum, nil
}

// hashFile returns the raw error so callers can tell missing files apart.
func hashFile(path string) (sum uint64, opened bool, err error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, false, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, true, err
	}
	return hasher.Sum64(), true, nil
}

// Prime records the current content of paths. Missing files are skipped.
func (f *Fingerprinter) Prime(paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, path := range paths {
		sum, _, err := hashFile(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
		}
		f.hashes[path] = sum
	}
	return nil
}

// Changed reports whether path differs from its recorded content and records
// the new content. A file that disappeared counts as changed once.
func (f *Fingerprinter) Changed(path string) (bool, error) {
	sum, _, err := hashFile(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	previous, known := f.hashes[path]
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			return false, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
		}
		delete(f.hashes, path)
		return known, nil
	}

	f.hashes[path] = sum
	return !known || previous != sum, nil
}
