package ports

// ChangeDetector decides whether a file's content changed since it was last seen.
//
//go:generate mockgen -source=change_detector.go -destination=mocks/mock_change_detector.go -package=mocks
type ChangeDetector interface {
	// Prime records the current content of the given files.
	Prime(paths []string) error

	// Changed reports whether the file differs from the recorded content
	// and records its new content.
	Changed(path string) (bool, error)
}
