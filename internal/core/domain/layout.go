package domain

import "path/filepath"

const (
	// SizemapDirName is the name of the internal workspace directory.
	SizemapDirName = ".sizemap"

	// BaselineDirName is the name of the baseline store directory.
	BaselineDirName = "baselines"

	// ManifestFileName is the name of the asset registry manifest.
	ManifestFileName = "sizemap.yaml"

	// EnvFileName is the name of the optional environment override file.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultBaselinePath returns the default path for persisted baselines.
// It joins .sizemap and baselines.
func DefaultBaselinePath() string {
	return filepath.Join(SizemapDirName, BaselineDirName)
}
