package domain

import "go.trai.ch/zerr"

var (
	// ErrEntityNotFound is returned when an entity identifier cannot be resolved to an asset record.
	ErrEntityNotFound = zerr.New("entity not found")

	// ErrSizeUnavailable is returned when a resolved asset has no size for the requested size kind.
	ErrSizeUnavailable = zerr.New("size unavailable")

	// ErrChunkNotFound is returned when a chunk id has no membership information.
	ErrChunkNotFound = zerr.New("chunk not found")

	// ErrInvalidEntityID is returned when a string cannot be parsed as an entity identifier.
	ErrInvalidEntityID = zerr.New("invalid entity id, expected /Package/Path or Type:Name")

	// ErrNoRootsSpecified is returned when a command is invoked without root entities.
	ErrNoRootsSpecified = zerr.New("no root entities specified")

	// ErrManifestNotFound is returned when no manifest can be found from the working directory.
	ErrManifestNotFound = zerr.New("could not find sizemap.yaml")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest file")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest file")

	// ErrReservedClass is returned when a manifest package uses the class reserved for unresolved packages.
	ErrReservedClass = zerr.New("class MISSING! is reserved for unresolved packages")

	// ErrEnvParseFailed is returned when the .env file or an environment override cannot be parsed.
	ErrEnvParseFailed = zerr.New("failed to parse environment")

	// ErrInvalidSizeKind is returned when a size kind contains invalid characters.
	ErrInvalidSizeKind = zerr.New("invalid size kind")

	// ErrBaselineCreateFailed is returned when the baseline store directory cannot be created.
	ErrBaselineCreateFailed = zerr.New("failed to create baseline store directory")

	// ErrBaselineReadFailed is returned when a stored baseline cannot be read.
	ErrBaselineReadFailed = zerr.New("failed to read baseline")

	// ErrBaselineUnmarshalFailed is returned when a stored baseline cannot be unmarshaled.
	ErrBaselineUnmarshalFailed = zerr.New("failed to unmarshal baseline")

	// ErrBaselineMarshalFailed is returned when a baseline cannot be marshaled.
	ErrBaselineMarshalFailed = zerr.New("failed to marshal baseline")

	// ErrBaselineWriteFailed is returned when a baseline cannot be written.
	ErrBaselineWriteFailed = zerr.New("failed to write baseline")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
