package domain

import "time"

// SizeKind names the size metric read from the size oracle, e.g. "disk" or "memory".
type SizeKind string

const (
	// SizeKindDisk is the on-disk file size of a package.
	SizeKindDisk SizeKind = "disk"
	// SizeKindMemory is the estimated in-memory size of a package.
	SizeKindMemory SizeKind = "memory"
)

// DefaultSizeKind is used when neither flags, environment nor manifest name one.
const DefaultSizeKind = SizeKindDisk

// SizeState is the freshness of a cached size.
type SizeState uint8

const (
	// StateDirty means the stored size may be stale and must be recomputed on read.
	StateDirty SizeState = iota
	// StateClean means the stored size reflects the last computation.
	StateClean
)

// String implements fmt.Stringer.
func (s SizeState) String() string {
	if s == StateClean {
		return "clean"
	}
	return "dirty"
}

// AssetSizeRecord is the cached total size of one root entity.
type AssetSizeRecord struct {
	Root         EntityID
	Kind         SizeKind
	State        SizeState
	Size         int64
	InitialSize  int64
	HasKnownSize bool
}

// Dirty reports whether the record must be recomputed before use.
func (r AssetSizeRecord) Dirty() bool {
	return r.State == StateDirty
}

// SizeTotals summarizes a finalized tree.
type SizeTotals struct {
	AssetCount int
	Size       int64
	AnyUnknown bool
}

// Baseline is the persisted first-ever size of a root under a size kind.
type Baseline struct {
	Root       string    `json:"root,omitzero"`
	Kind       SizeKind  `json:"kind,omitzero"`
	Size       int64     `json:"size"`
	Known      bool      `json:"known"`
	RecordedAt time.Time `json:"recorded_at,omitzero"`
}

// BaselineKey returns the storage key of a root under a size kind.
func BaselineKey(root EntityID, kind SizeKind) string {
	return string(kind) + "|" + root.String()
}
