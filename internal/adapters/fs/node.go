package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sizemap/internal/core/ports"
)

const (
	// FileSystemNodeID is the unique identifier for the file system Graft node.
	FileSystemNodeID graft.ID = "adapter.fs"
	// DetectorNodeID is the unique identifier for the change detector Graft node.
	DetectorNodeID graft.ID = "adapter.fs.detector"
)

func init() {
	graft.Register(graft.Node[FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (FileSystem, error) {
			return NewOSFS(), nil
		},
	})

	graft.Register(graft.Node[ports.ChangeDetector]{
		ID:        DetectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChangeDetector, error) {
			return NewFingerprinter(), nil
		},
	})
}
