package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sizemap/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sizemap/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.FileSystemNodeID,
			logger.NodeID,
			cas.NodeID,
			fs.DetectorNodeID,
			watcher.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[fs.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BaselineStore](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[ports.ChangeDetector](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fsys, log, store, detector, w).WithTelemetry(tel), nil
}
