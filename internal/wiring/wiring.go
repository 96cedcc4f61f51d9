// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sizemap/internal/adapters/cas"
	_ "go.trai.ch/sizemap/internal/adapters/config"
	_ "go.trai.ch/sizemap/internal/adapters/fs"
	_ "go.trai.ch/sizemap/internal/adapters/logger"
	_ "go.trai.ch/sizemap/internal/adapters/telemetry"
	_ "go.trai.ch/sizemap/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/sizemap/internal/app"
)
