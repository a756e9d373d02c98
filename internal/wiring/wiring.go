// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/coil/internal/adapters/cas"
	_ "go.trai.ch/coil/internal/adapters/config"
	_ "go.trai.ch/coil/internal/adapters/esbuild"
	_ "go.trai.ch/coil/internal/adapters/logger"
	_ "go.trai.ch/coil/internal/adapters/shell"
	_ "go.trai.ch/coil/internal/adapters/telemetry"
	_ "go.trai.ch/coil/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/coil/internal/app"
	_ "go.trai.ch/coil/internal/engine/loader"
	_ "go.trai.ch/coil/internal/engine/spawn"
)
