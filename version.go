package geodesic

import "runtime"

// Version of the geodesic engine.
const Version = "1.0.0"

// EngineVersion returns a short human-readable identifier of the engine.
func EngineVersion() string {
	return "geodesic/" + Version
}

// ToolchainVersion returns a short human-readable identifier of the Go
// toolchain the engine was built with.
func ToolchainVersion() string {
	return runtime.Version()
}
