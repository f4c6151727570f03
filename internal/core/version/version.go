// Package version exposes build metadata stamped at link time
package version

// Populated via -ldflags at build time
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Service is the canonical service name used in logs and version payloads
const Service = "criticode-api"

// BuildInfo is the wire shape for the version endpoint
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the current build metadata
func Info() BuildInfo {
	return BuildInfo{Service: Service, Version: Version, Commit: Commit, Date: Date}
}
