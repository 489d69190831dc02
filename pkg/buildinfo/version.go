// Package buildinfo carries version metadata injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/blockboard/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/blockboard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON shape served on the health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
}

// Template returns the version template for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (%s, built %s, %s)\n", i.Version, i.Commit, i.Date, i.GoVersion)
}
