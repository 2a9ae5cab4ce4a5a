// Package version reports the build information of the binaries.
//
// The values are set at build time, e.g.
//
//	go build -ldflags "-X github.com/information-sharing-networks/docusign-client/internal/version.version=v1.2.0 \
//	  -X github.com/information-sharing-networks/docusign-client/internal/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/information-sharing-networks/docusign-client/internal/version.gitCommit=$(git rev-parse --short HEAD)"
//
// When they are not set the module build info is used instead.
package version

import "runtime/debug"

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type Info struct {
	Version   string `json:"version" example:"v1.2.0"`
	BuildDate string `json:"build_date" example:"2024-01-28T10:00:00Z"`
	GitCommit string `json:"git_commit" example:"3f2a1bc"`
}

// Get returns the version information of the running binary
func Get() Info {
	info := Info{Version: version, BuildDate: buildDate, GitCommit: gitCommit}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" && s.Value != "" {
				info.GitCommit = s.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.time":
			if info.BuildDate == "unknown" && s.Value != "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}
