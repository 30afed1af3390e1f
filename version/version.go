package version

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "0.1.0"
	GitCommit = ""
	BuildID   = ""
	BuildTime = ""
)

// Environment variables consulted when the commit or build id was not set
// at build time, in order.
var (
	commitEnvVars  = []string{"GITHUB_SHA", "NETLIFY_COMMIT_REF", "COMMIT_REF"}
	buildIDEnvVars = []string{"GITHUB_RUN_ID", "BUILD_ID"}
)

// Build describes the running binary. Empty fields are omitted.
type Build struct {
	SHA     string `json:"sha,omitempty"`
	BuildID string `json:"buildId,omitempty"`
	Go      string `json:"go"`
}

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	IsDirty   bool   `json:"is_dirty"`
	Build     Build  `json:"build"`
}

// GetBuild returns the commit, build id and Go version of the running binary.
// The commit falls back to the CI environment, then to the VCS stamp of
// the module build.
func GetBuild() Build {
	b := Build{
		SHA:     firstNonEmpty(GitCommit, lookupFirst(commitEnvVars)),
		BuildID: firstNonEmpty(BuildID, lookupFirst(buildIDEnvVars)),
		Go:      runtime.Version(),
	}
	if b.SHA == "" {
		b.SHA, _ = vcsStamp()
	}
	return b
}

// GetVersionInfo returns comprehensive version information.
func GetVersionInfo() *Info {
	_, dirty := vcsStamp()
	return &Info{
		Version:   Version,
		BuildTime: BuildTime,
		IsDirty:   dirty,
		Build:     GetBuild(),
	}
}

// GetShortVersion returns the version with the abbreviated commit appended
// when one is known.
func GetShortVersion() string {
	info := GetVersionInfo()
	sha := info.Build.SHA
	if sha == "" {
		return info.Version
	}
	if len(sha) > 7 {
		sha = sha[:7]
	}
	s := info.Version + "-" + sha
	if info.IsDirty {
		s += "-dirty"
	}
	return s
}

func vcsStamp() (revision string, dirty bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return revision, dirty
}

func lookupFirst(names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
