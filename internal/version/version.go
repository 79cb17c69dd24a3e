// Package version identifies the SDK build to hosts and to the licensing
// service.
package version

import "fmt"

// Build metadata, overridden with -ldflags "-X" at release time.
var (
	Name        = "AVPlayerDataSDK"
	Version     = "0.1.196"
	BuildNumber = "197"
	BuildTime   = ""
	GitCommit   = ""
)

// Info is the build metadata as served on /api/v1/version.
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	BuildNumber string `json:"buildNumber,omitempty"`
	BuildTime   string `json:"buildTime,omitempty"`
	GitCommit   string `json:"gitCommit,omitempty"`
}

func GetInfo() Info {
	return Info{
		Name:        Name,
		Version:     Version,
		BuildNumber: BuildNumber,
		BuildTime:   BuildTime,
		GitCommit:   GitCommit,
	}
}

// String renders "Name vX.Y.Z (commit) built TIME"; the commit is shortened
// to seven characters and empty parts are left out.
func (i Info) String() string {
	out := i.Name + " v" + i.Version
	if commit := i.GitCommit; commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		out += " (" + commit + ")"
	}
	if i.BuildTime != "" {
		out += " built " + i.BuildTime
	}
	return out
}

// UserAgent is sent with every request to the licensing service.
func (i Info) UserAgent() string {
	return fmt.Sprintf("ag.sportradar.mobile.%s/%s (Go; %s)", i.Name, i.Version, i.BuildNumber)
}
