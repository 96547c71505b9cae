// Package build describes the running consent binary.
package build

import "fmt"

const devVersion = "dev"

// Info is stamped into the binary with -ldflags at release time.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// IsRelease reports whether the binary came from a tagged build.
func (i Info) IsRelease() bool {
	return i.Version != "" && i.Version != devVersion
}

// String is the one-line form printed by `consent version`.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = devVersion
	}
	return fmt.Sprintf("consent %s (%s, %s)", v, orUnknown(i.Commit), orUnknown(i.BuildDate))
}

// Labels are the build_info metric labels.
func (i Info) Labels() map[string]string {
	return map[string]string{
		"version":    orUnknown(i.Version),
		"commit":     orUnknown(i.Commit),
		"go_version": orUnknown(i.GoVersion),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Contributors lists the project authors shown by `consent about`.
func Contributors() []string {
	return []string{"bnema"}
}

// RepoURL is the project home.
func RepoURL() string {
	return "https://github.com/bnema/consent"
}
