// Package version detects the Kubernetes server version and compares it
// against the minimum this tool supports.
package version

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"

	"k8s.io/client-go/discovery"
)

// Detect queries the API server for its version and parses it as semver.
// Build metadata suffixes from distributions ("v1.28.3+k3s1") are tolerated.
func Detect(discoveryClient discovery.DiscoveryInterface) (*semver.Version, error) {
	info, err := discoveryClient.ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("querying server version: %w", err)
	}

	parsed, err := Parse(info.GitVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing server version %q: %w", info.GitVersion, err)
	}

	return parsed, nil
}

// Parse parses a Kubernetes GitVersion string ("v1.28.3", "v1.28.3+k3s1")
// into a semver version.
func Parse(gitVersion string) (*semver.Version, error) {
	trimmed := strings.TrimPrefix(gitVersion, "v")

	parsed, err := semver.ParseTolerant(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", gitVersion, err)
	}

	return &parsed, nil
}

// AtLeast reports whether v satisfies the minimum version. A nil version
// never satisfies anything.
func AtLeast(v *semver.Version, minimum semver.Version) bool {
	if v == nil {
		return false
	}

	return v.GTE(minimum)
}
