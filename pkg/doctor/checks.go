package doctor

import (
	"context"
	"fmt"

	"github.com/blang/semver/v4"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/tradewatch/watchctl/pkg/resources"
	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/discovery"
	"github.com/tradewatch/watchctl/pkg/util/version"
)

// MinServerVersion is the oldest Kubernetes server the watcher stack is
// known to run on.
//
//nolint:gochecknoglobals // single shared version floor
var MinServerVersion = semver.MustParse("1.23.0")

// Result is the outcome of one preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Check is a single preflight probe against the cluster.
type Check func(ctx context.Context, c client.Client) Result

// ServerVersionCheck verifies the API server is reachable and recent enough.
// Reachability is implicit: an unreachable server fails version detection.
func ServerVersionCheck(_ context.Context, c client.Client) Result {
	detected, err := version.Detect(c.Discovery())
	if err != nil {
		return Result{
			Name:   "server version",
			Detail: fmt.Sprintf("cluster unreachable: %v", err),
		}
	}

	if !version.AtLeast(detected, MinServerVersion) {
		return Result{
			Name:   "server version",
			Detail: fmt.Sprintf("server %s is older than minimum %s", detected, MinServerVersion),
		}
	}

	return Result{
		Name:   "server version",
		Passed: true,
		Detail: fmt.Sprintf("server %s >= %s", detected, MinServerVersion),
	}
}

// APIResourceCheck verifies the server serves one resource the stack
// depends on.
func APIResourceCheck(groupVersion schema.GroupVersion, resource string) Check {
	name := fmt.Sprintf("api resource %s/%s", groupVersion.String(), resource)

	return func(_ context.Context, c client.Client) Result {
		if !discovery.HasResource(c.Discovery(), groupVersion, resource) {
			return Result{
				Name:   name,
				Detail: "not served by this cluster",
			}
		}

		return Result{
			Name:   name,
			Passed: true,
			Detail: "available",
		}
	}
}

// DefaultChecks is the preflight suite run before deploys: server version
// plus every API resource the manifest stack relies on.
func DefaultChecks() []Check {
	checks := []Check{ServerVersionCheck}

	for _, rt := range []resources.ResourceType{
		resources.Deployment,
		resources.ConfigMap,
		resources.Service,
		resources.PersistentVolume,
		resources.PersistentVolumeClaim,
	} {
		checks = append(checks, APIResourceCheck(rt.GVK().GroupVersion(), rt.Resource))
	}

	return checks
}

// Verify runs every check and collects the results. The error is non-nil
// when at least one check failed and names the failures.
func Verify(ctx context.Context, c client.Client, checks []Check) ([]Result, error) {
	results := make([]Result, 0, len(checks))
	failed := 0

	for _, check := range checks {
		result := check(ctx, c)
		if !result.Passed {
			failed++
		}

		results = append(results, result)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d preflight checks failed", failed, len(checks))
	}

	return results, nil
}
