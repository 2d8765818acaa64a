package client

import (
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"

	"github.com/tradewatch/watchctl/pkg/resources"
)

// TestClientConfig holds all sub-clients for constructing a test client.
type TestClientConfig struct {
	Dynamic    dynamic.Interface
	Discovery  discovery.DiscoveryInterface
	RESTMapper meta.RESTMapper
	Namespace  string
}

// NewForTesting creates a Client for use in tests. Only the sub-clients the
// test exercises need to be populated.
func NewForTesting(cfg TestClientConfig) Client {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &defaultClient{
		dynamic:    cfg.Dynamic,
		discovery:  cfg.Discovery,
		restMapper: cfg.RESTMapper,
		namespace:  namespace,
	}
}

// TestRESTMapper returns a static RESTMapper covering every known resource
// type, for tests built on the fake dynamic client where discovery is not
// available.
func TestRESTMapper() meta.RESTMapper {
	mapper := meta.NewDefaultRESTMapper(nil)

	for _, r := range resources.All {
		scope := meta.RESTScopeNamespace
		if r.Kind == resources.Namespace.Kind || r.Kind == resources.PersistentVolume.Kind {
			scope = meta.RESTScopeRoot
		}

		mapper.Add(r.GVK(), scope)
	}

	return mapper
}
