package discovery

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
)

// HasResource reports whether the API server serves a resource with the
// given group/version and resource name. Partial discovery errors are
// tolerated; only the reachable groups are inspected.
func HasResource(
	discoveryClient discovery.DiscoveryInterface,
	groupVersion schema.GroupVersion,
	resource string,
) bool {
	// ServerGroupsAndResources can return partial errors but still provide
	// results for the reachable groups.
	_, apiResourceLists, _ := discoveryClient.ServerGroupsAndResources()

	for _, apiResourceList := range apiResourceLists {
		if apiResourceList.GroupVersion != groupVersion.String() {
			continue
		}

		for _, apiResource := range apiResourceList.APIResources {
			if apiResource.Name == resource {
				return true
			}
		}
	}

	return false
}

// GroupVersionResources returns the resources served under the given
// group/version.
func GroupVersionResources(
	discoveryClient discovery.DiscoveryInterface,
	groupVersion schema.GroupVersion,
) []metav1.APIResource {
	_, apiResourceLists, _ := discoveryClient.ServerGroupsAndResources()

	for _, apiResourceList := range apiResourceLists {
		if apiResourceList.GroupVersion == groupVersion.String() {
			return apiResourceList.APIResources
		}
	}

	return nil
}
