package client

import (
	"context"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
)

// Reader provides read-only access to Kubernetes resources. Resources are
// addressed by GroupVersionKind; the implementation resolves the server
// resource through its RESTMapper so callers never deal with plurals.
type Reader interface {
	// Get retrieves a single resource by GVK and name.
	Get(
		ctx context.Context,
		gvk schema.GroupVersionKind,
		name string,
		opts ...ResourceOption,
	) (*unstructured.Unstructured, error)

	// List lists all instances of a resource type handling pagination
	// automatically.
	List(
		ctx context.Context,
		gvk schema.GroupVersionKind,
		opts ...ResourceOption,
	) ([]*unstructured.Unstructured, error)
}

// Writer provides write access to Kubernetes resources.
type Writer interface {
	// Apply submits a manifest document, creating the resource or updating
	// it in place when one with the same name already exists. Operations are
	// idempotent by name; the control plane's own semantics govern whether
	// anything actually changes on re-apply.
	Apply(ctx context.Context, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)

	// DeleteAll deletes every instance of the given kind visible in the
	// configured scope. It returns once the control plane has acknowledged
	// the deletion; it does not wait for finalization.
	DeleteAll(ctx context.Context, gvk schema.GroupVersionKind, opts ...ResourceOption) error
}

// Interface is the narrow contract the lifecycle orchestrator consumes.
type Interface interface {
	Reader
	Writer
}

// Client provides full access to Kubernetes resources. It embeds Interface
// and exposes the underlying clients for callers that need low-level access.
type Client interface {
	Interface

	// Dynamic returns the dynamic Kubernetes client.
	Dynamic() dynamic.Interface

	// Discovery returns the Kubernetes discovery client.
	Discovery() discovery.DiscoveryInterface

	// RESTMapper returns the REST mapper for GVK/GVR resolution.
	RESTMapper() meta.RESTMapper
}
