package resources

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Category classifies a resource kind for lifecycle handling.
type Category string

const (
	// CategoryWorkload marks kinds with a replica-based readiness concept.
	// Workloads are polled for readiness after apply.
	CategoryWorkload Category = "Workload"

	// CategoryStorage marks durable storage kinds. Storage is exempted from
	// clean-start deletion unless the caller opts in, and is force-deleted
	// (zero grace period) when it is deleted, since volume finalizers can
	// otherwise wedge a teardown indefinitely.
	CategoryStorage Category = "Storage"

	// CategoryPlain marks kinds with no readiness concept. Plain resources
	// are considered ready as soon as the apply is acknowledged.
	CategoryPlain Category = "Plain"
)

// ResourceType defines a Kubernetes resource with its GroupVersionKind,
// GroupVersionResource and lifecycle category.
type ResourceType struct {
	Group    string
	Version  string
	Kind     string
	Resource string
	Category Category
}

// GVK returns the GroupVersionKind for this resource.
func (r ResourceType) GVK() schema.GroupVersionKind {
	return schema.GroupVersionKind{
		Group:   r.Group,
		Version: r.Version,
		Kind:    r.Kind,
	}
}

// GVR returns the GroupVersionResource for this resource.
func (r ResourceType) GVR() schema.GroupVersionResource {
	return schema.GroupVersionResource{
		Group:    r.Group,
		Version:  r.Version,
		Resource: r.Resource,
	}
}

// APIVersion returns the apiVersion string (group/version or just version for core resources).
func (r ResourceType) APIVersion() string {
	if r.Group == "" {
		return r.Version
	}

	return r.Group + "/" + r.Version
}

// TypeMeta returns a metav1.TypeMeta for this resource type.
func (r ResourceType) TypeMeta() metav1.TypeMeta {
	return metav1.TypeMeta{
		APIVersion: r.APIVersion(),
		Kind:       r.Kind,
	}
}

// Unstructured returns a new unstructured.Unstructured with the GVK set.
func (r ResourceType) Unstructured() unstructured.Unstructured {
	obj := unstructured.Unstructured{}
	obj.SetGroupVersionKind(r.GVK())

	return obj
}

// Waitable reports whether resources of this type have a readiness concept
// worth polling for.
func (r ResourceType) Waitable() bool {
	return r.Category == CategoryWorkload
}

// PreservedOnClean reports whether this type is exempted from clean-start
// deletion by default.
func (r ResourceType) PreservedOnClean() bool {
	return r.Category == CategoryStorage
}

// Centralized resource type definitions for the watcher stack.
// All GVK/GVR references MUST use these definitions, not inline construction.
//
//nolint:gochecknoglobals // centralized GVK/GVR definitions
var (
	// Deployment is the Kubernetes Deployment resource. The watcher workloads
	// and the PostgreSQL instance are Deployments.
	Deployment = ResourceType{
		Group:    appsv1.SchemeGroupVersion.Group,
		Version:  appsv1.SchemeGroupVersion.Version,
		Kind:     "Deployment",
		Resource: "deployments",
		Category: CategoryWorkload,
	}

	Pod = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "Pod",
		Resource: "pods",
		Category: CategoryPlain,
	}

	Service = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "Service",
		Resource: "services",
		Category: CategoryPlain,
	}

	ConfigMap = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "ConfigMap",
		Resource: "configmaps",
		Category: CategoryPlain,
	}

	Secret = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "Secret",
		Resource: "secrets",
		Category: CategoryPlain,
	}

	Namespace = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "Namespace",
		Resource: "namespaces",
		Category: CategoryPlain,
	}

	// PersistentVolume backs the PostgreSQL data directory. It is the only
	// kind preserved by default across clean starts.
	PersistentVolume = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "PersistentVolume",
		Resource: "persistentvolumes",
		Category: CategoryStorage,
	}

	// PersistentVolumeClaim is deliberately NOT classified as storage: a
	// claim is cheap to recreate and must be re-bound after a clean start,
	// so it is deleted along with the plain kinds.
	PersistentVolumeClaim = ResourceType{
		Group:    corev1.SchemeGroupVersion.Group,
		Version:  corev1.SchemeGroupVersion.Version,
		Kind:     "PersistentVolumeClaim",
		Resource: "persistentvolumeclaims",
		Category: CategoryPlain,
	}
)

// All lists every known resource type, in a stable display order.
//
//nolint:gochecknoglobals // derived from the definitions above
var All = []ResourceType{
	Namespace,
	PersistentVolume,
	PersistentVolumeClaim,
	ConfigMap,
	Secret,
	Service,
	Deployment,
	Pod,
}

//nolint:gochecknoglobals // lookup index over All
var byKind = func() map[string]ResourceType {
	m := make(map[string]ResourceType, len(All))
	for _, r := range All {
		m[r.Kind] = r
	}

	return m
}()

// ByKind looks up a resource type by its kind string. The second return
// value is false for kinds outside the known set; callers should treat
// unknown kinds as CategoryPlain and resolve their resource mapping through
// the cluster's RESTMapper.
func ByKind(kind string) (ResourceType, bool) {
	r, ok := byKind[kind]

	return r, ok
}

// CategoryOf returns the lifecycle category for a kind string, defaulting
// unknown kinds to CategoryPlain.
func CategoryOf(kind string) Category {
	if r, ok := byKind[kind]; ok {
		return r.Category
	}

	return CategoryPlain
}
