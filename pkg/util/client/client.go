package client

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"

	"github.com/tradewatch/watchctl/pkg/util"
)

// FieldManager identifies this tool in managedFields of objects it applies.
const FieldManager = "watchctl"

// DefaultNamespace is used for namespaced writes when neither the document
// nor the kubeconfig context names a namespace.
const DefaultNamespace = "default"

type defaultClient struct {
	dynamic    dynamic.Interface
	discovery  discovery.DiscoveryInterface
	restMapper meta.RESTMapper
	namespace  string
}

// NewForConfig creates a Client from a REST config. namespace is the default
// namespace for namespaced operations; empty falls back to "default".
func NewForConfig(restConfig *rest.Config, namespace string) (Client, error) {
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	// RESTMapper with caching for efficient GVK to GVR mapping
	restMapper := restmapper.NewDeferredDiscoveryRESTMapper(
		memory.NewMemCacheClient(discoveryClient),
	)

	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &defaultClient{
		dynamic:    dynamicClient,
		discovery:  discoveryClient,
		restMapper: restMapper,
		namespace:  namespace,
	}, nil
}

func (c *defaultClient) Dynamic() dynamic.Interface {
	return c.dynamic
}

func (c *defaultClient) Discovery() discovery.DiscoveryInterface {
	return c.discovery
}

func (c *defaultClient) RESTMapper() meta.RESTMapper {
	return c.restMapper
}

// resourceFor resolves a GVK to the dynamic interface for its server
// resource, scoped to the right namespace. An empty namespace on a
// namespaced resource selects the client default when defaulted is true,
// or the all-namespaces view otherwise.
func (c *defaultClient) resourceFor(
	gvk schema.GroupVersionKind,
	namespace string,
	defaulted bool,
) (dynamic.ResourceInterface, error) {
	mapping, err := c.restMapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("resolving resource for %s: %w", gvk, err)
	}

	if mapping.Scope.Name() != meta.RESTScopeNameNamespace {
		return c.dynamic.Resource(mapping.Resource), nil
	}

	if namespace == "" && defaulted {
		namespace = c.namespace
	}

	if namespace == "" {
		return c.dynamic.Resource(mapping.Resource), nil
	}

	return c.dynamic.Resource(mapping.Resource).Namespace(namespace), nil
}

func (c *defaultClient) Apply(ctx context.Context, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	ri, err := c.resourceFor(obj.GroupVersionKind(), obj.GetNamespace(), true)
	if err != nil {
		return nil, err
	}

	applied, err := ri.Create(ctx, obj, metav1.CreateOptions{FieldManager: FieldManager})
	if err == nil {
		return applied, nil
	}

	if !apierrors.IsAlreadyExists(err) {
		return nil, fmt.Errorf("creating %s %q: %w", obj.GetKind(), obj.GetName(), err)
	}

	// Idempotent re-apply: replace the existing object in place,
	// last-writer-wins. The resourceVersion of the live object is required
	// for the update to be accepted.
	existing, err := ri.Get(ctx, obj.GetName(), metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching existing %s %q: %w", obj.GetKind(), obj.GetName(), err)
	}

	desired := obj.DeepCopy()
	desired.SetResourceVersion(existing.GetResourceVersion())

	applied, err = ri.Update(ctx, desired, metav1.UpdateOptions{FieldManager: FieldManager})
	if err != nil {
		return nil, fmt.Errorf("updating %s %q: %w", obj.GetKind(), obj.GetName(), err)
	}

	return applied, nil
}

func (c *defaultClient) DeleteAll(ctx context.Context, gvk schema.GroupVersionKind, opts ...ResourceOption) error {
	cfg := util.ApplyOptions(&ResourceConfig{}, opts...)

	ri, err := c.resourceFor(gvk, cfg.Namespace, true)
	if err != nil {
		return err
	}

	deleteOpts := metav1.DeleteOptions{
		GracePeriodSeconds: cfg.GracePeriodSeconds,
	}

	err = ri.DeleteCollection(ctx, deleteOpts, metav1.ListOptions{LabelSelector: cfg.LabelSelector})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("deleting all %s: %w", gvk.Kind, err)
	}

	return nil
}

func (c *defaultClient) Get(
	ctx context.Context,
	gvk schema.GroupVersionKind,
	name string,
	opts ...ResourceOption,
) (*unstructured.Unstructured, error) {
	cfg := util.ApplyOptions(&ResourceConfig{}, opts...)

	ri, err := c.resourceFor(gvk, cfg.Namespace, true)
	if err != nil {
		return nil, err
	}

	// No wrapping here: callers poll Get and need apierrors.IsNotFound to
	// keep working on the raw error.
	return ri.Get(ctx, name, metav1.GetOptions{})
}

func (c *defaultClient) List(
	ctx context.Context,
	gvk schema.GroupVersionKind,
	opts ...ResourceOption,
) ([]*unstructured.Unstructured, error) {
	cfg := util.ApplyOptions(&ResourceConfig{}, opts...)

	ri, err := c.resourceFor(gvk, cfg.Namespace, false)
	if err != nil {
		return nil, err
	}

	var allItems []*unstructured.Unstructured

	continueToken := ""

	for {
		list, err := ri.List(ctx, metav1.ListOptions{
			LabelSelector: cfg.LabelSelector,
			Limit:         cfg.Limit,
			Continue:      continueToken,
		})
		if err != nil {
			// Permission errors are non-fatal - return empty list
			if IsPermissionError(err) {
				return []*unstructured.Unstructured{}, nil
			}

			return nil, fmt.Errorf("listing %s: %w", gvk.Kind, err)
		}

		for i := range list.Items {
			allItems = append(allItems, &list.Items[i])
		}

		if cfg.Limit > 0 && int64(len(allItems)) >= cfg.Limit {
			break
		}

		if list.GetContinue() == "" {
			break
		}

		continueToken = list.GetContinue()
	}

	return allItems, nil
}
