package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/tradewatch/watchctl/pkg/util/client"
)

const (
	// DefaultTimeout is the maximum wall-clock wait per readiness target.
	DefaultTimeout = 120 * time.Second

	// DefaultPollInterval is the spacing between readiness status polls.
	DefaultPollInterval = 5 * time.Second
)

// ReadinessPredicate decides whether an observed object has converged. It
// returns the decision plus a short status line kept for diagnostics.
type ReadinessPredicate func(obj *unstructured.Unstructured) (bool, string)

// ReadinessTarget identifies one resource to poll for readiness.
type ReadinessTarget struct {
	// Source is the manifest file the resource came from, carried through
	// into errors.
	Source    string
	GVK       schema.GroupVersionKind
	Name      string
	Namespace string

	// Ready is the kind-specific readiness predicate. Nil defaults to
	// replica-count readiness.
	Ready ReadinessPredicate
}

// TargetFor builds the readiness target for an applied document.
func TargetFor(source string, obj *unstructured.Unstructured) ReadinessTarget {
	return ReadinessTarget{
		Source:    source,
		GVK:       obj.GroupVersionKind(),
		Name:      obj.GetName(),
		Namespace: obj.GetNamespace(),
	}
}

// ReplicasReady is the readiness predicate for workloads: the observed ready
// replica count must reach the desired count, which defaults to 1 when the
// spec leaves it unset.
func ReplicasReady(obj *unstructured.Unstructured) (bool, string) {
	desired, found, err := unstructured.NestedInt64(obj.Object, "spec", "replicas")
	if err != nil || !found {
		desired = 1
	}

	ready, _, err := unstructured.NestedInt64(obj.Object, "status", "readyReplicas")
	if err != nil {
		ready = 0
	}

	return ready >= desired, fmt.Sprintf("%d/%d ready replicas", ready, desired)
}

// WaitForReady polls the cluster at interval until the target reports ready
// or timeout of wall-clock time has elapsed. A resource that is not
// queryable yet counts as not-ready: a freshly applied object may lag behind
// in the cache for a brief window. The failure carries the last observed
// status.
func WaitForReady(
	ctx context.Context,
	c client.Reader,
	target ReadinessTarget,
	interval time.Duration,
	timeout time.Duration,
) error {
	if interval == 0 {
		interval = DefaultPollInterval
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	predicate := target.Ready
	if predicate == nil {
		predicate = ReplicasReady
	}

	lastStatus := "not observed"

	err := wait.PollUntilContextTimeout(
		ctx,
		interval,
		timeout,
		true,
		func(ctx context.Context) (bool, error) {
			obj, err := c.Get(ctx, target.GVK, target.Name, client.WithNamespace(target.Namespace))
			if err != nil {
				if apierrors.IsNotFound(err) {
					lastStatus = "not found"

					return false, nil
				}

				if client.IsUnrecoverableError(err) {
					return false, fmt.Errorf("unrecoverable error polling %s %q: %w", target.GVK.Kind, target.Name, err)
				}

				lastStatus = err.Error()

				return false, nil
			}

			ready, status := predicate(obj)
			lastStatus = status

			return ready, nil
		},
	)
	if err == nil {
		return nil
	}

	// Cancellation is not a timeout: the run was aborted externally and the
	// caller must not mistake that for non-convergence.
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("readiness wait for %s %q aborted: %w", target.GVK.Kind, target.Name, ctx.Err())
	}

	if wait.Interrupted(err) {
		return &TimeoutError{
			Source:     target.Source,
			Kind:       target.GVK.Kind,
			Name:       target.Name,
			LastStatus: lastStatus,
			Err:        err,
		}
	}

	return fmt.Errorf("waiting for %s %q: %w", target.GVK.Kind, target.Name, err)
}
