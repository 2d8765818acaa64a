package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/tradewatch/watchctl/pkg/resources"
	"github.com/tradewatch/watchctl/pkg/status"
	"github.com/tradewatch/watchctl/pkg/util/client"
)

func listKinds() map[schema.GroupVersionResource]string {
	kinds := make(map[schema.GroupVersionResource]string, len(resources.All))
	for _, r := range resources.All {
		kinds[r.GVR()] = r.Kind + "List"
	}

	return kinds
}

func newTestClient(objects ...runtime.Object) client.Client {
	scheme := runtime.NewScheme()
	dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds(), objects...)

	return client.NewForTesting(client.TestClientConfig{
		Dynamic:    dynamicClient,
		RESTMapper: client.TestRESTMapper(),
	})
}

func newDeployment(name string, namespace string, desired int64, ready int64) *unstructured.Unstructured {
	obj := resources.Deployment.Unstructured()
	obj.SetName(name)
	obj.SetNamespace(namespace)
	_ = unstructured.SetNestedField(obj.Object, desired, "spec", "replicas")
	_ = unstructured.SetNestedField(obj.Object, ready, "status", "readyReplicas")

	return &obj
}

func newPod(name string, namespace string, phase string) *unstructured.Unstructured {
	obj := resources.Pod.Unstructured()
	obj.SetName(name)
	obj.SetNamespace(namespace)
	_ = unstructured.SetNestedField(obj.Object, phase, "status", "phase")

	return &obj
}

func newClaim(name string, namespace string, phase string) *unstructured.Unstructured {
	obj := resources.PersistentVolumeClaim.Unstructured()
	obj.SetName(name)
	obj.SetNamespace(namespace)
	_ = unstructured.SetNestedField(obj.Object, phase, "status", "phase")

	return &obj
}

func TestCollect(t *testing.T) {
	t.Run("should summarize each kind into sorted rows", func(t *testing.T) {
		ctx := t.Context()

		c := newTestClient(
			newDeployment("watcher-btc", "default", 2, 2),
			newDeployment("postgres", "default", 1, 0),
			newPod("postgres-0", "default", "Running"),
			newClaim("postgres-pvc", "default", "Bound"),
		)

		rows, err := status.Collect(ctx, c, []string{"PersistentVolumeClaim", "Deployment", "Pod"}, 2)
		require.NoError(t, err)

		assert.Equal(t, []status.Row{
			{Kind: "Deployment", Namespace: "default", Name: "postgres", Ready: "0/1"},
			{Kind: "Deployment", Namespace: "default", Name: "watcher-btc", Ready: "2/2"},
			{Kind: "PersistentVolumeClaim", Namespace: "default", Name: "postgres-pvc", Ready: "Bound"},
			{Kind: "Pod", Namespace: "default", Name: "postgres-0", Ready: "Running"},
		}, rows)
	})

	t.Run("should default desired replicas to one when the spec leaves it unset", func(t *testing.T) {
		ctx := t.Context()

		deployment := resources.Deployment.Unstructured()
		deployment.SetName("postgres")
		deployment.SetNamespace("default")
		_ = unstructured.SetNestedField(deployment.Object, int64(1), "status", "readyReplicas")

		c := newTestClient(&deployment)

		rows, err := status.Collect(ctx, c, []string{"Deployment"}, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "1/1", rows[0].Ready)
	})

	t.Run("should report kinds with no readiness notion as a dash", func(t *testing.T) {
		ctx := t.Context()

		cm := resources.ConfigMap.Unstructured()
		cm.SetName("watcher-config")
		cm.SetNamespace("default")

		c := newTestClient(&cm)

		rows, err := status.Collect(ctx, c, []string{"ConfigMap"}, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "-", rows[0].Ready)
	})

	t.Run("should fail on an unknown kind", func(t *testing.T) {
		ctx := t.Context()

		_, err := status.Collect(ctx, newTestClient(), []string{"FluxCapacitor"}, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "FluxCapacitor")
	})

	t.Run("should return an empty report for an empty cluster", func(t *testing.T) {
		ctx := t.Context()

		rows, err := status.Collect(ctx, newTestClient(), []string{"Deployment", "Pod"}, 2)

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
