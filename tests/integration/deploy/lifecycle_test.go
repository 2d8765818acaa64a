package deploy_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/tradewatch/watchctl/pkg/deploy"
	"github.com/tradewatch/watchctl/pkg/resources"
	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/iostreams"

	. "github.com/onsi/gomega"
)

// End-to-end lifecycle through the apply command against a fake cluster:
// manifest files on disk, full Complete-less command run, resources
// observable through the client afterwards. The deployment manifest carries
// a fabricated ready status because nothing reconciles workloads on the
// fake control plane.
const postgresYAML = `
apiVersion: v1
kind: PersistentVolume
metadata:
  name: postgres-pv
spec:
  capacity:
    storage: 1Gi
---
apiVersion: v1
kind: PersistentVolumeClaim
metadata:
  name: postgres-pvc
  namespace: default
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: postgres
  namespace: default
spec:
  replicas: 1
status:
  readyReplicas: 1
---
apiVersion: v1
kind: Service
metadata:
  name: postgres
  namespace: default
`

const watcherConfigYAML = `
apiVersion: v1
kind: ConfigMap
metadata:
  name: watcher-config
  namespace: default
data:
  db_host: postgres
`

const watcherDeploymentsYAML = `
apiVersion: apps/v1
kind: Deployment
metadata:
  name: watcher-btc
  namespace: default
spec:
  replicas: 2
status:
  readyReplicas: 2
`

func writeManifests(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()

	files := []struct {
		name    string
		content string
	}{
		{"postgres.yaml", postgresYAML},
		{"watcher-config.yaml", watcherConfigYAML},
		{"watcher-deployments.yaml", watcherDeploymentsYAML},
	}

	paths := make([]string, 0, len(files))

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o600); err != nil {
			t.Fatal(err)
		}

		paths = append(paths, path)
	}

	return paths
}

func listKinds() map[schema.GroupVersionResource]string {
	kinds := make(map[schema.GroupVersionResource]string, len(resources.All))
	for _, r := range resources.All {
		kinds[r.GVR()] = r.Kind + "List"
	}

	return kinds
}

func newCluster() (client.Client, *dynamicfake.FakeDynamicClient) {
	scheme := runtime.NewScheme()
	dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds())

	c := client.NewForTesting(client.TestClientConfig{
		Dynamic:    dynamicClient,
		RESTMapper: client.TestRESTMapper(),
	})

	return c, dynamicClient
}

func newCommand(c client.Client, out *bytes.Buffer, sources []string) *deploy.Command {
	return &deploy.Command{
		SharedOptions: &deploy.SharedOptions{
			IO:     iostreams.NewIOStreams(nil, out, out),
			Client: c,
			QPS:    client.DefaultQPS,
			Burst:  client.DefaultBurst,
		},
		Sources:      sources,
		Timeout:      time.Second,
		PollInterval: time.Millisecond,
	}
}

func TestApplyLifecycle(t *testing.T) {
	t.Run("should deploy the full stack and leave it observable", func(t *testing.T) {
		g := NewWithT(t)
		ctx := t.Context()

		c, _ := newCluster()
		paths := writeManifests(t)

		var out bytes.Buffer

		cmd := newCommand(c, &out, paths)

		g.Expect(cmd.Validate()).To(Succeed())
		g.Expect(cmd.Run(ctx)).To(Succeed())
		g.Expect(out.String()).To(ContainSubstring("all 3 sources applied and ready"))

		for _, probe := range []struct {
			gvk       schema.GroupVersionKind
			name      string
			namespace string
		}{
			{resources.PersistentVolume.GVK(), "postgres-pv", ""},
			{resources.PersistentVolumeClaim.GVK(), "postgres-pvc", "default"},
			{resources.Deployment.GVK(), "postgres", "default"},
			{resources.Service.GVK(), "postgres", "default"},
			{resources.ConfigMap.GVK(), "watcher-config", "default"},
			{resources.Deployment.GVK(), "watcher-btc", "default"},
		} {
			_, err := c.Get(ctx, probe.gvk, probe.name, client.WithNamespace(probe.namespace))
			g.Expect(err).ToNot(HaveOccurred(), "%s %s", probe.gvk.Kind, probe.name)
		}
	})

	t.Run("should be re-runnable against the deployed stack", func(t *testing.T) {
		g := NewWithT(t)
		ctx := t.Context()

		c, _ := newCluster()
		paths := writeManifests(t)

		g.Expect(newCommand(c, &bytes.Buffer{}, paths).Run(ctx)).To(Succeed())
		g.Expect(newCommand(c, &bytes.Buffer{}, paths).Run(ctx)).To(Succeed())
	})

	t.Run("should clean-start while exempting persistent volumes", func(t *testing.T) {
		g := NewWithT(t)
		ctx := t.Context()

		c, fake := newCluster()
		paths := writeManifests(t)

		g.Expect(newCommand(c, &bytes.Buffer{}, paths).Run(ctx)).To(Succeed())

		cmd := newCommand(c, &bytes.Buffer{}, paths)
		cmd.Clean = true
		cmd.KeepVolumes = true

		fake.ClearActions()

		g.Expect(cmd.Run(ctx)).To(Succeed())

		deleted := map[string]bool{}

		for _, action := range fake.Actions() {
			if action.GetVerb() == "delete-collection" {
				deleted[action.GetResource().Resource] = true
			}
		}

		g.Expect(deleted).To(HaveKey("deployments"))
		g.Expect(deleted).To(HaveKey("configmaps"))
		g.Expect(deleted).To(HaveKey("persistentvolumeclaims"))
		g.Expect(deleted).ToNot(HaveKey("persistentvolumes"))

		_, err := c.Get(ctx, resources.PersistentVolume.GVK(), "postgres-pv")
		g.Expect(err).ToNot(HaveOccurred())
	})

	t.Run("should refuse the run when any source is malformed", func(t *testing.T) {
		g := NewWithT(t)
		ctx := t.Context()

		c, fake := newCluster()
		paths := writeManifests(t)

		broken := filepath.Join(t.TempDir(), "broken.yaml")
		g.Expect(os.WriteFile(broken, []byte("apiVersion: v1\nmetadata:\n  name: no-kind\n"), 0o600)).To(Succeed())

		cmd := newCommand(c, &bytes.Buffer{}, append(paths, broken))

		g.Expect(cmd.Run(ctx)).To(HaveOccurred())
		g.Expect(fake.Actions()).To(BeEmpty())

		_, err := c.Get(ctx, resources.ConfigMap.GVK(), "watcher-config", client.WithNamespace("default"))
		g.Expect(apierrors.IsNotFound(err)).To(BeTrue())
	})
}
