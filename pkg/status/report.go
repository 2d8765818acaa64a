package status

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tradewatch/watchctl/pkg/resources"
	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/jq"
)

// DefaultWorkers bounds the number of kinds listed concurrently.
const DefaultWorkers = 4

// Row is one resource in the status report.
type Row struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
	Ready     string `json:"ready"`
}

// readiness summarizes one observed object into the READY column. Workloads
// report replica counts, phased resources report their phase, everything
// else has no readiness notion.
func readiness(kind string, obj map[string]any) string {
	switch kind {
	case resources.Deployment.Kind:
		ready, err := jq.QueryInt(obj, ".status.readyReplicas // 0")
		if err != nil {
			return "?"
		}

		desired, err := jq.QueryInt(obj, ".spec.replicas // 1")
		if err != nil {
			return "?"
		}

		return fmt.Sprintf("%d/%d", ready, desired)
	case resources.Pod.Kind,
		resources.Namespace.Kind,
		resources.PersistentVolume.Kind,
		resources.PersistentVolumeClaim.Kind:
		phase, err := jq.Query[string](obj, `.status.phase // "Unknown"`)
		if err != nil {
			return "?"
		}

		return phase
	default:
		return "-"
	}
}

// Collect lists every requested kind and summarizes each resource into a
// Row. Kinds are listed concurrently, bounded by workers; rows come back
// sorted by kind, namespace and name. A kind the cluster rejects fails the
// whole report.
func Collect(ctx context.Context, c client.Reader, kinds []string, workers int) ([]Row, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	types := make([]resources.ResourceType, 0, len(kinds))

	for _, kind := range kinds {
		rt, ok := resources.ByKind(kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", kind)
		}

		types = append(types, rt)
	}

	var mu sync.Mutex

	rows := make([]Row, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rt := range types {
		g.Go(func() error {
			items, err := c.List(ctx, rt.GVK())
			if err != nil {
				return fmt.Errorf("listing %s: %w", rt.Kind, err)
			}

			kindRows := make([]Row, 0, len(items))

			for _, item := range items {
				kindRows = append(kindRows, Row{
					Kind:      rt.Kind,
					Namespace: item.GetNamespace(),
					Name:      item.GetName(),
					Ready:     readiness(rt.Kind, item.Object),
				})
			}

			mu.Lock()
			rows = append(rows, kindRows...)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Kind != rows[j].Kind {
			return rows[i].Kind < rows[j].Kind
		}

		if rows[i].Namespace != rows[j].Namespace {
			return rows[i].Namespace < rows[j].Namespace
		}

		return rows[i].Name < rows[j].Name
	})

	return rows, nil
}
