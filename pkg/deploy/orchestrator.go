package deploy

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tradewatch/watchctl/pkg/manifest"
	"github.com/tradewatch/watchctl/pkg/resources"
	"github.com/tradewatch/watchctl/pkg/util"
	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/iostreams"
	"github.com/tradewatch/watchctl/pkg/util/kube"
)

// Phase is the orchestrator's position in the lifecycle state machine.
type Phase string

const (
	PhaseIdle     Phase = "Idle"
	PhaseDeleting Phase = "Deleting"
	PhaseApplying Phase = "Applying"
	PhaseWaiting  Phase = "WaitingReady"
	PhaseDone     Phase = "Done"
	PhaseFailed   Phase = "Failed"
)

// Orchestrator drives one manifest set through its lifecycle against the
// cluster. It owns no long-lived state: the cluster itself is the source of
// truth for resource existence and status, and a fresh orchestrator per run
// costs nothing.
//
// A run is a single sequential control thread. The only suspension points
// are the sleeps between readiness polls and the blocking waits on each
// apply/delete acknowledgment. Ordering across sources is deliberate: later
// manifests may assume earlier ones are live.
type Orchestrator struct {
	client      client.Interface
	io          iostreams.Interface
	timeout     time.Duration
	interval    time.Duration
	keepStorage bool
	phase       Phase
}

// Option configures an Orchestrator.
type Option = util.Option[Orchestrator]

// WithIOStreams sets the streams progress output is written to.
func WithIOStreams(streams iostreams.Interface) Option {
	return util.FunctionalOption[Orchestrator](func(o *Orchestrator) {
		o.io = streams
	})
}

// WithTimeout sets the maximum wall-clock wait per readiness target.
func WithTimeout(timeout time.Duration) Option {
	return util.FunctionalOption[Orchestrator](func(o *Orchestrator) {
		o.timeout = timeout
	})
}

// WithPollInterval sets the spacing between readiness status polls.
func WithPollInterval(interval time.Duration) Option {
	return util.FunctionalOption[Orchestrator](func(o *Orchestrator) {
		o.interval = interval
	})
}

// WithStoragePreserved exempts durable-storage kinds from clean-start
// deletion.
func WithStoragePreserved(keep bool) Option {
	return util.FunctionalOption[Orchestrator](func(o *Orchestrator) {
		o.keepStorage = keep
	})
}

// New creates an Orchestrator over the given cluster client.
func New(c client.Interface, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:   c,
		io:       iostreams.NewIOStreams(nil, nil, nil),
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
		phase:    PhaseIdle,
	}

	return util.ApplyOptions(o, opts...)
}

// Phase returns the orchestrator's current lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Start applies every document of every source, in order. After each source
// containing at least one waitable resource it blocks until those resources
// report ready before moving to the next source. The first apply failure or
// readiness timeout aborts the remaining sources; already-applied sources
// are left in place (no rollback - a clear partial-failure report beats a
// blind rollback of a live cluster).
func (o *Orchestrator) Start(ctx context.Context, set *manifest.Set) error {
	o.phase = PhaseApplying

	for _, src := range set.Sources {
		var waitables []*unstructured.Unstructured

		for _, doc := range src.Documents {
			if _, err := o.client.Apply(ctx, doc); err != nil {
				o.phase = PhaseFailed

				return &ApplyError{
					Source: src.Path,
					Kind:   doc.GetKind(),
					Name:   doc.GetName(),
					Err:    err,
				}
			}

			o.io.Fprintf("applied %s", kube.Locator(doc))

			if resources.CategoryOf(doc.GetKind()) == resources.CategoryWorkload {
				waitables = append(waitables, doc)
			}
		}

		for _, doc := range waitables {
			o.phase = PhaseWaiting
			o.io.Fprintf("waiting for %s", kube.Locator(doc))

			if err := WaitForReady(ctx, o.client, TargetFor(src.Path, doc), o.interval, o.timeout); err != nil {
				o.phase = PhaseFailed

				return err
			}

			o.io.Fprintf("%s is ready", kube.Locator(doc))
		}

		o.phase = PhaseApplying
	}

	o.phase = PhaseDone

	return nil
}

// CleanStart deletes all resources of every kind present in the set, except
// durable-storage kinds when preservation is on, then proceeds exactly as
// Start. Each deletion waits only for the control plane's acknowledgment,
// not for finalization: re-applying a name still being deleted is left to
// the control plane to reconcile. Deletion failures are reported and
// skipped, never fatal.
func (o *Orchestrator) CleanStart(ctx context.Context, set *manifest.Set) error {
	o.phase = PhaseDeleting

	gvks := set.GroupVersionKinds()

	for _, kind := range sets.List(set.Kinds()) {
		category := resources.CategoryOf(kind)

		if o.keepStorage && category == resources.CategoryStorage {
			o.io.Fprintf("preserving %s resources", kind)

			continue
		}

		var opts []client.ResourceOption

		// Storage teardown is forced: volume finalizers can otherwise hold
		// the delete open past any reasonable wait.
		if category == resources.CategoryStorage {
			opts = append(opts, client.WithGracePeriod(0))
		}

		if err := o.client.DeleteAll(ctx, gvks[kind], opts...); err != nil {
			delErr := &DeleteError{Kind: kind, Err: err}
			o.io.Errorf("%v (continuing)", delErr)

			continue
		}

		o.io.Fprintf("deleted all %s resources", kind)
	}

	return o.Start(ctx, set)
}
