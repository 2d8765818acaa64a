package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/tradewatch/watchctl/pkg/doctor"
	"github.com/tradewatch/watchctl/pkg/manifest"
)

// DefaultSources is the dependency-ordered manifest list for the watcher
// stack: durable storage and its claim first, then the watcher
// configuration, then the workload deployments. Callers pass their own
// ordered list to override; the order encodes the dependency chain and must
// be preserved.
//
//nolint:gochecknoglobals // default manifest ordering shared with the apply command help text
var DefaultSources = []string{
	"k8s/postgres.yaml",
	"k8s/watcher-config.yaml",
	"k8s/watcher-deployments.yaml",
}

// Command handles the apply operation.
type Command struct {
	*SharedOptions

	Sources      []string
	Clean        bool
	KeepVolumes  bool
	Preflight    bool
	Timeout      time.Duration
	PollInterval time.Duration
}

// NewCommand creates a new apply Command.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		SharedOptions: NewSharedOptions(streams),
		Timeout:       DefaultTimeout,
		PollInterval:  DefaultPollInterval,
	}
}

// AddFlags adds flags to the command.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.Sources, "filename", "f", nil, "Manifest source to apply, in order (repeatable)")
	fs.BoolVar(&c.Clean, "clean", false, "Delete existing resources of the manifest kinds before applying")
	fs.BoolVar(&c.KeepVolumes, "keep-volumes", false, "Exempt PersistentVolumes from clean-start deletion")
	fs.BoolVar(&c.Preflight, "preflight", false, "Run doctor checks against the cluster before applying")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum wall-clock wait per readiness target")
	fs.DurationVar(&c.PollInterval, "poll-interval", c.PollInterval, "Spacing between readiness status polls")
	fs.Float32Var(&c.QPS, "qps", c.QPS, "Kubernetes API QPS limit (queries per second)")
	fs.IntVar(&c.Burst, "burst", c.Burst, "Kubernetes API burst capacity")
}

// Complete populates derived values and builds the cluster client.
func (c *Command) Complete() error {
	if err := c.SharedOptions.Complete(); err != nil {
		return err
	}

	if len(c.Sources) == 0 {
		c.Sources = DefaultSources
	}

	return nil
}

// Validate checks that all options are valid.
func (c *Command) Validate() error {
	if err := c.SharedOptions.Validate(); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}

	if c.PollInterval <= 0 {
		return errors.New("poll-interval must be greater than 0")
	}

	if c.PollInterval > c.Timeout {
		return errors.New("poll-interval must not exceed timeout")
	}

	if c.KeepVolumes && !c.Clean {
		return errors.New("--keep-volumes requires --clean")
	}

	return nil
}

// Run executes the apply command. Manifests are loaded and validated in
// full before the first cluster mutation.
func (c *Command) Run(ctx context.Context) error {
	set, err := manifest.Load(c.Sources...)
	if err != nil {
		return err
	}

	if c.Preflight {
		if _, err := doctor.Verify(ctx, c.Client, doctor.DefaultChecks()); err != nil {
			return fmt.Errorf("preflight: %w", err)
		}

		c.IO.Fprintf("preflight checks passed")
	}

	orchestrator := New(
		c.Client,
		WithIOStreams(c.IO),
		WithTimeout(c.Timeout),
		WithPollInterval(c.PollInterval),
		WithStoragePreserved(c.KeepVolumes),
	)

	if c.Clean {
		err = orchestrator.CleanStart(ctx, set)
	} else {
		err = orchestrator.Start(ctx, set)
	}

	if err != nil {
		return err
	}

	c.IO.Fprintf("all %d sources applied and ready", len(set.Sources))

	return nil
}
