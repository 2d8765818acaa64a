package deploy

import (
	"errors"
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/iostreams"
)

// SharedOptions contains options common to commands that talk to the
// cluster.
type SharedOptions struct {
	IO          iostreams.Interface
	ConfigFlags *genericclioptions.ConfigFlags
	Client      client.Client

	// Throttling settings for the Kubernetes API client
	QPS   float32
	Burst int
}

// NewSharedOptions creates a new SharedOptions with defaults.
func NewSharedOptions(streams genericiooptions.IOStreams) *SharedOptions {
	return &SharedOptions{
		ConfigFlags: genericclioptions.NewConfigFlags(true),
		IO:          iostreams.NewIOStreams(streams.In, streams.Out, streams.ErrOut),
		QPS:         client.DefaultQPS,
		Burst:       client.DefaultBurst,
	}
}

// Complete builds the cluster client from the kubeconfig flags.
func (o *SharedOptions) Complete() error {
	restConfig, err := client.NewRESTConfig(o.ConfigFlags, o.QPS, o.Burst)
	if err != nil {
		return fmt.Errorf("failed to create REST config: %w", err)
	}

	c, err := client.NewForConfig(restConfig, client.NamespaceFrom(o.ConfigFlags))
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	o.Client = c

	return nil
}

// Validate checks that all required options are valid.
func (o *SharedOptions) Validate() error {
	if o.QPS <= 0 || o.Burst <= 0 {
		return errors.New("qps and burst must be greater than 0")
	}

	return nil
}
