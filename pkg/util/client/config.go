package client

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/rest"
)

const (
	// DefaultQPS is the default queries per second for the CLI client.
	// Higher than kubectl's default (5) so that readiness polling and the
	// parallel status listing are not throttled client-side.
	DefaultQPS = 25

	// DefaultBurst is the default burst capacity for the CLI client.
	DefaultBurst = 50
)

// NewRESTConfig creates a REST config from kubeconfig flags with the given
// client-side throttling settings.
func NewRESTConfig(
	configFlags *genericclioptions.ConfigFlags,
	qps float32,
	burst int,
) (*rest.Config, error) {
	restConfig, err := configFlags.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config: %w", err)
	}

	restConfig.QPS = qps
	restConfig.Burst = burst

	return restConfig, nil
}

// NamespaceFrom returns the namespace selected by the kubeconfig flags, or
// empty when none is set.
func NamespaceFrom(configFlags *genericclioptions.ConfigFlags) string {
	if configFlags.Namespace == nil {
		return ""
	}

	return *configFlags.Namespace
}
