package apply

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	deploypkg "github.com/tradewatch/watchctl/pkg/deploy"
)

const (
	cmdName  = "apply"
	cmdShort = "Apply the watcher stack manifests in order and wait for readiness"
)

const cmdLong = `
Applies the stack's manifest sources to the cluster in dependency order and
blocks until every workload reports ready.

Each source file may contain multiple YAML documents. Documents are applied
in file order, and sources in the order given; later sources may assume
earlier ones are live. Every source is parsed up front: a malformed document
anywhere fails the run before the cluster is touched.

With --clean, all existing resources of the kinds present in the manifests
are deleted first. --keep-volumes exempts PersistentVolumes so database
state survives the restart.
`

const cmdExample = `
  # Apply the default stack and wait for readiness
  watchctl apply

  # Apply specific sources, in order
  watchctl apply -f k8s/postgres.yaml -f k8s/watcher-deployments.yaml

  # Tear down and redeploy, keeping database volumes
  watchctl apply --clean --keep-volumes

  # Tight readiness budget
  watchctl apply --timeout 60s --poll-interval 2s
`

// AddCommand adds the apply command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := deploypkg.NewCommand(streams)
	command.ConfigFlags = flags

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := command.Complete(); err != nil {
				return fmt.Errorf("completing command: %w", err)
			}

			if err := command.Validate(); err != nil {
				return fmt.Errorf("validating command: %w", err)
			}

			return command.Run(cmd.Context())
		},
	}

	command.AddFlags(cmd.Flags())

	root.AddCommand(cmd)
}
