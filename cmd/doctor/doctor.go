package doctor

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	doctorpkg "github.com/tradewatch/watchctl/pkg/doctor"
)

const (
	cmdName  = "doctor"
	cmdShort = "Run preflight checks against the target cluster"
)

const cmdLong = `
Checks that the cluster can host the watcher stack: the API server is
reachable and recent enough, and every API resource the manifests rely on
is served.

The same checks run before a deploy when "watchctl apply --preflight" is
used.
`

const cmdExample = `
  # Check the current kubeconfig context
  watchctl doctor

  # Machine-readable results
  watchctl doctor -o json
`

// AddCommand adds the doctor command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := doctorpkg.NewCommand(streams)
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
