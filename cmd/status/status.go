package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	statuspkg "github.com/tradewatch/watchctl/pkg/status"
)

const (
	cmdName  = "status [kind ...]"
	cmdShort = "Report the readiness of the watcher stack's resources"
)

const cmdLong = `
Lists the stack's resources per kind with a READY column: replica counts
for workloads, phases for pods and volumes.

With no arguments the full stack kind set is reported. Kinds are listed
concurrently.
`

const cmdExample = `
  # Report the whole stack
  watchctl status

  # Only deployments and pods, as JSON
  watchctl status Deployment Pod -o json
`

// AddCommand adds the status command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := statuspkg.NewCommand(streams)
	command.ConfigFlags = flags

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := command.Complete(args); err != nil {
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
