package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/version"
)

// Build metadata, injected at link time via -ldflags.
//
//nolint:gochecknoglobals // ldflags injection targets
var (
	Version = "dev"
	Commit  = "none"
)

const (
	cmdName  = "version"
	cmdShort = "Print client and server versions"
)

// AddCommand adds the version command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "client version: %s (%s)\n", Version, Commit)

			// Server version is best effort: the client version must print
			// even without a reachable cluster.
			serverVersion := "unavailable"

			if restConfig, err := client.NewRESTConfig(flags, client.DefaultQPS, client.DefaultBurst); err == nil {
				if c, err := client.NewForConfig(restConfig, client.NamespaceFrom(flags)); err == nil {
					if detected, err := version.Detect(c.Discovery()); err == nil {
						serverVersion = detected.String()
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "server version: %s\n", serverVersion)

			return nil
		},
	}

	root.AddCommand(cmd)
}
