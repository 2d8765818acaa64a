package main

import (
	"os"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/tradewatch/watchctl/cmd/apply"
	"github.com/tradewatch/watchctl/cmd/doctor"
	"github.com/tradewatch/watchctl/cmd/status"
	"github.com/tradewatch/watchctl/cmd/version"
)

func main() {
	flags := genericclioptions.NewConfigFlags(true)

	cmd := &cobra.Command{
		Use:   "watchctl",
		Short: "Deploy and supervise the market-watcher stack on Kubernetes",
	}

	apply.AddCommand(cmd, flags)
	status.AddCommand(cmd, flags)
	doctor.AddCommand(cmd, flags)
	version.AddCommand(cmd, flags)

	if err := cmd.Execute(); err != nil {
		if _, writeErr := os.Stderr.WriteString(err.Error() + "\n"); writeErr != nil {
			os.Exit(1)
		}
		os.Exit(1)
	}
}
