package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/tradewatch/watchctl/pkg/printer"
	jsonprinter "github.com/tradewatch/watchctl/pkg/printer/json"
	tableprinter "github.com/tradewatch/watchctl/pkg/printer/table"
	yamlprinter "github.com/tradewatch/watchctl/pkg/printer/yaml"
	"github.com/tradewatch/watchctl/pkg/util/client"
	"github.com/tradewatch/watchctl/pkg/util/iostreams"
)

// Command handles the doctor operation: preflight checks against the
// cluster the stack is about to be deployed to.
type Command struct {
	IO          iostreams.Interface
	ConfigFlags *genericclioptions.ConfigFlags
	Client      client.Client

	OutputFormat printer.OutputFormat

	checks []Check
}

// NewCommand creates a new doctor Command.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		ConfigFlags:  genericclioptions.NewConfigFlags(true),
		IO:           iostreams.NewIOStreams(streams.In, streams.Out, streams.ErrOut),
		OutputFormat: printer.Table,
		checks:       DefaultChecks(),
	}
}

// AddFlags adds flags to the command.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.VarP(&c.OutputFormat, "output", "o", "Output format (table, json, yaml)")
}

// Complete builds the cluster client from the kubeconfig flags.
func (c *Command) Complete() error {
	restConfig, err := client.NewRESTConfig(c.ConfigFlags, client.DefaultQPS, client.DefaultBurst)
	if err != nil {
		return fmt.Errorf("failed to create REST config: %w", err)
	}

	cl, err := client.NewForConfig(restConfig, client.NamespaceFrom(c.ConfigFlags))
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	c.Client = cl

	return nil
}

// Validate checks that all options are valid.
func (c *Command) Validate() error {
	if len(c.checks) == 0 {
		return errors.New("no checks configured")
	}

	return nil
}

// Run executes the doctor command. The check results are always rendered;
// the returned error reflects whether the cluster passed.
func (c *Command) Run(ctx context.Context) error {
	results, verifyErr := Verify(ctx, c.Client, c.checks)

	if err := c.render(results); err != nil {
		return err
	}

	return verifyErr
}

func (c *Command) render(results []Result) error {
	switch c.OutputFormat {
	case printer.JSON:
		return jsonprinter.NewRenderer(jsonprinter.WithWriter[[]Result](c.IO.Output())).Render(results)
	case printer.YAML:
		return yamlprinter.NewRenderer(yamlprinter.WithWriter[[]Result](c.IO.Output())).Render(results)
	case printer.Table:
		renderer := tableprinter.NewRenderer(
			tableprinter.WithWriter[Result](c.IO.Output()),
			tableprinter.WithHeaders[Result]("NAME", "PASSED", "DETAIL"),
			tableprinter.WithFormatter[Result]("PASSED", passedFormatter),
		)

		if err := renderer.AppendAll(results); err != nil {
			return err
		}

		return renderer.Render()
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
}

func passedFormatter(value any) any {
	passed, ok := value.(bool)
	if !ok {
		return value
	}

	if passed {
		return color.GreenString("OK")
	}

	return color.RedString("FAIL")
}
