package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/tradewatch/watchctl/pkg/printer"
	jsonprinter "github.com/tradewatch/watchctl/pkg/printer/json"
	tableprinter "github.com/tradewatch/watchctl/pkg/printer/table"
	yamlprinter "github.com/tradewatch/watchctl/pkg/printer/yaml"
	"github.com/tradewatch/watchctl/pkg/resources"
)

// DefaultKinds is the kind set reported when no kinds are requested
// explicitly: the full watcher stack plus the pods its workloads own.
//
//nolint:gochecknoglobals // default kind selection shared with the status command help text
var DefaultKinds = []string{
	resources.Deployment.Kind,
	resources.Pod.Kind,
	resources.Service.Kind,
	resources.ConfigMap.Kind,
	resources.PersistentVolume.Kind,
	resources.PersistentVolumeClaim.Kind,
}

// Command handles the status operation.
type Command struct {
	*SharedOptions

	Kinds        []string
	OutputFormat printer.OutputFormat
	Workers      int
}

// NewCommand creates a new status Command.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		SharedOptions: NewSharedOptions(streams),
		OutputFormat:  printer.Table,
		Workers:       DefaultWorkers,
	}
}

// AddFlags adds flags to the command.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.VarP(&c.OutputFormat, "output", "o", "Output format (table, json, yaml)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of kinds listed concurrently")
	fs.Float32Var(&c.QPS, "qps", c.QPS, "Kubernetes API QPS limit (queries per second)")
	fs.IntVar(&c.Burst, "burst", c.Burst, "Kubernetes API burst capacity")
}

// Complete populates derived values and builds the cluster client.
func (c *Command) Complete(args []string) error {
	if err := c.SharedOptions.Complete(); err != nil {
		return err
	}

	c.Kinds = args
	if len(c.Kinds) == 0 {
		c.Kinds = DefaultKinds
	}

	return nil
}

// Validate checks that all options are valid.
func (c *Command) Validate() error {
	if err := c.SharedOptions.Validate(); err != nil {
		return err
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Workers)
	}

	for _, kind := range c.Kinds {
		if _, ok := resources.ByKind(kind); !ok {
			return fmt.Errorf("unknown kind %q", kind)
		}
	}

	return nil
}

// Run executes the status command.
func (c *Command) Run(ctx context.Context) error {
	rows, err := Collect(ctx, c.Client, c.Kinds, c.Workers)
	if err != nil {
		return err
	}

	switch c.OutputFormat {
	case printer.JSON:
		return jsonprinter.NewRenderer(jsonprinter.WithWriter[[]Row](c.IO.Output())).Render(rows)
	case printer.YAML:
		return yamlprinter.NewRenderer(yamlprinter.WithWriter[[]Row](c.IO.Output())).Render(rows)
	case printer.Table:
		return c.renderTable(rows)
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
}

func (c *Command) renderTable(rows []Row) error {
	renderer := tableprinter.NewRenderer(
		tableprinter.WithWriter[Row](c.IO.Output()),
		tableprinter.WithHeaders[Row]("KIND", "NAMESPACE", "NAME", "READY"),
		tableprinter.WithFormatter[Row]("READY", readyFormatter),
	)

	if err := renderer.AppendAll(rows); err != nil {
		return err
	}

	return renderer.Render()
}

// readyFormatter colors the READY column: green for converged or healthy
// phases, yellow for everything else.
func readyFormatter(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}

	if healthy(s) {
		return color.GreenString(s)
	}

	return color.YellowString(s)
}

func healthy(ready string) bool {
	switch ready {
	case "-", "Running", "Succeeded", "Bound", "Available", "Active":
		return true
	}

	if observed, desired, found := strings.Cut(ready, "/"); found {
		return observed == desired
	}

	return false
}
