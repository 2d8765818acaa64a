package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/tradewatch/watchctl/pkg/util/jq"
)

// ColumnFormatter transforms a value for display in a specific column.
type ColumnFormatter func(value any) any

// Renderer accumulates rows of type T and renders them as a text table.
// Column values are extracted from T's fields by header name via
// mapstructure, then passed through any registered formatter.
type Renderer[T any] struct {
	writer     io.Writer
	headers    []string
	formatters map[string]ColumnFormatter
	table      *tablewriter.Table
}

// NewRenderer creates a new table renderer with the given options.
func NewRenderer[T any](opts ...Option[T]) *Renderer[T] {
	r := &Renderer[T]{
		writer:     os.Stdout,
		formatters: make(map[string]ColumnFormatter),
	}

	for _, opt := range opts {
		opt.ApplyTo(r)
	}

	r.table = tablewriter.NewTable(r.writer)
	r.table = r.table.Options(DefaultTableOptions...)

	if len(r.headers) > 0 {
		r.table.Header(r.headers)
	}

	return r
}

// Append adds a single row to the table.
func (r *Renderer[T]) Append(value T) error {
	values, err := r.extractValues(value)
	if err != nil {
		return err
	}

	row := make([]any, 0, len(r.headers))

	for i := range r.headers {
		v := values[i]

		if formatter, exists := r.formatters[strings.ToUpper(r.headers[i])]; exists {
			v = formatter(v)
		}

		row = append(row, v)
	}

	if err := r.table.Append(row); err != nil {
		return fmt.Errorf("failed to append row to table: %w", err)
	}

	return nil
}

// AppendAll adds every value as a row.
func (r *Renderer[T]) AppendAll(values []T) error {
	for _, value := range values {
		if err := r.Append(value); err != nil {
			return err
		}
	}

	return nil
}

// Render writes the accumulated table to the configured writer.
func (r *Renderer[T]) Render() error {
	if err := r.table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// extractValues maps T's fields onto the configured headers, matching
// case-insensitively.
func (r *Renderer[T]) extractValues(value T) ([]any, error) {
	var dataMap map[string]any
	if err := mapstructure.Decode(value, &dataMap); err != nil {
		return nil, fmt.Errorf("failed to decode row value: %w", err)
	}

	normalized := make(map[string]any, len(dataMap))
	for k, v := range dataMap {
		normalized[strings.ToUpper(k)] = v
	}

	values := make([]any, 0, len(r.headers))

	for _, header := range r.headers {
		v, ok := normalized[strings.ToUpper(header)]
		if !ok {
			return nil, errors.New("no field matches column " + header)
		}

		values = append(values, v)
	}

	return values, nil
}

// JQFormatter creates a ColumnFormatter that executes a jq query on the
// column value. Query failures render as empty cells rather than aborting
// the whole table.
func JQFormatter(query string) ColumnFormatter {
	return func(value any) any {
		result, err := jq.Query[any](value, query)
		if err != nil {
			return ""
		}

		return result
	}
}
