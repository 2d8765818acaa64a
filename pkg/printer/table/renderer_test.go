package table_test

import (
	"bytes"
	"testing"

	"github.com/tradewatch/watchctl/pkg/printer/table"

	. "github.com/onsi/gomega"
)

type row struct {
	Kind  string
	Name  string
	Ready string
}

func TestRenderer(t *testing.T) {
	t.Run("should render struct fields under matching headers", func(t *testing.T) {
		g := NewWithT(t)

		var buf bytes.Buffer

		r := table.NewRenderer[row](
			table.WithWriter[row](&buf),
			table.WithHeaders[row]("KIND", "NAME", "READY"),
		)

		g.Expect(r.Append(row{Kind: "Deployment", Name: "postgres", Ready: "1/1"})).To(Succeed())
		g.Expect(r.Render()).To(Succeed())

		out := buf.String()
		g.Expect(out).To(ContainSubstring("KIND"))
		g.Expect(out).To(ContainSubstring("Deployment"))
		g.Expect(out).To(ContainSubstring("postgres"))
		g.Expect(out).To(ContainSubstring("1/1"))
	})

	t.Run("should apply column formatters", func(t *testing.T) {
		g := NewWithT(t)

		var buf bytes.Buffer

		r := table.NewRenderer[row](
			table.WithWriter[row](&buf),
			table.WithHeaders[row]("NAME", "READY"),
			table.WithFormatter[row]("READY", func(v any) any {
				return "[" + v.(string) + "]"
			}),
		)

		g.Expect(r.Append(row{Name: "postgres", Ready: "1/1"})).To(Succeed())
		g.Expect(r.Render()).To(Succeed())

		g.Expect(buf.String()).To(ContainSubstring("[1/1]"))
	})

	t.Run("should fail when a header matches no field", func(t *testing.T) {
		g := NewWithT(t)

		r := table.NewRenderer[row](
			table.WithWriter[row](&bytes.Buffer{}),
			table.WithHeaders[row]("NAME", "AGE"),
		)

		g.Expect(r.Append(row{Name: "postgres"})).ToNot(Succeed())
	})
}

func TestJQFormatter(t *testing.T) {
	t.Run("should pluck fields from structured values", func(t *testing.T) {
		g := NewWithT(t)

		formatter := table.JQFormatter(".status.phase")

		result := formatter(map[string]any{
			"status": map[string]any{"phase": "Running"},
		})

		g.Expect(result).To(Equal("Running"))
	})

	t.Run("should render failures as empty cells", func(t *testing.T) {
		g := NewWithT(t)

		formatter := table.JQFormatter(".[[")

		g.Expect(formatter(map[string]any{})).To(Equal(""))
	})
}
