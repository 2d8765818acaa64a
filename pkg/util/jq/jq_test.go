package jq_test

import (
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/tradewatch/watchctl/pkg/util/jq"

	. "github.com/onsi/gomega"
)

func TestQuery(t *testing.T) {
	deployment := &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "apps/v1",
			"kind":       "Deployment",
			"metadata": map[string]any{
				"name": "postgres",
			},
			"spec": map[string]any{
				"replicas": int64(2),
			},
			"status": map[string]any{
				"readyReplicas": int64(1),
			},
		},
	}

	t.Run("should pluck nested fields from unstructured objects", func(t *testing.T) {
		g := NewWithT(t)

		name, err := jq.Query[string](deployment, ".metadata.name")

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(name).To(Equal("postgres"))
	})

	t.Run("should coerce int64 status fields to int", func(t *testing.T) {
		g := NewWithT(t)

		ready, err := jq.QueryInt(deployment, ".status.readyReplicas")

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(ready).To(Equal(1))
	})

	t.Run("should apply alternative operators for missing fields", func(t *testing.T) {
		g := NewWithT(t)

		replicas, err := jq.QueryInt(map[string]any{}, ".spec.replicas // 1")

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(replicas).To(Equal(1))
	})

	t.Run("should return the zero value for null results", func(t *testing.T) {
		g := NewWithT(t)

		value, err := jq.Query[string](deployment, ".status.phase")

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(value).To(BeEmpty())
	})

	t.Run("should fail on invalid queries", func(t *testing.T) {
		g := NewWithT(t)

		_, err := jq.Query[string](deployment, ".[[")

		g.Expect(err).To(HaveOccurred())
	})

	t.Run("should fail when the result has the wrong type", func(t *testing.T) {
		g := NewWithT(t)

		_, err := jq.Query[int](deployment, ".metadata.name")

		g.Expect(err).To(MatchError(ContainSubstring("not int")))
	})
}
