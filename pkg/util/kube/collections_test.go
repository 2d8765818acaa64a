package kube_test

import (
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/tradewatch/watchctl/pkg/util/kube"

	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
)

func TestToNamespacedNames(t *testing.T) {
	t.Run("should convert unstructured object pointers", func(t *testing.T) {
		g := NewWithT(t)

		items := []*unstructured.Unstructured{
			{Object: map[string]any{
				"metadata": map[string]any{
					"name":      "btcusd",
					"namespace": "watchers",
				},
			}},
			{Object: map[string]any{
				"metadata": map[string]any{
					"name":      "ethusd",
					"namespace": "watchers",
				},
			}},
		}

		result := kube.ToNamespacedNames(items)

		g.Expect(result).To(HaveLen(2))
		g.Expect(result[0]).To(MatchFields(IgnoreExtras, Fields{
			"Namespace": Equal("watchers"),
			"Name":      Equal("btcusd"),
		}))
	})

	t.Run("should convert PartialObjectMetadata pointers", func(t *testing.T) {
		g := NewWithT(t)

		items := []*metav1.PartialObjectMetadata{
			{ObjectMeta: metav1.ObjectMeta{Name: "postgres-pv"}},
		}

		result := kube.ToNamespacedNames(items)

		g.Expect(result).To(HaveLen(1))
		g.Expect(result[0].Namespace).To(BeEmpty())
	})

	t.Run("should return empty slice for nil input", func(t *testing.T) {
		g := NewWithT(t)

		g.Expect(kube.ToNamespacedNames[*unstructured.Unstructured](nil)).To(BeEmpty())
	})
}

func TestLocator(t *testing.T) {
	t.Run("should include the namespace for namespaced objects", func(t *testing.T) {
		g := NewWithT(t)

		obj := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "apps/v1",
			"kind":       "Deployment",
			"metadata": map[string]any{
				"name":      "postgres",
				"namespace": "default",
			},
		}}

		g.Expect(kube.Locator(obj)).To(Equal("Deployment default/postgres"))
	})

	t.Run("should omit the namespace for cluster-scoped objects", func(t *testing.T) {
		g := NewWithT(t)

		obj := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "v1",
			"kind":       "PersistentVolume",
			"metadata": map[string]any{
				"name": "postgres-pv",
			},
		}}

		g.Expect(kube.Locator(obj)).To(Equal("PersistentVolume postgres-pv"))
	})
}
