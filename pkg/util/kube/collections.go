package kube

import (
	"fmt"

	"k8s.io/apimachinery/pkg/types"

	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ToNamespacedNames converts objects with metadata to a slice of NamespacedName.
func ToNamespacedNames[T interface {
	GetName() string
	GetNamespace() string
}](items []T) []types.NamespacedName {
	result := make([]types.NamespacedName, 0, len(items))

	for _, item := range items {
		result = append(result, types.NamespacedName{
			Namespace: item.GetNamespace(),
			Name:      item.GetName(),
		})
	}

	return result
}

// Locator renders an object as "Kind namespace/name" (or "Kind name" for
// cluster-scoped objects) for error messages and progress output.
func Locator(obj client.Object) string {
	kind := obj.GetObjectKind().GroupVersionKind().Kind
	if obj.GetNamespace() == "" {
		return fmt.Sprintf("%s %s", kind, obj.GetName())
	}

	return fmt.Sprintf("%s %s/%s", kind, obj.GetNamespace(), obj.GetName())
}
