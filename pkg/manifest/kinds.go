package manifest

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Kinds returns the set of distinct kinds across all documents of all
// sources. The result is order-independent by construction and is used as a
// deletion/skip filter, never to reconstruct individual resources.
func (s *Set) Kinds() sets.Set[string] {
	kinds := sets.New[string]()

	for _, src := range s.Sources {
		for _, doc := range src.Documents {
			kinds.Insert(doc.GetKind())
		}
	}

	return kinds
}

// GroupVersionKinds maps each kind present in the set to its full
// GroupVersionKind, taken from the first document declaring it. Deletion
// needs the full GVK to resolve the server resource for a kind string.
func (s *Set) GroupVersionKinds() map[string]schema.GroupVersionKind {
	gvks := make(map[string]schema.GroupVersionKind)

	for _, src := range s.Sources {
		for _, doc := range src.Documents {
			gvk := doc.GroupVersionKind()
			if _, ok := gvks[gvk.Kind]; !ok {
				gvks[gvk.Kind] = gvk
			}
		}
	}

	return gvks
}
