// Package manifest loads ordered sets of Kubernetes manifest files into
// unstructured documents. Source order and in-source document order are
// significant: later manifests may assume resources from earlier ones are
// already live, so downstream consumers must not reorder them.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

const decoderBufferSize = 4096

// ParseError reports a malformed manifest source. It is returned before any
// cluster mutation occurs; a load either yields a complete Set or nothing.
type ParseError struct {
	// Source is the path of the offending manifest file.
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest source %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Source is a single manifest file and the documents parsed from it, in
// file order.
type Source struct {
	Path      string
	Documents []*unstructured.Unstructured
}

// Set is an ordered collection of manifest sources for one orchestration run.
type Set struct {
	Sources []*Source
}

// Load reads every path into a Source, splitting multi-document YAML on the
// standard document boundary. Parsing is strict: an undecodable source or a
// document without a kind fails the whole load with a *ParseError naming the
// offending path.
func Load(paths ...string) (*Set, error) {
	set := &Set{
		Sources: make([]*Source, 0, len(paths)),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ParseError{Source: path, Err: err}
		}

		docs, err := decodeAll(data)
		if err != nil {
			return nil, &ParseError{Source: path, Err: err}
		}

		set.Sources = append(set.Sources, &Source{
			Path:      path,
			Documents: docs,
		})
	}

	return set, nil
}

// decodeAll splits and decodes a multi-document YAML stream, preserving
// document order. Empty documents (a lone "---", comments only) are skipped.
func decodeAll(data []byte) ([]*unstructured.Unstructured, error) {
	var docs []*unstructured.Unstructured

	decoder := utilyaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), decoderBufferSize)

	for {
		var raw map[string]any

		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decoding document %d: %w", len(docs), err)
		}

		if len(raw) == 0 {
			continue
		}

		obj := &unstructured.Unstructured{Object: raw}
		if obj.GetKind() == "" {
			return nil, fmt.Errorf("document %d has no kind", len(docs))
		}

		docs = append(docs, obj)
	}

	return docs, nil
}
