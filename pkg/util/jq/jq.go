// Package jq evaluates jq expressions against Kubernetes objects. It is the
// single place where status fields are plucked out of unstructured content,
// so display code never hand-walks nested maps.
package jq

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/itchyny/gojq"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// normalize converts a value to a gojq-compatible representation.
// unstructured objects contribute their backing map directly; other values
// round-trip through JSON.
func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case unstructured.Unstructured:
		value = v.Object
	case *unstructured.Unstructured:
		value = v.Object
	}

	kind := reflect.ValueOf(value).Kind()
	if kind == reflect.Map || kind == reflect.Slice {
		// Round-trip to coerce typed numbers (int64 from the k8s decoder)
		// into the plain JSON types gojq accepts.
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value: %w", err)
		}

		var normalized any
		if err := json.Unmarshal(data, &normalized); err != nil {
			return nil, fmt.Errorf("failed to unmarshal value: %w", err)
		}

		return normalized, nil
	}

	return value, nil
}

// Query executes a jq query against the provided value and returns the first
// result cast to type T. A nil/null result yields the zero value of T.
func Query[T any](value any, jqQuery string) (T, error) {
	var zero T

	compiled, err := gojq.Parse(jqQuery)
	if err != nil {
		return zero, fmt.Errorf("failed to parse jq query: %w", err)
	}

	normalized, err := normalize(value)
	if err != nil {
		return zero, err
	}

	iter := compiled.Run(normalized)

	result, ok := iter.Next()
	if !ok {
		return zero, errors.New("jq query produced no result")
	}

	if err, isErr := result.(error); isErr {
		return zero, fmt.Errorf("jq query failed: %w", err)
	}

	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("jq result is %T, not %T", result, zero)
	}

	return typed, nil
}

// QueryInt executes a jq query and coerces a numeric result to int. JSON
// normalization turns every number into float64, so a plain Query[int] would
// never match.
func QueryInt(value any, jqQuery string) (int, error) {
	result, err := Query[any](value, jqQuery)
	if err != nil {
		return 0, err
	}

	switch v := result.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("jq result is %T, not a number", result)
	}
}
