// Package encoding projects domain models onto JSON objects.
//
// A ModelEncoder declares which properties of a model to emit, which of those
// properties are relations to be encoded through a nested encoder, and an
// optional hook for computed fields. List and detail views of the same model
// are just two encoders with different property sets.
package encoding

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownProperty is returned when an encoder declares a property the model does not have.
var ErrUnknownProperty = errors.New("unknown property")

// Model is anything an encoder can read properties from.
type Model interface {
	Field(name string) (any, bool)
}

// ModelEncoder is a declarative projection of a Model.
type ModelEncoder struct {
	// Properties are emitted in this order.
	Properties []string
	// Encoders maps a property name to the encoder used for the related model.
	Encoders map[string]*ModelEncoder
	// ExtraData returns computed fields merged after the properties in key order.
	// Colliding keys override.
	ExtraData func(m Model) map[string]any
}

// Encode projects a single model.
func (e *ModelEncoder) Encode(m Model) (*Object, error) {
	obj := NewObject()
	for _, name := range e.Properties {
		v, ok := m.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %T", ErrUnknownProperty, name, m)
		}
		if nested, ok := e.Encoders[name]; ok && v != nil {
			related, ok := v.(Model)
			if !ok {
				return nil, fmt.Errorf("encode %q: %T is not a model", name, v)
			}
			enc, err := nested.Encode(related)
			if err != nil {
				return nil, fmt.Errorf("encode %q: %w", name, err)
			}
			v = enc
		}
		obj.Set(name, v)
	}
	if e.ExtraData != nil {
		extra := e.ExtraData(m)
		for _, k := range slices.Sorted(maps.Keys(extra)) {
			obj.Set(k, extra[k])
		}
	}
	return obj, nil
}

// EncodeList projects each model in order. An empty input yields an empty, non-nil slice.
func EncodeList[M Model](e *ModelEncoder, models []M) ([]*Object, error) {
	out := make([]*Object, 0, len(models))
	for i, m := range models {
		obj, err := e.Encode(m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, obj)
	}
	return out, nil
}
