package kumitate

import (
	"encoding/json"
	"fmt"
	"os"
)

// A Codec defines the serialization contract for one component type: Encode
// turns a component into a structured value (anything encoding/json can
// represent), Decode is the exact inverse and must reject values of the
// wrong shape. Every container carries the codec for its component type.
type Codec[C any] struct {
	Encode func(C) any
	Decode func(any) (C, error)
}

// BoolCodec is a ready-made codec for bool components, such as the World's
// entity presence container.
var BoolCodec = Codec[bool]{
	Encode: func(b bool) any { return b },
	Decode: AsBool,
}

// IntCodec is a ready-made codec for int components.
var IntCodec = Codec[int]{
	Encode: func(i int) any { return i },
	Decode: AsInt,
}

// Float64Codec is a ready-made codec for float64 components.
var Float64Codec = Codec[float64]{
	Encode: func(f float64) any { return f },
	Decode: AsFloat,
}

// StringCodec is a ready-made codec for string components.
var StringCodec = Codec[string]{
	Encode: func(s string) any { return s },
	Decode: AsString,
}

// AsInt coerces a structured value to an int. JSON decoding yields float64
// for every number, so all numeric forms are accepted as long as they hold
// an integral value.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrDeserialize, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrDeserialize, n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrDeserialize, v)
	}
}

// AsFloat coerces a structured value to a float64.
func AsFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v is not a number", ErrDeserialize, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrDeserialize, v)
	}
}

// AsBool coerces a structured value to a bool.
func AsBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrDeserialize, v)
	}
	return b, nil
}

// AsString coerces a structured value to a string.
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrDeserialize, v)
	}
	return s, nil
}

// AsMap coerces a structured value to a string-keyed map.
func AsMap(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrDeserialize, v)
	}
	return m, nil
}

// AsSlice coerces a structured value to a slice.
func AsSlice(v any) ([]any, error) {
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrDeserialize, v)
	}
	return s, nil
}

// Field fetches a required key from a structured object.
func Field(obj map[string]any, key string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrDeserialize, key)
	}
	return v, nil
}

// entityToStructured emits the persisted form of an entity. The field names
// uuid/idx carry the generation and slot; they are kept for save-file
// compatibility.
func entityToStructured(e Entity) map[string]any {
	return map[string]any{
		"name": e.Name,
		"uuid": int(e.Generation),
		"idx":  e.Slot,
	}
}

func entityFromStructured(v any) (Entity, error) {
	obj, err := AsMap(v)
	if err != nil {
		return Entity{}, err
	}
	name, err := AsString(obj["name"])
	if err != nil {
		return Entity{}, err
	}
	gen, err := AsInt(obj["uuid"])
	if err != nil {
		return Entity{}, err
	}
	slot, err := AsInt(obj["idx"])
	if err != nil {
		return Entity{}, err
	}
	return Entity{Name: name, Generation: uint32(gen), Slot: slot}, nil
}

func indexToStructured(i entityDataIndex) map[string]any {
	return map[string]any{
		"uuid":     int(i.generation),
		"data_idx": i.dataIdx,
	}
}

func indexFromStructured(v any) (entityDataIndex, error) {
	obj, err := AsMap(v)
	if err != nil {
		return entityDataIndex{}, err
	}
	gen, err := AsInt(obj["uuid"])
	if err != nil {
		return entityDataIndex{}, err
	}
	dataIdx, err := AsInt(obj["data_idx"])
	if err != nil {
		return entityDataIndex{}, err
	}
	return entityDataIndex{generation: uint32(gen), dataIdx: dataIdx}, nil
}

// SaveJSON writes a structured document to a JSON file.
func SaveJSON(path string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadJSON reads a structured document from a JSON file.
func LoadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return doc, nil
}
