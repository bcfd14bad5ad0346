package model

import (
	"fmt"
	"math"

	"github.com/roach88/objstore/internal/attr"
)

// field binds one declared attribute of a kind to its struct field.
type field struct {
	name   string
	encode func() attr.Value
	decode func(attr.Value) error
}

func stringField(name string, p *string) field {
	return field{
		name:   name,
		encode: func() attr.Value { return attr.String(*p) },
		decode: func(v attr.Value) error {
			s, ok := v.(attr.String)
			if !ok {
				return typeError("string", v)
			}
			*p = string(s)
			return nil
		},
	}
}

func intField(name string, p *int) field {
	return field{
		name:   name,
		encode: func() attr.Value { return attr.Int(*p) },
		decode: func(v attr.Value) error {
			switch n := v.(type) {
			case attr.Int:
				*p = int(n)
			case attr.Float:
				f := float64(n)
				if f != math.Trunc(f) {
					return fmt.Errorf("want int, got fractional %v", f)
				}
				// -MinInt is a power of two, so both bounds are exact floats.
				if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
					return fmt.Errorf("want int, got out of range %v", f)
				}
				*p = int(f)
			default:
				return typeError("int", v)
			}
			return nil
		},
	}
}

func floatField(name string, p *float64) field {
	return field{
		name:   name,
		encode: func() attr.Value { return attr.Float(*p) },
		decode: func(v attr.Value) error {
			switch n := v.(type) {
			case attr.Float:
				*p = float64(n)
			case attr.Int:
				*p = float64(n)
			default:
				return typeError("float", v)
			}
			return nil
		},
	}
}

func stringsField(name string, p *[]string) field {
	return field{
		name: name,
		encode: func() attr.Value {
			if *p == nil {
				return attr.Array{}
			}
			return attr.Strings(*p)
		},
		decode: func(v attr.Value) error {
			arr, ok := v.(attr.Array)
			if !ok {
				return typeError("array", v)
			}
			out := make([]string, len(arr))
			for i, elem := range arr {
				s, ok := elem.(attr.String)
				if !ok {
					return fmt.Errorf("element %d: %w", i, typeError("string", elem))
				}
				out[i] = string(s)
			}
			*p = out
			return nil
		},
	}
}

func typeError(want string, got attr.Value) error {
	return fmt.Errorf("want %s, got %s", want, attr.TypeName(got))
}
