package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ErrNotScalar is returned when a fetched value cannot be reduced to a single number.
var ErrNotScalar = errors.New("value is not a scalar")

// ToScalar reduces a raw fetched value to one float64. Accepted shapes are
// plain numbers, decimals, numeric strings, JSON results, and single-element
// containers (slices indexed by position, maps indexed by label) wrapping any
// of those. Every value entering indicator arithmetic goes through here.
func ToScalar(v interface{}) (float64, error) {
	f, err := toScalar(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: non-finite %v", ErrNotScalar, f)
	}
	return f, nil
}

func toScalar(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: null", ErrNotScalar)
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case decimal.Decimal:
		f, _ := n.Float64()
		return f, nil
	case *decimal.Decimal:
		if n == nil {
			return 0, fmt.Errorf("%w: null", ErrNotScalar)
		}
		f, _ := n.Float64()
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotScalar, n)
		}
		return f, nil
	case gjson.Result:
		return gjsonScalar(n)
	case []float64:
		if len(n) != 1 {
			return 0, fmt.Errorf("%w: %d elements", ErrNotScalar, len(n))
		}
		return n[0], nil
	case []interface{}:
		if len(n) != 1 {
			return 0, fmt.Errorf("%w: %d elements", ErrNotScalar, len(n))
		}
		return toScalar(n[0])
	case map[string]interface{}:
		if len(n) != 1 {
			return 0, fmt.Errorf("%w: %d labels", ErrNotScalar, len(n))
		}
		for _, inner := range n {
			return toScalar(inner)
		}
	case map[string]float64:
		if len(n) != 1 {
			return 0, fmt.Errorf("%w: %d labels", ErrNotScalar, len(n))
		}
		for _, inner := range n {
			return inner, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrNotScalar, v)
}

func gjsonScalar(r gjson.Result) (float64, error) {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return 0, fmt.Errorf("%w: null", ErrNotScalar)
	case r.Type == gjson.Number:
		return r.Float(), nil
	case r.Type == gjson.String:
		return toScalar(r.Str)
	case r.IsArray():
		items := r.Array()
		if len(items) != 1 {
			return 0, fmt.Errorf("%w: %d elements", ErrNotScalar, len(items))
		}
		return gjsonScalar(items[0])
	case r.IsObject():
		var (
			out   float64
			err   error
			count int
		)
		r.ForEach(func(_, value gjson.Result) bool {
			count++
			out, err = gjsonScalar(value)
			return true
		})
		if count != 1 {
			return 0, fmt.Errorf("%w: %d labels", ErrNotScalar, count)
		}
		return out, err
	}
	return 0, fmt.Errorf("%w: %s", ErrNotScalar, r.Raw)
}

// IsNull reports whether a JSON value is absent or null.
func IsNull(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}
