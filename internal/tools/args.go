package tools

import (
	"fmt"
	"math"
)

// Args decodes loose JSON argument maps into the one Go type each parameter
// expects. Getters return the schema default when a key is absent and record
// the first type mismatch; handlers check Err once after decoding instead of
// threading an error through every read.
type Args struct {
	m   map[string]any
	err error
}

// Err returns the first decoding error, if any.
func (a *Args) Err() error {
	return a.err
}

func (a *Args) fail(key, want string, got any) {
	if a.err == nil {
		a.err = fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidArgType, key, want, got)
	}
}

// Str returns a string argument or def when absent.
func (a *Args) Str(key, def string) string {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		a.fail(key, "string", v)
		return def
	}
	return s
}

// Float returns a numeric argument or def when absent. JSON numbers arrive as
// float64; integers are accepted too.
func (a *Args) Float(key string, def float64) float64 {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		a.fail(key, "number", v)
		return def
	}
	return f
}

// Int returns an integer argument or def when absent. Fractional values are
// a type error, not a silent truncation.
func (a *Args) Int(key string, def int) int {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		a.fail(key, "integer", v)
		return def
	}
	return int(f)
}

// Bool returns a boolean argument or def when absent.
func (a *Args) Bool(key string, def bool) bool {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		a.fail(key, "boolean", v)
		return def
	}
	return b
}

// Vec3 returns a 3-element numeric array argument or def when absent.
func (a *Args) Vec3(key string, def [3]float64) [3]float64 {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	arr, ok := toFloatSlice(v)
	if !ok || len(arr) != 3 {
		a.fail(key, "array of 3 numbers", v)
		return def
	}
	return [3]float64{arr[0], arr[1], arr[2]}
}

// Vec4 returns a 4-element numeric array argument (RGBA) or def when absent.
func (a *Args) Vec4(key string, def [4]float64) [4]float64 {
	v, ok := a.m[key]
	if !ok || v == nil {
		return def
	}
	arr, ok := toFloatSlice(v)
	if !ok || len(arr) != 4 {
		a.fail(key, "array of 4 numbers", v)
		return def
	}
	return [4]float64{arr[0], arr[1], arr[2], arr[3]}
}

// StrList returns a string array argument; absent means nil.
func (a *Args) StrList(key string) []string {
	v, ok := a.m[key]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		a.fail(key, "array of strings", v)
		return nil
	}
	out := make([]string, len(raw))
	for i, e := range raw {
		s, ok := e.(string)
		if !ok {
			a.fail(key, "array of strings", e)
			return nil
		}
		out[i] = s
	}
	return out
}

// Vec3List returns vertex coordinates: an array of [x, y, z] arrays.
func (a *Args) Vec3List(key string) [][3]float64 {
	v, ok := a.m[key]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		a.fail(key, "array of [x, y, z] arrays", v)
		return nil
	}
	out := make([][3]float64, len(raw))
	for i, e := range raw {
		arr, ok := toFloatSlice(e)
		if !ok || len(arr) != 3 {
			a.fail(key, "array of [x, y, z] arrays", e)
			return nil
		}
		out[i] = [3]float64{arr[0], arr[1], arr[2]}
	}
	return out
}

// IntLists returns face definitions: an array of vertex index arrays.
func (a *Args) IntLists(key string) [][]int {
	v, ok := a.m[key]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		a.fail(key, "array of integer arrays", v)
		return nil
	}
	out := make([][]int, len(raw))
	for i, e := range raw {
		arr, ok := toFloatSlice(e)
		if !ok {
			a.fail(key, "array of integer arrays", e)
			return nil
		}
		idx := make([]int, len(arr))
		for j, f := range arr {
			if f != math.Trunc(f) {
				a.fail(key, "array of integer arrays", e)
				return nil
			}
			idx[j] = int(f)
		}
		out[i] = idx
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toFloatSlice(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, e := range raw {
		f, ok := toFloat(e)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
