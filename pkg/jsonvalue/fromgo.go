package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// FromGo converts a value produced by encoding/json decoding (nil, bool,
// float64, json.Number, string, []any, map[string]any) into a Value.
// Integer Go types are accepted as well. Map keys are sorted so the result is
// deterministic.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return ParseNumber(x.String())
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Value{}, fmt.Errorf("jsonvalue: unsupported float %v", x)
		}
		return ParseNumber(strconv.FormatFloat(x, 'g', -1, 64))
	case float32:
		return FromGo(float64(x))
	case int:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint32:
		return IntValue(int64(x)), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			converted, err := FromGo(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return ArrayOf(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			converted, err := FromGo(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: converted}
		}
		return ObjectOf(members...), nil
	default:
		return Value{}, fmt.Errorf("jsonvalue: unsupported Go type %T", v)
	}
}
