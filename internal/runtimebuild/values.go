package runtimebuild

import (
	"math"
	"strconv"

	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// count reads a non-negative integer keyword value. Values beyond the int
// range saturate.
func count(v jsonvalue.Value) (int, bool) {
	if !v.IsInteger() || v.Dec().Sign() < 0 {
		return 0, false
	}
	n, ok := v.Dec().Int64()
	if !ok || n > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(n), true
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
