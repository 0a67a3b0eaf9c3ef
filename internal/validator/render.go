package validator

import (
	"strconv"

	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// quoteList renders names as a JSON array of strings.
func quoteList(names []string) string {
	buf := make([]byte, 0, 2+len(names)*8)
	buf = append(buf, '[')
	for i, n := range names {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = jsonvalue.AppendQuoted(buf, n)
	}
	return string(append(buf, ']'))
}

// valueList renders values as a JSON array.
func valueList(values []jsonvalue.Value) string {
	buf := []byte{'['}
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = jsonvalue.AppendJSON(buf, v)
	}
	return string(append(buf, ']'))
}

func intList(ns []int) string {
	buf := make([]byte, 0, len(ns)*3)
	for i, n := range ns {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = strconv.AppendInt(buf, int64(n), 10)
	}
	return string(buf)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
