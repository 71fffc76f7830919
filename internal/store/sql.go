package store

import (
	"strconv"
	"unicode/utf8"
)

// PositionalArgs orders params keyed "1", "2", ... into driver arguments.
// Numbering stops at the first gap.
func PositionalArgs(params map[string]any) []any {
	args := make([]any, 0, len(params))
	for i := 1; ; i++ {
		val, ok := params[strconv.Itoa(i)]
		if !ok {
			return args
		}
		args = append(args, val)
	}
}

// ReadableValue turns record blobs, which hold JSON, into strings so query
// output shows the stored document instead of base64.
func ReadableValue(v any) any {
	if b, ok := v.([]byte); ok && utf8.Valid(b) {
		return string(b)
	}
	return v
}
