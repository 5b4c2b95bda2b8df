package table

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat coerces a cell to a finite float64. Text is parsed after trimming
// whitespace; booleans map to 1 and 0. Empty, unparseable and non-finite
// cells report false.
func ToFloat(cell any) (float64, bool) {
	var f float64
	switch v := cell.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// inferCell types a raw text cell: blank is empty, numeric text becomes
// float64 and anything else stays a string.
func inferCell(raw string) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return raw
}
