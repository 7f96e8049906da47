package oitranslate

import "go.opentelemetry.io/otel/attribute"

// isEmpty reports values that count as not set: the zero Value, empty
// strings and empty slices.
func isEmpty(v attribute.Value) bool {
	switch v.Type() {
	case attribute.INVALID:
		return true
	case attribute.STRING:
		return v.AsString() == ""
	case attribute.STRINGSLICE:
		return len(v.AsStringSlice()) == 0
	case attribute.BOOLSLICE:
		return len(v.AsBoolSlice()) == 0
	case attribute.INT64SLICE:
		return len(v.AsInt64Slice()) == 0
	case attribute.FLOAT64SLICE:
		return len(v.AsFloat64Slice()) == 0
	default:
		return false
	}
}

func asString(v attribute.Value) string {
	if v.Type() == attribute.STRING {
		return v.AsString()
	}
	return v.Emit()
}

// sum adds two token counts. Two integers stay an integer. Anything that is
// not a number has no total.
func sum(a, b attribute.Value) (attribute.Value, bool) {
	if a.Type() == attribute.INT64 && b.Type() == attribute.INT64 {
		return attribute.Int64Value(a.AsInt64() + b.AsInt64()), true
	}
	af, ok := asFloat(a)
	if !ok {
		return attribute.Value{}, false
	}
	bf, ok := asFloat(b)
	if !ok {
		return attribute.Value{}, false
	}
	return attribute.Float64Value(af + bf), true
}

func asFloat(v attribute.Value) (float64, bool) {
	switch v.Type() {
	case attribute.INT64:
		return float64(v.AsInt64()), true
	case attribute.FLOAT64:
		return v.AsFloat64(), true
	default:
		return 0, false
	}
}
