package oiotel

import (
	"github.com/xoplog/oitrace/oitranslate"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// translatedSpan overrides Attributes and nothing else. Embedding is the
// only way to satisfy ReadOnlySpan from outside the SDK since the interface
// has an unexported method.
type translatedSpan struct {
	sdktrace.ReadOnlySpan
	attributes []attribute.KeyValue
}

var _ sdktrace.ReadOnlySpan = &translatedSpan{}

// NewTranslatedSpan returns a view of original whose attributes are the
// original attributes overlaid with extra. On a key collision extra wins.
// Events, links, resource and every other accessor come straight from
// original, which is not modified.
func NewTranslatedSpan(original sdktrace.ReadOnlySpan, extra []attribute.KeyValue) sdktrace.ReadOnlySpan {
	return newTranslatedSpan(original, original.Attributes(), extra)
}

func newTranslatedSpan(original sdktrace.ReadOnlySpan, attrs []attribute.KeyValue, extra []attribute.KeyValue) *translatedSpan {
	return &translatedSpan{
		ReadOnlySpan: original,
		attributes:   oitranslate.Merge(attrs, extra),
	}
}

func (s *translatedSpan) Attributes() []attribute.KeyValue {
	return s.attributes
}

// Original returns the span a translated view was made from. Any other span
// is returned unchanged.
func Original(span sdktrace.ReadOnlySpan) sdktrace.ReadOnlySpan {
	if t, ok := span.(*translatedSpan); ok {
		return t.ReadOnlySpan
	}
	return span
}

// translateSpan returns span itself when there is nothing to add.
func translateSpan(span sdktrace.ReadOnlySpan) sdktrace.ReadOnlySpan {
	attrs := span.Attributes()
	if len(attrs) == 0 {
		return span
	}
	extra := oitranslate.Translate(attrs)
	if len(extra) == 0 {
		return span
	}
	return newTranslatedSpan(span, attrs, extra)
}
