/*
Package oioteltest reads spans back from the JSON that stdouttrace writes
and compares spans field by field.
*/
package oioteltest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// SpanStub is tracetest.SpanStub with the UnmarshalJSON support that
// tracetest.SpanStub lacks.
type SpanStub struct {
	Name                 string
	SpanContext          SpanContext
	Parent               SpanContext
	SpanKind             oteltrace.SpanKind
	StartTime            time.Time
	EndTime              time.Time
	Attributes           Attributes
	Events               []Event
	Links                []Link
	Status               sdktrace.Status
	DroppedAttributes    int
	DroppedEvents        int
	DroppedLinks         int
	ChildSpanCount       int
	Resource             Attributes
	InstrumentationScope Scope
	// older stdouttrace versions only write this one
	InstrumentationLibrary Scope
}

func (s SpanStub) String() string { return fmt.Sprintf("span %s - %s", s.Name, s.SpanContext) }

// Stub converts to the tracetest type. Use Snapshot() on the result to get
// a ReadOnlySpan.
func (s SpanStub) Stub() tracetest.SpanStub {
	scope := s.InstrumentationScope
	if scope.Name == "" && scope.Version == "" {
		scope = s.InstrumentationLibrary
	}
	events := make([]sdktrace.Event, len(s.Events))
	for i, e := range s.Events {
		events[i] = sdktrace.Event{
			Name:                  e.Name,
			Attributes:            e.Attributes,
			DroppedAttributeCount: e.DroppedAttributeCount,
			Time:                  e.Time,
		}
	}
	links := make([]sdktrace.Link, len(s.Links))
	for i, l := range s.Links {
		links[i] = sdktrace.Link{
			SpanContext:           l.SpanContext.SpanContext,
			Attributes:            l.Attributes,
			DroppedAttributeCount: l.DroppedAttributeCount,
		}
	}
	stub := tracetest.SpanStub{
		Name:              s.Name,
		SpanContext:       s.SpanContext.SpanContext,
		Parent:            s.Parent.SpanContext,
		SpanKind:          s.SpanKind,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Attributes:        s.Attributes,
		Events:            events,
		Links:             links,
		Status:            s.Status,
		DroppedAttributes: s.DroppedAttributes,
		DroppedEvents:     s.DroppedEvents,
		DroppedLinks:      s.DroppedLinks,
		ChildSpanCount:    s.ChildSpanCount,
		InstrumentationScope: instrumentation.Scope{
			Name:      scope.Name,
			Version:   scope.Version,
			SchemaURL: scope.SchemaURL,
		},
	}
	if len(s.Resource) != 0 {
		stub.Resource = resource.NewWithAttributes("", s.Resource...)
	}
	return stub
}

// Decode reads a stream of stdouttrace span objects. Both compact and pretty
// printed output work.
func Decode(r io.Reader) (tracetest.SpanStubs, error) {
	dec := json.NewDecoder(r)
	var stubs tracetest.SpanStubs
	for {
		var s SpanStub
		err := dec.Decode(&s)
		if err == io.EOF {
			return stubs, nil
		}
		if err != nil {
			return stubs, errors.Wrapf(err, "decode span %d", len(stubs)+1)
		}
		stubs = append(stubs, s.Stub())
	}
}

type Event struct {
	Name                  string
	Attributes            Attributes
	DroppedAttributeCount int
	Time                  time.Time
}

type Link struct {
	SpanContext           SpanContext
	Attributes            Attributes
	DroppedAttributeCount int
}

type Scope struct {
	Name      string
	Version   string
	SchemaURL string
}

// SpanContext exists because oteltrace.SpanContext doesn't implement UnmarshalJSON
type SpanContext struct {
	oteltrace.SpanContext
}

func (sc SpanContext) String() string {
	return fmt.Sprintf("00-%s-%s-%s", sc.TraceID(), sc.SpanID(), sc.TraceFlags())
}

func (sc *SpanContext) UnmarshalJSON(i []byte) error {
	var tmp struct {
		TraceID    TraceID
		SpanID     SpanID
		TraceFlags TraceFlags
		TraceState TraceState
		Remote     bool
	}
	err := json.Unmarshal(i, &tmp)
	if err != nil {
		return err
	}
	sc.SpanContext = oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    tmp.TraceID.TraceID,
		SpanID:     tmp.SpanID.SpanID,
		TraceFlags: tmp.TraceFlags.TraceFlags,
		TraceState: tmp.TraceState.TraceState,
		Remote:     tmp.Remote,
	})
	return nil
}

type SpanID struct {
	oteltrace.SpanID
}

func (s *SpanID) UnmarshalText(h []byte) error { return decode(s.SpanID[:], h) }

type TraceID struct {
	oteltrace.TraceID
}

func (t *TraceID) UnmarshalText(h []byte) error { return decode(t.TraceID[:], h) }

func decode(s []byte, h []byte) error {
	b, err := hex.DecodeString(string(h))
	if err != nil {
		return err
	}
	if len(b) != len(s) {
		return fmt.Errorf("wrong length")
	}
	copy(s, b)
	return nil
}

type TraceFlags struct {
	oteltrace.TraceFlags
}

func (tf *TraceFlags) UnmarshalText(h []byte) error {
	var a [1]byte
	err := decode(a[:], h)
	if err != nil {
		return err
	}
	tf.TraceFlags = oteltrace.TraceFlags(a[0])
	return nil
}

type TraceState struct {
	oteltrace.TraceState
}

func (ts *TraceState) UnmarshalText(i []byte) error {
	s, err := oteltrace.ParseTraceState(string(i))
	if err != nil {
		return err
	}
	ts.TraceState = s
	return nil
}

var _ json.Unmarshaler = &KeyValue{}
var _ json.Unmarshaler = &Attributes{}

// Attributes decodes the [{"Key":...,"Value":{"Type":...,"Value":...}}] form
// that attribute.KeyValue marshals to.
type Attributes []attribute.KeyValue

func (a *Attributes) UnmarshalJSON(b []byte) error {
	var standIn []KeyValue
	err := json.Unmarshal(b, &standIn)
	if err != nil {
		return err
	}
	*a = make([]attribute.KeyValue, len(standIn))
	for i, si := range standIn {
		(*a)[i] = si.KeyValue
	}
	return nil
}

type KeyValue struct {
	attribute.KeyValue
}

func (a *KeyValue) UnmarshalJSON(b []byte) error {
	var standIn struct {
		Key   string
		Value struct {
			Type  string
			Value json.RawMessage
		}
	}
	err := json.Unmarshal(b, &standIn)
	if err != nil {
		return err
	}
	raw := standIn.Value.Value
	switch standIn.Value.Type {
	case "BOOL":
		var v bool
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.Bool(standIn.Key, v)
	case "BOOLSLICE":
		var v []bool
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.BoolSlice(standIn.Key, v)
	case "FLOAT64":
		var v float64
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.Float64(standIn.Key, v)
	case "FLOAT64SLICE":
		var v []float64
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.Float64Slice(standIn.Key, v)
	case "INT64":
		var v int64
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.Int64(standIn.Key, v)
	case "INT64SLICE":
		var v []int64
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.Int64Slice(standIn.Key, v)
	case "STRING":
		var v string
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.String(standIn.Key, v)
	case "STRINGSLICE":
		var v []string
		err = json.Unmarshal(raw, &v)
		a.KeyValue = attribute.StringSlice(standIn.Key, v)
	default:
		return fmt.Errorf("unknown attribute.KeyValue type '%s'", standIn.Value.Type)
	}
	return errors.Wrapf(err, "attribute %s", standIn.Key)
}
