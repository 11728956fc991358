package source

import (
	"fmt"
)

// Span is a half-open [Start, End) range of the program text.
type Span struct {
	Start Location
	End   Location
}

// NoSpan is the span of synthesized nodes.
var NoSpan = Span{Start: NoLocation, End: NoLocation}

func (s Span) Empty() bool {
	return s.Start.Index == s.End.Index
}

func (s Span) Len() int32 {
	return s.End.Index - s.Start.Index
}

func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Contains reports whether loc falls inside the span.
func (s Span) Contains(loc Location) bool {
	return s.Start.Index <= loc.Index && loc.Index < s.End.Index
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start.Index, s.End.Index)
}

// Cover returns the smallest span containing both s and other. Invalid
// spans are ignored.
func (s Span) Cover(other Span) Span {
	if !other.IsValid() {
		return s
	}
	if !s.IsValid() {
		return other
	}
	if other.Start.Index < s.Start.Index {
		s.Start = other.Start
	}
	if other.End.Index > s.End.Index {
		s.End = other.End
	}
	return s
}

func (s Span) ShiftLeft(n int32) Span {
	if n > s.Start.Index {
		return s
	}
	return Span{
		Start: s.Start.Offset(-n),
		End:   s.End.Offset(-n),
	}
}

func (s Span) ShiftRight(n int32) Span {
	return Span{
		Start: s.Start.Offset(n),
		End:   s.End.Offset(n),
	}
}
