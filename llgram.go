package llgram

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Scanners define their own constants.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals of a grammar.
//
// For LL(1) parsing the lexeme is what counts: it is matched literally against
// the terminal symbols of a grammar.
//
//    TokType = scanner.Word  // category of this token
//    Lexeme  = "a"           // lexeme as it appeared in the sentence
//    Span    = 3…4           // position within the token sequence
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input tokens. Every node of a
// derivation tree tracks which input positions it covers. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span, which is used for nodes not covering any input.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
// Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if other.IsNull() {
		return s
	}
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
