// Package value provides the typed value model for plugin metadata queries.
//
// A Value is the unit of both query terms and query results. It is an
// immutable tagged variant covering the node kinds that appear in plugin
// metadata graphs:
//   - URI: a resolvable identifier (plugins, classes, predicates, features)
//   - Blank: an anonymous graph node (ports and scale points are usually blank)
//   - String: a literal, optionally carrying a BCP-47 language tag
//   - Int, Float, Bool: typed literals
//
// Values are plain comparable structs. Equality is structural: same kind,
// same content, language tag included for strings. Because the zero parts of
// a Value are always zeroed by the constructors, == and Equals agree.
//
// Typed accessors (AsURI, AsInt, ...) require the matching kind. Calling one
// on the wrong variant is a programming error and panics; check the kind
// predicates first.
package value

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNil is the zero Value; it matches nothing and renders as "".
	KindNil Kind = iota

	// KindURI is a URI node.
	KindURI

	// KindBlank is an anonymous (blank) node identified by a graph-local ID.
	KindBlank

	// KindString is a string literal with an optional language tag.
	KindString

	// KindInt is an integer literal.
	KindInt

	// KindFloat is a floating point literal.
	KindFloat

	// KindBool is a boolean literal.
	KindBool
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindURI:
		return "uri"
	case KindBlank:
		return "blank"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is an immutable typed metadata value.
// The zero Value has KindNil and is not a valid graph term.
type Value struct {
	kind Kind
	str  string // URI, blank ID, or string text
	lang string // language tag, strings only
	i    int64
	f    float64
	b    bool
}

// NewURI returns a URI Value.
func NewURI(uri string) Value {
	return Value{kind: KindURI, str: uri}
}

// NewBlank returns a blank node Value with the given graph-local ID.
func NewBlank(id string) Value {
	return Value{kind: KindBlank, str: id}
}

// GenBlank returns a blank node Value with a fresh unique ID.
func GenBlank() Value {
	return Value{kind: KindBlank, str: "b" + uuid.NewString()}
}

// NewString returns an untagged string literal.
func NewString(text string) Value {
	return Value{kind: KindString, str: text}
}

// NewStringLang returns a string literal carrying a language tag.
// An empty tag is equivalent to NewString.
func NewStringLang(text, lang string) Value {
	return Value{kind: KindString, str: text, lang: lang}
}

// NewInt returns an integer literal.
func NewInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// NewFloat returns a float literal.
func NewFloat(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// NewBool returns a boolean literal.
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the zero Value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsURI reports whether v is a URI node.
func (v Value) IsURI() bool { return v.kind == KindURI }

// IsBlank reports whether v is a blank node.
func (v Value) IsBlank() bool { return v.kind == KindBlank }

// IsLiteral reports whether v is a literal (string, int, float, or bool).
func (v Value) IsLiteral() bool {
	switch v.kind {
	case KindString, KindInt, KindFloat, KindBool:
		return true
	}
	return false
}

// IsString reports whether v is a string literal.
func (v Value) IsString() bool { return v.kind == KindString }

// IsInt reports whether v is an integer literal.
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsFloat reports whether v is a float literal.
func (v Value) IsFloat() bool { return v.kind == KindFloat }

// IsBool reports whether v is a boolean literal.
func (v Value) IsBool() bool { return v.kind == KindBool }

func (v Value) mustBe(k Kind, accessor string) {
	if v.kind != k {
		panic(fmt.Sprintf("value: %s called on %s value", accessor, v.kind))
	}
}

// AsURI returns the URI. Panics unless IsURI.
func (v Value) AsURI() string {
	v.mustBe(KindURI, "AsURI")
	return v.str
}

// AsBlank returns the blank node ID. Panics unless IsBlank.
func (v Value) AsBlank() string {
	v.mustBe(KindBlank, "AsBlank")
	return v.str
}

// AsString returns the literal text. Panics unless IsString.
func (v Value) AsString() string {
	v.mustBe(KindString, "AsString")
	return v.str
}

// Lang returns the language tag of a string literal, or "" when untagged.
// Panics unless IsString.
func (v Value) Lang() string {
	v.mustBe(KindString, "Lang")
	return v.lang
}

// AsInt returns the integer. Panics unless IsInt.
func (v Value) AsInt() int64 {
	v.mustBe(KindInt, "AsInt")
	return v.i
}

// AsFloat returns the float. Panics unless IsFloat.
func (v Value) AsFloat() float64 {
	v.mustBe(KindFloat, "AsFloat")
	return v.f
}

// AsBool returns the boolean. Panics unless IsBool.
func (v Value) AsBool() bool {
	v.mustBe(KindBool, "AsBool")
	return v.b
}

// Float returns the numeric content of an int or float literal as float64.
// The second result is false for non-numeric values.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Equals reports structural equality: same kind and same content, language
// tag included for strings. It is reflexive and symmetric regardless of how
// the values were constructed.
func (v Value) Equals(o Value) bool { return v == o }

// TurtleToken renders v as a Turtle token. The result is a fresh string
// owned by the caller.
func (v Value) TurtleToken() string {
	switch v.kind {
	case KindURI:
		return "<" + v.str + ">"
	case KindBlank:
		return "_:" + v.str
	case KindString:
		tok := strconv.Quote(v.str)
		if v.lang != "" {
			tok += "@" + v.lang
		}
		return tok
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// String implements fmt.Stringer using the Turtle token form.
func (v Value) String() string { return v.TurtleToken() }
