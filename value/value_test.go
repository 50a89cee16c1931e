package value

import (
	"testing"
)

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same uri", NewURI("http://example.org/a"), NewURI("http://example.org/a"), true},
		{"different uri", NewURI("http://example.org/a"), NewURI("http://example.org/b"), false},
		{"uri vs string", NewURI("x"), NewString("x"), false},
		{"same string", NewString("hello"), NewString("hello"), true},
		{"lang tag matters", NewStringLang("hello", "en"), NewString("hello"), false},
		{"same lang tag", NewStringLang("hello", "en"), NewStringLang("hello", "en"), true},
		{"different lang tag", NewStringLang("hello", "en"), NewStringLang("hello", "de"), false},
		{"same int", NewInt(42), NewInt(42), true},
		{"int vs float", NewInt(1), NewFloat(1), false},
		{"same float", NewFloat(0.5), NewFloat(0.5), true},
		{"same bool", NewBool(true), NewBool(true), true},
		{"different bool", NewBool(true), NewBool(false), false},
		{"same blank", NewBlank("b1"), NewBlank("b1"), true},
		{"zero values", Value{}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equals(tt.a); got != tt.want {
				t.Errorf("Equals(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestEqualsReflexive(t *testing.T) {
	vals := []Value{
		NewURI("http://example.org/p"),
		NewBlank("n0"),
		NewString("x"),
		NewStringLang("x", "en-US"),
		NewInt(-7),
		NewFloat(3.25),
		NewBool(false),
	}
	for _, v := range vals {
		if !v.Equals(v) {
			t.Errorf("Equals(%v, %v) = false, want true", v, v)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	uri := NewURI("http://example.org")
	if !uri.IsURI() || uri.IsBlank() || uri.IsLiteral() {
		t.Errorf("URI predicates wrong: %v", uri)
	}

	blank := GenBlank()
	if !blank.IsBlank() || blank.IsLiteral() {
		t.Errorf("blank predicates wrong: %v", blank)
	}
	if blank.AsBlank() == "" {
		t.Error("GenBlank produced empty ID")
	}

	for _, lit := range []Value{NewString("s"), NewInt(1), NewFloat(1), NewBool(true)} {
		if !lit.IsLiteral() {
			t.Errorf("IsLiteral(%v) = false", lit)
		}
	}
}

func TestGenBlankUnique(t *testing.T) {
	a, b := GenBlank(), GenBlank()
	if a.Equals(b) {
		t.Errorf("GenBlank returned duplicate ID %q", a.AsBlank())
	}
}

func TestAccessorPanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AsInt on a string did not panic")
		}
	}()
	NewString("not a number").AsInt()
}

func TestFloat(t *testing.T) {
	if f, ok := NewInt(3).Float(); !ok || f != 3.0 {
		t.Errorf("Float() on int = %v, %v", f, ok)
	}
	if f, ok := NewFloat(0.25).Float(); !ok || f != 0.25 {
		t.Errorf("Float() on float = %v, %v", f, ok)
	}
	if _, ok := NewString("nope").Float(); ok {
		t.Error("Float() on string reported ok")
	}
}

func TestTurtleToken(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"uri", NewURI("http://example.org/a"), "<http://example.org/a>"},
		{"blank", NewBlank("n3"), "_:n3"},
		{"string", NewString("hello"), `"hello"`},
		{"tagged string", NewStringLang("hallo", "de"), `"hallo"@de`},
		{"escaped string", NewString(`say "hi"`), `"say \"hi\""`},
		{"int", NewInt(-12), "-12"},
		{"float", NewFloat(0.5), "0.5"},
		{"bool true", NewBool(true), "true"},
		{"bool false", NewBool(false), "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.TurtleToken(); got != tt.want {
				t.Errorf("TurtleToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
