package rcc

import "strconv"

type valueKind uint8

const (
	valueUnset valueKind = iota
	valueBool
	valueString
)

// Value is the value of one flag in a composition: unset, a boolean or a string.
// The zero Value is unset. Values are comparable.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: valueBool, b: b}
}

// Str returns a string value, used to select a ternary property value.
func Str(s string) Value {
	return Value{kind: valueString, s: s}
}

// ParseValue reads a value from text: "true" and "false" are booleans,
// anything else is a string.
func ParseValue(text string) Value {
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	default:
		return Str(text)
	}
}

// Truthy reports whether the value activates classes: true, or a non-empty string.
func (v Value) Truthy() bool {
	switch v.kind {
	case valueBool:
		return v.b
	case valueString:
		return v.s != ""
	default:
		return false
	}
}

// IsSet reports whether the value was assigned.
func (v Value) IsSet() bool {
	return v.kind != valueUnset
}

func (v Value) String() string {
	switch v.kind {
	case valueBool:
		return strconv.FormatBool(v.b)
	case valueString:
		return v.s
	default:
		return ""
	}
}

// Values assigns values to flag names.
type Values map[string]Value

// match returns the token the property activates for v
func (p *Property) match(v Value) (string, bool) {
	if p == nil || !v.Truthy() {
		return "", false
	}
	switch p.Kind {
	case Boolean:
		return p.Class, true
	case Ternary:
		if v.kind != valueString {
			return "", false
		}
		token, ok := p.Values[v.s]
		return token, ok
	}
	return "", false
}
