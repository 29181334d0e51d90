package types

import (
	"fmt"
	"slices"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

// Value variants. The set is closed; consumers switch on Kind exhaustively.
const (
	KindText ValueKind = iota
	KindInteger
	KindTextList
	KindIntegerList
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	case KindTextList:
		return "TextList"
	case KindIntegerList:
		return "IntegerList"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a storable or bindable column datum: text, a 32-bit integer, or a
// list of either. Only Text and Integer can be bound into a statement.
// The zero Value is the empty Text.
type Value struct {
	kind  ValueKind
	text  string
	num   int32
	texts []string
	nums  []int32
}

// Text returns a Text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Integer returns an Integer value.
func Integer(n int32) Value {
	return Value{kind: KindInteger, num: n}
}

// TextList returns a TextList value holding a copy of ss.
func TextList(ss ...string) Value {
	return Value{kind: KindTextList, texts: slices.Clone(ss)}
}

// IntegerList returns an IntegerList value holding a copy of ns.
func IntegerList(ns ...int32) Value {
	return Value{kind: KindIntegerList, nums: slices.Clone(ns)}
}

// DateValue returns the Text form (YYYY-MM-DD) of d.
func DateValue(d time.Time) Value {
	return Text(FormatDate(d))
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Contains reports whether a list value holds other. TextList only accepts
// Text and IntegerList only accepts Integer; scalar values never contain
// anything. All mismatches return ErrValue.
func (v Value) Contains(other Value) (bool, error) {
	switch v.kind {
	case KindTextList:
		if other.kind != KindText {
			return false, fmt.Errorf("%w: TextList only holds Strings", ErrValue)
		}
		return slices.Contains(v.texts, other.text), nil
	case KindIntegerList:
		if other.kind != KindInteger {
			return false, fmt.Errorf("%w: IntegerList only holds i32s", ErrValue)
		}
		return slices.Contains(v.nums, other.num), nil
	case KindText, KindInteger:
		return false, fmt.Errorf("%w: Only list Values can contain values", ErrValue)
	default:
		return false, fmt.Errorf("%w: unknown value kind %s", ErrValue, v.kind)
	}
}

// AsInt32 narrows an Integer value.
func (v Value) AsInt32() (int32, error) {
	if v.kind != KindInteger {
		return 0, fmt.Errorf("%w: not an i32", ErrValue)
	}
	return v.num, nil
}

// AsString narrows a Text value.
func (v Value) AsString() (string, error) {
	if v.kind != KindText {
		return "", fmt.Errorf("%w: not a String", ErrValue)
	}
	return v.text, nil
}

// AsStrings narrows a TextList value. The returned slice is a copy.
func (v Value) AsStrings() ([]string, error) {
	if v.kind != KindTextList {
		return nil, fmt.Errorf("%w: not a Vec<String>", ErrValue)
	}
	return slices.Clone(v.texts), nil
}

// AsInt32s narrows an IntegerList value. The returned slice is a copy.
func (v Value) AsInt32s() ([]int32, error) {
	if v.kind != KindIntegerList {
		return nil, fmt.Errorf("%w: not a Vec<i32>", ErrValue)
	}
	return slices.Clone(v.nums), nil
}

// AsDate parses a Text value as YYYY-MM-DD. A non-Text value returns
// ErrValue; malformed text returns ErrBadDate.
func (v Value) AsDate() (time.Time, error) {
	if v.kind != KindText {
		return time.Time{}, fmt.Errorf("%w: not a date", ErrValue)
	}
	return ParseDate(v.text)
}

// Equal reports whether v and other hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindInteger:
		return v.num == other.num
	case KindTextList:
		return slices.Equal(v.texts, other.texts)
	case KindIntegerList:
		return slices.Equal(v.nums, other.nums)
	default:
		return false
	}
}

// String renders v for logs, e.g. Text("a") or IntegerList([1 2]).
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return fmt.Sprintf("Text(%q)", v.text)
	case KindInteger:
		return fmt.Sprintf("Integer(%d)", v.num)
	case KindTextList:
		return fmt.Sprintf("TextList(%q)", v.texts)
	case KindIntegerList:
		return fmt.Sprintf("IntegerList(%v)", v.nums)
	default:
		return v.kind.String()
	}
}
