/*
Copyright © 2026 the FieldMeta authors.
This file is part of FieldMeta.

FieldMeta is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldMeta is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldMeta.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldmeta

import (
	"fmt"
	"strconv"
)

// Kind identifies the type stored in a Value.
type Kind uint8

// The closed set of metadata value kinds. KindAbsent marks a canonical
// attribute (such as a fill value) that is not meaningful for a field but
// is still recorded.
const (
	KindAbsent Kind = iota
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("<kind %d>", uint8(k))
}

// A Value is a single typed metadata value. The zero Value is Absent.
// Values are immutable and comparable.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// Absent is the marker for an attribute with no meaningful value.
var Absent = Value{}

// Int32Value returns a Value holding v.
func Int32Value(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }

// Int64Value returns a Value holding v.
func Int64Value(v int64) Value { return Value{kind: KindInt64, i: v} }

// Float32Value returns a Value holding v.
func Float32Value(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }

// Float64Value returns a Value holding v.
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }

// BoolValue returns a Value holding v.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// StringValue returns a Value holding v.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the kind of the stored value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the Absent marker.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("fieldmeta: value is %s, not %s: %w", v.kind, want, ErrTypeMismatch)
}

// AsInt32 returns the stored int32, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsInt32() (int32, error) {
	if v.kind != KindInt32 {
		return 0, v.mismatch(KindInt32)
	}
	return int32(v.i), nil
}

// AsInt64 returns the stored int64, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, v.mismatch(KindInt64)
	}
	return v.i, nil
}

// AsFloat32 returns the stored float32, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsFloat32() (float32, error) {
	if v.kind != KindFloat32 {
		return 0, v.mismatch(KindFloat32)
	}
	return float32(v.f), nil
}

// AsFloat64 returns the stored float64, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindFloat64 {
		return 0, v.mismatch(KindFloat64)
	}
	return v.f, nil
}

// AsBool returns the stored bool, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// AsString returns the stored string, or ErrTypeMismatch if v holds a
// different kind.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	}
	return fmt.Sprintf("<invalid %d>", uint8(v.kind))
}
