package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value of any type.
// The zero Value is JSON null.
//
// Numbers keep their textual form so that a value read from a file is
// written back exactly as it was, while comparisons use the exact numeric
// value (1 and 1.0 are equal, 1 and "1" are not).
type Value struct {
	kind Kind
	b    bool
	s    string // string payload, or number text
	arr  []Value
	obj  *Record
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer.
func Int(n int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)} }

// Float wraps a float using the shortest representation that round-trips.
func Float(f float64) Value {
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Number wraps a JSON number literal. The text is not validated.
func Number(n json.Number) Value { return Value{kind: KindNumber, s: string(n)} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object wraps a record.
func Object(r *Record) Value {
	if r == nil {
		r = NewRecord()
	}
	return Value{kind: KindObject, obj: r}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string payload and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsNumber returns the number literal and whether v is a number.
func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.s), v.kind == KindNumber }

// AsArray returns the elements and whether v is an array.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsRecord returns the object payload and whether v is an object.
func (v Value) AsRecord() (*Record, bool) { return v.obj, v.kind == KindObject }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports JSON value equality. Object key order is not significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return compareNumbers(v.s, o.s) == 0
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

// Key returns a canonical string such that a.Key() == b.Key() exactly when
// a.Equal(b). It is used to key sets and groupings by value.
func (v Value) Key() string {
	var sb strings.Builder
	v.writeKey(&sb)
	return sb.String()
}

func (v Value) writeKey(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("z")
	case KindBool:
		if v.b {
			sb.WriteString("t")
		} else {
			sb.WriteString("f")
		}
	case KindNumber:
		sb.WriteString("n:")
		if d, ok := parseDecimal(v.s); ok {
			sb.WriteString(d.String())
		} else {
			sb.WriteString(v.s)
		}
	case KindString:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		sb.WriteString("[")
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(",")
			}
			item.writeKey(sb)
		}
		sb.WriteString("]")
	case KindObject:
		sb.WriteString("{")
		for i, k := range v.obj.SortedKeys() {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(":")
			val, _ := v.obj.Get(k)
			val.writeKey(sb)
		}
		sb.WriteString("}")
	}
}

// String renders v as compact JSON, for messages and logs.
func (v Value) String() string {
	b, err := EncodeCompact(v)
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

// decimal is a JSON number in normal form: the value is
// (-1 if neg) * 0.digits * 10^exp, with no leading or trailing zeros in
// digits. Zero has empty digits and is never negative.
type decimal struct {
	neg    bool
	digits string
	exp    int64
}

// parseDecimal normalizes a JSON number literal. Exponents of any size are
// exact; ok is false only for text that is not a number.
func parseDecimal(s string) (decimal, bool) {
	var d decimal
	if strings.HasPrefix(s, "-") {
		d.neg = true
		s = s[1:]
	}

	mant, expText := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, expText = s[:i], s[i+1:]
	}
	var exp int64
	if expText != "" {
		e, err := strconv.ParseInt(strings.TrimPrefix(expText, "+"), 10, 64)
		if err != nil || e > 1<<62 || e < -(1<<62) {
			return decimal{}, false
		}
		exp = e
	}

	intPart, fracPart, _ := strings.Cut(mant, ".")
	if intPart == "" || !isDigits(intPart) || !isDigits(fracPart) {
		return decimal{}, false
	}

	digits := strings.TrimLeft(intPart+fracPart, "0")
	// Leading zeros removed from the integer part shift the point left.
	exp += int64(len(intPart)) - int64(len(intPart+fracPart)-len(digits))
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		return decimal{}, true
	}
	d.digits = digits
	d.exp = exp
	return d, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (d decimal) String() string {
	if d.digits == "" {
		return "0"
	}
	sign := ""
	if d.neg {
		sign = "-"
	}
	return sign + "0." + d.digits + "e" + strconv.FormatInt(d.exp, 10)
}

func (d decimal) sign() int {
	switch {
	case d.digits == "":
		return 0
	case d.neg:
		return -1
	default:
		return 1
	}
}

func (d decimal) cmp(o decimal) int {
	if sa, sb := d.sign(), o.sign(); sa != sb || sa == 0 {
		return cmpInt(int64(sa), int64(sb))
	}
	mag := cmpInt(d.exp, o.exp)
	if mag == 0 {
		// Same exponent: digits compare lexicographically, a proper prefix
		// being the smaller magnitude.
		mag = strings.Compare(d.digits, o.digits)
	}
	if d.neg {
		return -mag
	}
	return mag
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareNumbers(a, b string) int {
	da, okA := parseDecimal(a)
	db, okB := parseDecimal(b)
	if okA && okB {
		return da.cmp(db)
	}
	return strings.Compare(a, b)
}
