package paging

import (
	"fmt"
	"math/big"
	"time"
)

// Kind tags the dynamic type carried by a Value. The cursor payload's
// values are heterogeneous (§3, §9 design notes prefer a tagged union
// over erased interface{} so the structured codec can round-trip exact
// types instead of guessing from JSON's native number type).
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBigInt
	KindBool
	KindTime
)

// Value is a single cursor-payload value: a boundary row's value for
// one sort column, carrying its original type.
type Value struct {
	Kind Kind

	str   string
	i64   int64
	f64   float64
	big   *big.Int
	boolV bool
	time  time.Time
}

func Null() Value                  { return Value{Kind: KindNull} }
func StringValue(s string) Value   { return Value{Kind: KindString, str: s} }
func IntValue(n int64) Value       { return Value{Kind: KindInt, i64: n} }
func FloatValue(f float64) Value   { return Value{Kind: KindFloat, f64: f} }
func BoolValue(b bool) Value       { return Value{Kind: KindBool, boolV: b} }
func TimeValue(t time.Time) Value  { return Value{Kind: KindTime, time: t} }
func BigIntValue(n *big.Int) Value { return Value{Kind: KindBigInt, big: new(big.Int).Set(n)} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) String() string  { return v.str }
func (v Value) Int() int64      { return v.i64 }
func (v Value) Float() float64  { return v.f64 }
func (v Value) Bool() bool      { return v.boolV }
func (v Value) Time() time.Time { return v.time }
func (v Value) BigInt() *big.Int {
	if v.big == nil {
		return nil
	}
	return new(big.Int).Set(v.big)
}

// Raw returns the value unwrapped to a plain Go value, the form most
// query builders and drivers expect when binding a parameter (e.g.
// qm.Where's "?" placeholders, gorm's Where args).
func (v Value) Raw() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindInt:
		return v.i64
	case KindFloat:
		return v.f64
	case KindBigInt:
		return v.big
	case KindBool:
		return v.boolV
	case KindTime:
		return v.time
	default:
		return nil
	}
}

// ValueOf converts a plain Go value, as returned by a Sort field's
// extractor function or a scanned database row, into a Value. It
// recognizes the types spec.md §3/§9 names explicitly; anything else
// falls back to a string via fmt.Sprintf, mirroring the teacher's
// convertValueForSQL fallback in sqlboiler/cursor.go.
func ValueOf(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return StringValue(v)
	case int:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case uint:
		return IntValue(int64(v))
	case uint32:
		return IntValue(int64(v))
	case float32:
		return FloatValue(float64(v))
	case float64:
		return FloatValue(v)
	case bool:
		return BoolValue(v)
	case time.Time:
		return TimeValue(v)
	case *big.Int:
		return BigIntValue(v)
	case big.Int:
		return BigIntValue(&v)
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

// Equal reports whether two Values carry the same kind and value. Used
// by this package's Value tests; not used on the hot path (comparisons there are pushed
// into SQL, not performed in Go).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i64 == other.i64
	case KindFloat:
		return v.f64 == other.f64
	case KindBigInt:
		if v.big == nil || other.big == nil {
			return v.big == other.big
		}
		return v.big.Cmp(other.big) == 0
	case KindBool:
		return v.boolV == other.boolV
	case KindTime:
		return v.time.Equal(other.time)
	default:
		return false
	}
}
