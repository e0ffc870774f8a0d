// Package token provides the codec stack that turns a paging.CursorPayload
// into an opaque string token and back (C2): a type-preserving structured
// codec, a URL-safe base64 armor codec, an authenticated-encryption codec,
// and an external stash codec, composable via paging.Pipe2.
package token

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/nrfta/keyset-go"
)

// wireValue is the JSON-serializable form of a paging.Value: a kind tag
// plus exactly the field that kind uses, so that decode never has to
// guess a type from JSON's single native number representation (the
// whole reason a plain json.Marshal(map[string]any) would not do: a
// large integer round-tripped through interface{} becomes a float64 and
// loses precision).
type wireValue struct {
	Kind string     `json:"kind"`
	Str  string     `json:"str,omitempty"`
	Int  int64      `json:"int,omitempty"`
	Flt  float64    `json:"flt,omitempty"`
	Big  string     `json:"big,omitempty"`
	Bool bool       `json:"bool,omitempty"`
	Time *time.Time `json:"time,omitempty"`
}

type wirePayload struct {
	Sig string               `json:"sig"`
	K   map[string]wireValue `json:"k"`
}

func toWire(v paging.Value) wireValue {
	switch v.Kind {
	case paging.KindNull:
		return wireValue{Kind: "null"}
	case paging.KindString:
		return wireValue{Kind: "string", Str: v.String()}
	case paging.KindInt:
		return wireValue{Kind: "int", Int: v.Int()}
	case paging.KindFloat:
		return wireValue{Kind: "float", Flt: v.Float()}
	case paging.KindBigInt:
		return wireValue{Kind: "bigint", Big: v.BigInt().String()}
	case paging.KindBool:
		return wireValue{Kind: "bool", Bool: v.Bool()}
	case paging.KindTime:
		t := v.Time()
		return wireValue{Kind: "time", Time: &t}
	default:
		return wireValue{Kind: "null"}
	}
}

func fromWire(w wireValue) (paging.Value, error) {
	switch w.Kind {
	case "null":
		return paging.Null(), nil
	case "string":
		return paging.StringValue(w.Str), nil
	case "int":
		return paging.IntValue(w.Int), nil
	case "float":
		return paging.FloatValue(w.Flt), nil
	case "bigint":
		n := new(big.Int)
		if _, ok := n.SetString(w.Big, 10); !ok {
			return paging.Value{}, fmt.Errorf("token: invalid bigint literal %q", w.Big)
		}
		return paging.BigIntValue(n), nil
	case "bool":
		return paging.BoolValue(w.Bool), nil
	case "time":
		if w.Time == nil {
			return paging.Value{}, fmt.Errorf("token: time value missing")
		}
		return paging.TimeValue(*w.Time), nil
	default:
		return paging.Value{}, fmt.Errorf("token: unknown value kind %q", w.Kind)
	}
}

// StructuredCodec is the lossless, type-preserving codec of §4.2: it
// serializes a CursorPayload to a single JSON string and back, with
// every Value kind round-tripping exactly (a bigint decodes as a
// bigint, never silently downgrading through a JSON number).
type StructuredCodec struct{}

func (StructuredCodec) Encode(_ context.Context, in paging.CursorPayload) (string, error) {
	wp := wirePayload{Sig: in.Sig, K: make(map[string]wireValue, len(in.K))}
	for key, v := range in.K {
		wp.K[key] = toWire(v)
	}
	b, err := json.Marshal(wp)
	if err != nil {
		return "", fmt.Errorf("token: encode structured payload: %w", err)
	}
	return string(b), nil
}

func (StructuredCodec) Decode(_ context.Context, out string) (paging.CursorPayload, error) {
	var wp wirePayload
	if err := json.Unmarshal([]byte(out), &wp); err != nil {
		return paging.CursorPayload{}, fmt.Errorf("token: decode structured payload: %w", err)
	}

	k := make(map[string]paging.Value, len(wp.K))
	for key, wv := range wp.K {
		v, err := fromWire(wv)
		if err != nil {
			return paging.CursorPayload{}, err
		}
		k[key] = v
	}

	return paging.CursorPayload{Sig: wp.Sig, K: k}, nil
}
