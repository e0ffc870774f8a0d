package paging

import "context"

// Codec is a bidirectional transform between I and O. Either direction
// may do real work (crypto, an external store, a DB round trip), so
// both take a context.
//
// Type parameters I and O are the decoded and encoded representations,
// e.g. Codec[CursorPayload, string] turns a decoded cursor payload into
// an opaque token string and back.
type Codec[I, O any] interface {
	Encode(ctx context.Context, in I) (O, error)
	Decode(ctx context.Context, out O) (I, error)
}

// CodecFunc builds a Codec from a pair of functions, for the common
// case where encode/decode have no state to hold onto.
type CodecFunc[I, O any] struct {
	EncodeFunc func(ctx context.Context, in I) (O, error)
	DecodeFunc func(ctx context.Context, out O) (I, error)
}

func (c CodecFunc[I, O]) Encode(ctx context.Context, in I) (O, error) {
	return c.EncodeFunc(ctx, in)
}

func (c CodecFunc[I, O]) Decode(ctx context.Context, out O) (I, error) {
	return c.DecodeFunc(ctx, out)
}

// pipe2 composes two codecs: A -> B -> C on encode, C -> B -> A on decode.
// Pipe2 (below) wraps it; nesting Pipe2 calls builds a token pipeline
// (structured codec | armor codec | ...) of any number of stages while
// keeping each stage's types aligned at compile time.
type pipe2[A, B, C any] struct {
	first  Codec[A, B]
	second Codec[B, C]
}

func (p pipe2[A, B, C]) Encode(ctx context.Context, in A) (C, error) {
	mid, err := p.first.Encode(ctx, in)
	if err != nil {
		var zero C
		return zero, err
	}
	return p.second.Encode(ctx, mid)
}

func (p pipe2[A, B, C]) Decode(ctx context.Context, out C) (A, error) {
	mid, err := p.second.Decode(ctx, out)
	if err != nil {
		var zero A
		return zero, err
	}
	return p.first.Decode(ctx, mid)
}

// Pipe2 composes two codecs into one: encode runs first then second,
// decode runs second then first. This is the building block for the
// default token pipeline: Pipe2(structuredCodec, armorCodec).
func Pipe2[A, B, C any](first Codec[A, B], second Codec[B, C]) Codec[A, C] {
	return pipe2[A, B, C]{first: first, second: second}
}
