package token

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Store is the external key-value collaborator a StashCodec delegates
// to (§4.2, §6 "stash codec: {get, set}"). Implementations decide their
// own durability and concurrency discipline; the codec only needs Get
// and Set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// StashCodec stores the encoded value of the upstream stage under a
// fresh UUIDv4 key and hands back the key itself as the token. Per the
// stash opacity design note, a StashCodec should normally sit after an
// AESCodec in the pipeline rather than directly after StructuredCodec,
// so the stashed value can't be read or forged by whoever controls the
// store.
type StashCodec struct {
	Store Store
}

func NewStashCodec(store Store) *StashCodec {
	return &StashCodec{Store: store}
}

func (c *StashCodec) Encode(ctx context.Context, in string) (string, error) {
	key := uuid.NewString()
	if err := c.Store.Set(ctx, key, in); err != nil {
		return "", fmt.Errorf("token: stash set: %w", err)
	}
	return key, nil
}

func (c *StashCodec) Decode(ctx context.Context, out string) (string, error) {
	v, ok, err := c.Store.Get(ctx, out)
	if err != nil {
		return "", fmt.Errorf("token: stash get: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("token: unknown stash key %q", out)
	}
	return v, nil
}
