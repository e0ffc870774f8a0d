package token

import "github.com/nrfta/keyset-go"

// Default is the paginator's default token codec (§4.2): structured
// serialization piped into URL-safe armor, with no encryption and no
// external stash.
func Default() paging.Codec[paging.CursorPayload, string] {
	return paging.Pipe2[paging.CursorPayload, string, string](StructuredCodec{}, ArmorCodec{})
}

// WithEncryption replaces the armor stage with authenticated
// encryption: structured serialization piped into AES-256-GCM under
// secret.
func WithEncryption(secret []byte) paging.Codec[paging.CursorPayload, string] {
	return paging.Pipe2[paging.CursorPayload, string, string](StructuredCodec{}, NewAESCodec(secret))
}

// WithStash replaces the armor stage with an external stash: the
// structured payload is stored verbatim under a UUID key. Since the
// stash's own values are not authenticated, prefer WithEncryptedStash
// unless the store is already trusted.
func WithStash(store Store) paging.Codec[paging.CursorPayload, string] {
	return paging.Pipe2[paging.CursorPayload, string, string](StructuredCodec{}, NewStashCodec(store))
}

// WithEncryptedStash chains structured -> encryption -> stash: the
// value handed to the store is already sealed, so stash opacity (§9)
// holds even against a store operator who can read every key.
func WithEncryptedStash(secret []byte, store Store) paging.Codec[paging.CursorPayload, string] {
	encrypted := paging.Pipe2[paging.CursorPayload, string, string](StructuredCodec{}, NewAESCodec(secret))
	return paging.Pipe2[paging.CursorPayload, string, string](encrypted, NewStashCodec(store))
}
