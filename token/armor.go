package token

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ArmorCodec is the URL-safe base64 armor codec of §4.2: output is
// always unpadded, decode accepts both padded and unpadded input.
type ArmorCodec struct{}

func (ArmorCodec) Encode(_ context.Context, in string) (string, error) {
	return encodeBase64([]byte(in)), nil
}

func encodeBase64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func (ArmorCodec) Decode(_ context.Context, out string) (string, error) {
	raw, err := decodeBase64Flexible(out)
	if err != nil {
		return "", fmt.Errorf("token: invalid base64 token: %w", err)
	}
	return string(raw), nil
}

// decodeBase64Flexible accepts both the unpadded and padded URL-safe
// alphabets, since a token may have passed through a client or proxy
// that re-pads it.
func decodeBase64Flexible(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
