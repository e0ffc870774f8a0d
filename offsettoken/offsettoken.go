// Package offsettoken provides a legacy numeric-offset token codec, for
// callers migrating off a pure offset-pagination API that already hands
// opaque "cursor" strings to clients: it round-trips an int offset
// through the same opaque-token shape a keyset cursor would have, so a
// client swapping APIs doesn't need to change how it treats the
// PageInfo.NextPage/PrevPage values it was already passing back.
//
// It does not participate in keyset cursor validation (no sort
// signature, no boundary values) — it is a thin, separately-opaque
// wrapper purely for offset values, meant to be decoded back into an
// IncomingCursor.Offset by the caller before calling Paginate.
package offsettoken

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/nrfta/keyset-go"
)

const prefix = "cursor:offset:"

// Codec encodes/decodes a plain int offset as an opaque base64 token.
type Codec struct{}

// New returns an offset token codec.
func New() Codec { return Codec{} }

func invalidf(code paging.Code, format string, args ...any) *paging.PaginationError {
	return &paging.PaginationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (Codec) Encode(_ context.Context, offset int) (string, error) {
	if offset < 0 {
		return "", invalidf(paging.CodeInvalidLimit, "offsettoken: negative offset %d", offset)
	}
	raw := prefix + strconv.Itoa(offset)
	return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

func (Codec) Decode(_ context.Context, token string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Legacy tokens were sometimes minted with padded URL-safe
		// base64; accept that shape too rather than hard-failing every
		// token minted before this codec's current Encode existed.
		if padded, perr := base64.URLEncoding.DecodeString(token); perr == nil {
			raw, err = padded, nil
		} else {
			return 0, invalidf(paging.CodeInvalidToken, "offsettoken: malformed token: %v", err)
		}
	}

	s := string(raw)
	if !strings.HasPrefix(s, prefix) {
		return 0, invalidf(paging.CodeInvalidToken, "offsettoken: unrecognized token shape")
	}

	n, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
	if err != nil || n < 0 {
		return 0, invalidf(paging.CodeInvalidToken, "offsettoken: invalid offset value")
	}
	return n, nil
}

var _ paging.Codec[int, string] = Codec{}
