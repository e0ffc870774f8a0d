package token_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go"
	"github.com/nrfta/keyset-go/token"
)

var _ = Describe("Default pipeline", func() {
	It("round-trips a CursorPayload end to end", func() {
		ctx := context.Background()
		codec := token.Default()

		payload := paging.CursorPayload{
			Sig: "deadbeef",
			K:   map[string]paging.Value{"id": paging.IntValue(99)},
		}

		encoded, err := codec.Encode(ctx, payload)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(ctx, encoded)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.Sig).To(Equal(payload.Sig))
		Expect(decoded.K["id"].Int()).To(Equal(int64(99)))
	})
})

var _ = Describe("WithEncryption pipeline", func() {
	It("round-trips under the configured secret and rejects another", func() {
		ctx := context.Background()
		payload := paging.CursorPayload{Sig: "s", K: map[string]paging.Value{"id": paging.IntValue(1)}}

		encoded, err := token.WithEncryption([]byte("secret")).Encode(ctx, payload)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := token.WithEncryption([]byte("secret")).Decode(ctx, encoded)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.Sig).To(Equal("s"))

		_, err = token.WithEncryption([]byte("other")).Decode(ctx, encoded)
		Expect(err).To(HaveOccurred())
	})
})
