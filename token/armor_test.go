package token_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go/token"
)

var _ = Describe("ArmorCodec", func() {
	var (
		ctx   context.Context
		codec token.ArmorCodec
	)

	BeforeEach(func() {
		ctx = context.Background()
		codec = token.ArmorCodec{}
	})

	It("round-trips arbitrary strings", func() {
		encoded, err := codec.Encode(ctx, `{"sig":"x","k":{}}`)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(ctx, encoded)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded).To(Equal(`{"sig":"x","k":{}}`))
	})

	It("emits unpadded output using the URL-safe alphabet", func() {
		encoded, err := codec.Encode(ctx, "any string long enough to normally need padding")
		Expect(err).ToNot(HaveOccurred())
		Expect(encoded).ToNot(ContainSubstring("="))
		Expect(encoded).ToNot(ContainSubstring("+"))
		Expect(encoded).ToNot(ContainSubstring("/"))
	})

	It("accepts padded input on decode", func() {
		// "ab" -> unpadded "YWI", padded "YWI="
		decoded, err := codec.Decode(ctx, "YWI=")
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded).To(Equal("ab"))
	})

	It("fails decode on invalid base64", func() {
		_, err := codec.Decode(ctx, "not base64!!!")
		Expect(err).To(HaveOccurred())
	})
})
