package token

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	aesVersion = byte(0x01)

	saltLen = 16
	ivLen   = 12
	tagLen  = 16

	// minTokenLen is ver(1) + salt(16) + iv(12) + tag(16), the floor
	// below which a token cannot possibly hold a valid header even with
	// an empty plaintext (§4.2 "too short").
	minTokenLen = 1 + saltLen + ivLen + tagLen

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	keyLen  = 32
)

// AESCodec is the authenticated-encryption codec of §4.2: scrypt key
// derivation per message salt, AES-256-GCM with the version byte and
// salt as additional authenticated data, output already base64-armored
// so it composes directly after StructuredCodec with no separate
// ArmorCodec stage.
//
// golang.org/x/crypto/scrypt.Key enforces its own 1GiB working-set cap
// internally; N=2^15, r=8, p=1 costs ~32MiB, comfortably inside both
// that cap and the spec's "maxmem >= 256 MiB" floor.
type AESCodec struct {
	Secret []byte
}

func NewAESCodec(secret []byte) *AESCodec {
	return &AESCodec{Secret: secret}
}

func (c *AESCodec) Encode(_ context.Context, in string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("token: generate salt: %w", err)
	}

	key, err := scrypt.Key(c.Secret, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("token: derive key: %w", err)
	}

	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("token: generate iv: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	aad := append([]byte{aesVersion}, salt...)
	sealed := gcm.Seal(nil, iv, []byte(in), aad) // ciphertext || tag, Go's convention

	ciphertext := sealed[:len(sealed)-tagLen]
	tag := sealed[len(sealed)-tagLen:]

	buf := make([]byte, 0, minTokenLen+len(ciphertext))
	buf = append(buf, aesVersion)
	buf = append(buf, salt...)
	buf = append(buf, iv...)
	buf = append(buf, tag...)
	buf = append(buf, ciphertext...)

	return encodeBase64(buf), nil
}

func (c *AESCodec) Decode(_ context.Context, out string) (string, error) {
	raw, err := decodeBase64Flexible(out)
	if err != nil {
		return "", fmt.Errorf("token: invalid base64 token: %w", err)
	}
	if len(raw) < minTokenLen {
		return "", errors.New("token: too short")
	}

	ver := raw[0]
	if ver != aesVersion {
		return "", fmt.Errorf("token: unsupported version %d", ver)
	}

	salt := raw[1 : 1+saltLen]
	iv := raw[1+saltLen : 1+saltLen+ivLen]
	tag := raw[1+saltLen+ivLen : minTokenLen]
	ciphertext := raw[minTokenLen:]

	key, err := scrypt.Key(c.Secret, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("token: derive key: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	aad := append([]byte{ver}, salt...)
	plain, err := gcm.Open(nil, iv, sealed, aad)
	if err != nil {
		return "", fmt.Errorf("token: authentication failed: %w", err)
	}

	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("token: build cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("token: build gcm: %w", err)
	}
	return gcm, nil
}
