package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// verifierLength is the number of characters in a generated code verifier.
// RFC 7636 allows 43-128; we always emit 64.
const verifierLength = 64

// verifierAlphabet is the unreserved URL character set from RFC 3986,
// which is exactly the set RFC 7636 permits in a code verifier.
const verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// GenerateCodeVerifier returns a new PKCE code verifier: 64 characters drawn
// uniformly from the unreserved alphabet using crypto/rand.
//
// A predictable verifier would defeat PKCE entirely, so failure of the random
// source is treated as fatal.
func GenerateCodeVerifier() string {
	// Rejection sampling keeps the distribution uniform: accept a random
	// byte only if it falls below the largest multiple of the alphabet size.
	const limit = 256 - 256%len(verifierAlphabet)

	out := make([]byte, 0, verifierLength)
	buf := make([]byte, verifierLength)
	for len(out) < verifierLength {
		mustRead(buf)
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, verifierAlphabet[int(b)%len(verifierAlphabet)])
			if len(out) == verifierLength {
				break
			}
		}
	}
	return string(out)
}

// GenerateCodeChallenge derives the S256 code challenge for a verifier:
// the unpadded base64url encoding of SHA-256 over the verifier's bytes.
// It is pure and deterministic.
func GenerateCodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GenerateState returns a fresh anti-CSRF state token: 16 random bytes
// (128 bits) rendered as hex. It is independent of the code verifier and
// must be used for a single login attempt only.
func GenerateState() string {
	buf := make([]byte, 16)
	mustRead(buf)
	return hex.EncodeToString(buf)
}

func mustRead(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("auth: crypto/rand unavailable: %v", err))
	}
}
