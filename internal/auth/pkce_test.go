package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeVerifier(t *testing.T) {
	verifier := GenerateCodeVerifier()

	assert.Len(t, verifier, 64)
	for _, c := range verifier {
		assert.Contains(t, verifierAlphabet, string(c),
			"verifier must only use unreserved characters")
	}

	// Two draws from 128+ bits of entropy never collide.
	assert.NotEqual(t, verifier, GenerateCodeVerifier())
}

func TestGenerateCodeChallenge(t *testing.T) {
	// Known-answer vector from RFC 7636 appendix B.
	const verifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	const want = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

	assert.Equal(t, want, GenerateCodeChallenge(verifier))

	// Deterministic for a given verifier.
	assert.Equal(t, GenerateCodeChallenge("abc"), GenerateCodeChallenge("abc"))
	assert.NotEqual(t, GenerateCodeChallenge("abc"), GenerateCodeChallenge("abd"))
}

func TestGenerateState(t *testing.T) {
	state := GenerateState()

	raw, err := hex.DecodeString(state)
	require.NoError(t, err, "state must be hex")
	assert.Len(t, raw, 16, "state must carry 128 bits")
	assert.Equal(t, strings.ToLower(state), state)

	assert.NotEqual(t, state, GenerateState())
}
