package webserver

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	addr := base58.Encode(pub)
	nonce := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	sig := ed25519.Sign(priv, []byte(nonce))

	require.NoError(t, verifySignature(addr, hex.EncodeToString(sig), nonce))
	require.NoError(t, verifySignature(addr, "0x"+hex.EncodeToString(sig), nonce))
	require.NoError(t, verifySignature(addr, base58.Encode(sig), nonce))
	require.NoError(t, verifySignature("0x"+hex.EncodeToString(pub), hex.EncodeToString(sig), nonce))
}

func TestVerifySignatureRejects(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	addr := base58.Encode(pub)
	sig := ed25519.Sign(priv, []byte("nonce-a"))

	// Signature over a different nonce.
	require.Error(t, verifySignature(addr, hex.EncodeToString(sig), "nonce-b"))

	// Signature from a different key.
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	require.Error(t, verifySignature(base58.Encode(otherPub), hex.EncodeToString(sig), "nonce-a"))

	// Malformed inputs.
	require.Error(t, verifySignature("not-an-address!!", hex.EncodeToString(sig), "nonce-a"))
	require.Error(t, verifySignature(addr, "deadbeef", "nonce-a"))
}
