package webserver

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mr-tron/base58"
)

// decodeAddress converts a wallet address to the raw 32-byte ed25519 public
// key. Addresses arrive base58-encoded; hex with an 0x prefix is tolerated
// for tooling.
func decodeAddress(addr string) ([]byte, error) {
	if strings.HasPrefix(addr, "0x") {
		return hex.DecodeString(addr[2:])
	}

	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address")
	}
	return raw, nil
}

// decodeSig accepts the signature as hex (with or without 0x) or base58,
// whichever the wallet produced.
func decodeSig(sig string) ([]byte, error) {
	s := strings.TrimPrefix(sig, "0x")
	if b, err := hex.DecodeString(s); err == nil && len(b) == ed25519.SignatureSize {
		return b, nil
	}
	return base58.Decode(sig)
}

func verifySignature(addr, sig, nonce string) error {
	pubKey, err := decodeAddress(addr)
	if err != nil {
		log.Printf("auth: failed to decode address %s: %v", addr, err)
		return err
	}
	if len(pubKey) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid public key length: %d", len(pubKey))
	}

	sigBytes, err := decodeSig(sig)
	if err != nil {
		log.Printf("auth: failed to decode signature: %v", err)
		return err
	}
	if len(sigBytes) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature length: %d", len(sigBytes))
	}

	if !ed25519.Verify(ed25519.PublicKey(pubKey), []byte(nonce), sigBytes) {
		log.Printf("auth: signature verification failed for %s", addr)
		return fmt.Errorf("signature verification failed")
	}
	return nil
}

func issueJWT(addr string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"addr": addr,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString(secret)
}
