package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for passphrase-derived keys, same cost as the local wallet file format
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1

	minSaltLen = 16
)

// KeyFromHex parses a 64 hex character key (optional 0x prefix).
func KeyFromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != keyLen*2 {
		return nil, fmt.Errorf("encryption key must be %d hex characters, got %d", keyLen*2, len(s))
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return key, nil
}

// DeriveKey derives a 32-byte key from a passphrase and salt with scrypt.
// passphrase must be []byte for security (caller should zero it after use)
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	if len(salt) < minSaltLen {
		return nil, fmt.Errorf("salt must be at least %d bytes", minSaltLen)
	}
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// GenerateKey returns a random 32-byte key. A key generated at startup lives only in
// memory: anything encrypted with it is unrecoverable after a restart.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// KeySource tells where the master key came from
type KeySource string

const (
	KeySourceHex        KeySource = "hex"
	KeySourcePassphrase KeySource = "passphrase"
	KeySourceGenerated  KeySource = "generated"
)

// ResolveKey picks the master key: a hex key, else a passphrase+salt derivation,
// else a fresh random key.
func ResolveKey(hexKey, passphrase, salt string) ([]byte, KeySource, error) {
	switch {
	case hexKey != "":
		key, err := KeyFromHex(hexKey)
		return key, KeySourceHex, err
	case passphrase != "":
		pass := []byte(passphrase)
		defer clear(pass)
		key, err := DeriveKey(pass, []byte(salt))
		return key, KeySourcePassphrase, err
	default:
		key, err := GenerateKey()
		return key, KeySourceGenerated, err
	}
}
