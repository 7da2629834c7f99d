package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const (
	keyLen = 32 // AES-256
	ivLen  = 16 // 128-bit IV, used as the GCM nonce

	// separator between hex(iv) and hex(ciphertext) in a stored blob
	separator = ":"
)

// KeyCipher encrypts and decrypts private key material with a single process-wide key.
// The key is supplied at construction and never read from ambient state afterwards.
type KeyCipher struct {
	aead cipher.AEAD
}

// New creates a KeyCipher for a 32-byte key.
func New(key []byte) (*KeyCipher, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("invalid key length: must be %d bytes for AES-256, got %d", keyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// GCM with a 16-byte nonce keeps the 128-bit IV layout of stored blobs
	aead, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &KeyCipher{aead: aead}, nil
}

// RotateKey returns a KeyCipher for newKey. Existing blobs stay readable only through
// the old cipher; move them with ReEncrypt.
func (c *KeyCipher) RotateKey(newKey []byte) (*KeyCipher, error) {
	return New(newKey)
}

// ReEncrypt decrypts blob with c and encrypts the plaintext again with next.
func (c *KeyCipher) ReEncrypt(blob string, next *KeyCipher) (string, error) {
	plaintext, err := c.Decrypt(blob)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt with old key: %w", err)
	}
	defer clear(plaintext)

	out, err := next.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt with new key: %w", err)
	}
	return out, nil
}
