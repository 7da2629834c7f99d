package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Encrypt encrypts plaintext under a fresh random IV and returns hex(iv) + ":" + hex(ciphertext).
// The ciphertext includes the GCM authentication tag.
func (c *KeyCipher) Encrypt(plaintext []byte) (string, error) {
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	ciphertext := c.aead.Seal(nil, iv, plaintext, nil)

	return hex.EncodeToString(iv) + separator + hex.EncodeToString(ciphertext), nil
}
