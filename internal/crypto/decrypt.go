package crypto

import (
	"encoding/hex"
	"errors"
)

// CipherError is returned when a blob cannot be decrypted: it is malformed or it was
// encrypted under a different key. Callers treat it as "key cannot be recovered".
type CipherError struct {
	Reason string
	Err    error
}

func (e *CipherError) Error() string {
	if e.Err != nil {
		return "cipher: " + e.Reason + ": " + e.Err.Error()
	}
	return "cipher: " + e.Reason
}

func (e *CipherError) Unwrap() error {
	return e.Err
}

// IsCipherError checks if error is CipherError
func IsCipherError(err error) bool {
	var target *CipherError
	return errors.As(err, &target)
}

// Decrypt reverses Encrypt. The IV is read as a fixed-length hex prefix followed by the
// separator, so the remainder is taken verbatim as the ciphertext.
func (c *KeyCipher) Decrypt(blob string) ([]byte, error) {
	const ivHexLen = ivLen * 2

	if len(blob) < ivHexLen+len(separator) {
		return nil, &CipherError{Reason: "blob too short"}
	}
	if blob[ivHexLen:ivHexLen+len(separator)] != separator {
		return nil, &CipherError{Reason: "missing separator after iv"}
	}

	iv, err := hex.DecodeString(blob[:ivHexLen])
	if err != nil {
		return nil, &CipherError{Reason: "invalid iv encoding", Err: err}
	}

	ciphertext, err := hex.DecodeString(blob[ivHexLen+len(separator):])
	if err != nil {
		return nil, &CipherError{Reason: "invalid ciphertext encoding", Err: err}
	}
	if len(ciphertext) < c.aead.Overhead() {
		return nil, &CipherError{Reason: "ciphertext too short"}
	}

	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, &CipherError{Reason: "authentication failed", Err: err}
	}

	return plaintext, nil
}
