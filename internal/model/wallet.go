package model

import "time"

// WalletRecord is a held wallet. Never mutated after creation, except by key rotation.
type WalletRecord struct {
	Address             string    `json:"address"`             // EIP-55 checksum address
	EncryptedPrivateKey string    `json:"encryptedPrivateKey"` // hex(iv):hex(ciphertext)
	PublicKey           string    `json:"publicKey"`           // 0x04... uncompressed
	CreatedAt           time.Time `json:"createdAt"`
}

// WalletInfo is the public part of a WalletRecord returned to callers
type WalletInfo struct {
	Address   string    `json:"address"`
	PublicKey string    `json:"publicKey"`
	CreatedAt time.Time `json:"createdAt"`
	QR        string    `json:"qr,omitempty"` // base64 PNG of the address
}
