package ethereum

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/model"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// CreateWallet generates a key pair, stores the encrypted private key and returns
// the public part. The private key never leaves the server.
func (s *Service) CreateWallet(ctx context.Context) (*model.WalletInfo, error) {
	privateKey, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	raw := ethcrypto.FromECDSA(privateKey)
	defer clear(raw)

	// 0x + 64 hex chars, same format callers supply on send
	keyHex := make([]byte, 2+hex.EncodedLen(len(raw)))
	defer clear(keyHex)
	copy(keyHex, "0x")
	hex.Encode(keyHex[2:], raw)

	encrypted, err := s.cipher.Encrypt(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}

	address := ethcrypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	rec := model.WalletRecord{
		Address:             address,
		EncryptedPrivateKey: encrypted,
		PublicKey:           hexutil.Encode(ethcrypto.FromECDSAPub(&privateKey.PublicKey)),
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store wallet: %w", err)
	}

	s.logger.Info("wallet created", zap.String("address", address))

	return &model.WalletInfo{
		Address:   rec.Address,
		PublicKey: rec.PublicKey,
		CreatedAt: rec.CreatedAt,
		QR:        qrCode,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
