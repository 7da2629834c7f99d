package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// TxSigner signs transfers on behalf of one account
type TxSigner interface {
	Address() ethcommon.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// keySigner signs with an in-process private key
type keySigner struct {
	key *ecdsa.PrivateKey
}

// newKeySigner parses a 0x-prefixed hex private key
func newKeySigner(keyHex []byte) (*keySigner, error) {
	if len(keyHex) < 2 || len(keyHex)%2 != 0 {
		return nil, fmt.Errorf("invalid private key length")
	}
	raw := make([]byte, hex.DecodedLen(len(keyHex)-2))
	defer clear(raw)
	if _, err := hex.Decode(raw, keyHex[2:]); err != nil {
		return nil, err
	}

	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, err
	}
	return &keySigner{key: key}, nil
}

func (k *keySigner) Address() ethcommon.Address {
	return ethcrypto.PubkeyToAddress(k.key.PublicKey)
}

func (k *keySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), k.key)
}
