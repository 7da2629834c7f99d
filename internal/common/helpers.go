package common

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	EtherDecimals = 18 // 1 ETH = 10^18 wei

	privateKeyHexLen = 64 // 32 bytes

	maxWeiBits = 256 // uint256
)

// plain decimal only: no exponent, no leading dot
var etherAmountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// WeiToEther converts wei to an ETH string without float precision loss
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals).String()
}

// EtherToWei converts an ETH decimal string to wei without float precision loss.
// More than 18 fractional digits is an error, not a silent truncation.
// Exponent notation and values beyond the uint256 wei range are rejected.
func EtherToWei(ether string) (*big.Int, error) {
	ether = strings.TrimSpace(ether)
	if ether == "" {
		return nil, errors.New("empty string")
	}
	if !etherAmountPattern.MatchString(ether) {
		return nil, errors.New("invalid decimal format")
	}

	d, err := decimal.NewFromString(ether)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal format: %w", err)
	}

	wei := d.Shift(EtherDecimals)
	if !wei.IsInteger() {
		return nil, fmt.Errorf("more than %d decimal places", EtherDecimals)
	}

	out := wei.BigInt()
	if out.BitLen() > maxWeiBits {
		return nil, errors.New("amount out of range")
	}
	return out, nil
}

// IsValidAddress validates a 0x-prefixed Ethereum address.
// Mixed-case input must carry a valid EIP-55 checksum.
func IsValidAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") {
		return false
	}
	if !ethcommon.IsHexAddress(address) {
		return false
	}

	hexPart := address[2:]
	if strings.ToLower(hexPart) != hexPart && strings.ToUpper(hexPart) != hexPart {
		return ethcommon.HexToAddress(address).Hex() == address
	}
	return true
}

// NormalizeAddress returns the checksum form of a hex address
func NormalizeAddress(address string) string {
	return ethcommon.HexToAddress(address).Hex()
}

// IsValidPrivateKey checks the 0x + 64 hex characters format of a signing key
func IsValidPrivateKey(key string) bool {
	if len(key) != 2+privateKeyHexLen || !strings.HasPrefix(key, "0x") {
		return false
	}
	for _, c := range key[2:] {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

func isHexChar(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
