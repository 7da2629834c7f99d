package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Node is the part of the JSON-RPC client the wallet uses.
type Node interface {
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	Close()
}

var _ Node = (*ethclient.Client)(nil)

// Dialer opens a Node for an endpoint URL
type Dialer func(ctx context.Context, endpoint string) (Node, error)

// DialEthereum connects to endpoint with go-ethereum's ethclient
func DialEthereum(ctx context.Context, endpoint string) (Node, error) {
	c, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", Redact(endpoint), err)
	}
	return c, nil
}

// Redact strips path, query and credentials from an endpoint URL, which often carry API keys.
func Redact(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "invalid-endpoint"
	}
	return u.Scheme + "://" + u.Host
}
