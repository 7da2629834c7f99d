// Package clienttest provides in-memory client.Node fakes for tests.
package clienttest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/AlexZinkM/eth-wallet/internal/client"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrUnreachable is the dial/probe error of a dead fake endpoint
var ErrUnreachable = errors.New("connection refused")

// Node is a scripted client.Node
type Node struct {
	mu sync.Mutex

	Head        uint64
	Chain       *big.Int
	Balances    map[common.Address]*big.Int
	Blocks      map[uint64]*types.Block
	BlockErrs   map[uint64]error
	GasPrice    *big.Int
	Nonce       uint64
	ProbeErr    error
	BalanceErr  error
	GasPriceErr error
	SendErr     error

	Sent        []*types.Transaction
	ProbeCalls  int
	BlockCalls  []uint64
	CloseCalled int
}

// NewNode returns a live node on chain 1 with a 1 gwei gas price
func NewNode() *Node {
	return &Node{
		Head:      100,
		Chain:     big.NewInt(1),
		Balances:  make(map[common.Address]*big.Int),
		Blocks:    make(map[uint64]*types.Block),
		BlockErrs: make(map[uint64]error),
		GasPrice:  big.NewInt(1_000_000_000),
	}
}

var _ client.Node = (*Node)(nil)

func (n *Node) BlockNumber(ctx context.Context) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ProbeCalls++
	if n.ProbeErr != nil {
		return 0, n.ProbeErr
	}
	return n.Head, nil
}

func (n *Node) ChainID(ctx context.Context) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return new(big.Int).Set(n.Chain), nil
}

func (n *Node) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.BalanceErr != nil {
		return nil, n.BalanceErr
	}
	if b, ok := n.Balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (n *Node) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	num := n.Head
	if number != nil {
		num = number.Uint64()
	}
	n.BlockCalls = append(n.BlockCalls, num)
	if err := n.BlockErrs[num]; err != nil {
		return nil, err
	}
	if b, ok := n.Blocks[num]; ok {
		return b, nil
	}
	return types.NewBlockWithHeader(&types.Header{Number: new(big.Int).SetUint64(num)}), nil
}

func (n *Node) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.GasPriceErr != nil {
		return nil, n.GasPriceErr
	}
	return new(big.Int).Set(n.GasPrice), nil
}

func (n *Node) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Nonce, nil
}

func (n *Node) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.SendErr != nil {
		return n.SendErr
	}
	n.Sent = append(n.Sent, tx)
	return nil
}

func (n *Node) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.CloseCalled++
}

// AddBlock stores a block at number holding txs
func (n *Node) AddBlock(number, timestamp uint64, txs ...*types.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	header := &types.Header{Number: new(big.Int).SetUint64(number), Time: timestamp}
	n.Blocks[number] = types.NewBlockWithHeader(header).WithBody(types.Body{Transactions: txs})
}

// Network maps endpoint URLs to fake nodes. Unknown endpoints fail to dial.
type Network struct {
	mu    sync.Mutex
	nodes map[string]*Node
	Dials []string
}

// NewNetwork creates an empty Network
func NewNetwork() *Network {
	return &Network{nodes: make(map[string]*Node)}
}

// Live registers a live node at endpoint
func (w *Network) Live(endpoint string, n *Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nodes[endpoint] = n
}

// Dead registers an endpoint whose probe fails
func (w *Network) Dead(endpoint string) *Node {
	n := NewNode()
	n.ProbeErr = ErrUnreachable
	w.Live(endpoint, n)
	return n
}

// Dial implements client.Dialer
func (w *Network) Dial(ctx context.Context, endpoint string) (client.Node, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Dials = append(w.Dials, endpoint)
	n, ok := w.nodes[endpoint]
	if !ok {
		return nil, fmt.Errorf("dial %s: %w", endpoint, ErrUnreachable)
	}
	return n, nil
}

// DialCount returns how many times endpoint was dialed
func (w *Network) DialCount(endpoint string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	count := 0
	for _, d := range w.Dials {
		if d == endpoint {
			count++
		}
	}
	return count
}
