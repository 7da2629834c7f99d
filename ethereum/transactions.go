package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// GetTransactions scans the most recent blocks for transfers from or to address.
// Newest first, at most 20 entries. A block that cannot be fetched is skipped.
func (s *Service) GetTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	if !common.IsValidAddress(address) {
		return nil, &ValidationError{Field: "address", Reason: ReasonInvalidAddress, Message: "invalid Ethereum address"}
	}

	conn, err := s.selector.Select(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var head uint64
	err = s.call(ctx, "eth_blockNumber", func(ctx context.Context) error {
		var err error
		head, err = conn.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}

	var chainID *big.Int
	err = s.call(ctx, "eth_chainId", func(ctx context.Context) error {
		var err error
		chainID, err = conn.ChainID(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	signer := types.LatestSignerForChainID(chainID)
	target := ethcommon.HexToAddress(address)
	txs := make([]model.Transaction, 0)

	for i := uint64(0); i < uint64(s.historyBlocks) && i < head; i++ {
		number := head - i

		block, err := s.fetchBlock(ctx, conn, number)
		if err != nil {
			s.logger.Warn("failed to fetch block, skipping",
				zap.Uint64("block", number),
				zap.Error(err))
			continue
		}

		for _, tx := range block.Transactions() {
			// contract creation
			if tx.To() == nil {
				continue
			}

			from, err := types.Sender(signer, tx)
			if err != nil {
				s.logger.Debug("failed to recover sender, skipping",
					zap.String("hash", tx.Hash().Hex()),
					zap.Error(err))
				continue
			}

			to := *tx.To()
			if from != target && to != target {
				continue
			}

			txs = append(txs, model.Transaction{
				Hash:        tx.Hash().Hex(),
				From:        from.Hex(),
				To:          to.Hex(),
				Value:       common.WeiToEther(tx.Value()),
				Timestamp:   time.Unix(int64(block.Time()), 0).UTC(),
				BlockNumber: number,
			})
			if len(txs) == maxHistoryResults {
				return txs, nil
			}
		}
	}

	return txs, nil
}

func (s *Service) fetchBlock(ctx context.Context, conn *client.Connection, number uint64) (*types.Block, error) {
	var block *types.Block
	err := s.call(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
		var err error
		block, err = conn.BlockByNumber(ctx, new(big.Int).SetUint64(number))
		return err
	})
	return block, err
}
