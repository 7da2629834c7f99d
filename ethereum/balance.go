package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// GetBalance returns the latest balance of address
func (s *Service) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	if !common.IsValidAddress(address) {
		return nil, &ValidationError{Field: "address", Reason: ReasonInvalidAddress, Message: "invalid Ethereum address"}
	}

	conn, err := s.selector.Select(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var balance *big.Int
	err = s.call(ctx, "eth_getBalance", func(ctx context.Context) error {
		var err error
		balance, err = conn.BalanceAt(ctx, ethcommon.HexToAddress(address), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &model.BalanceResponse{
		Success:    true,
		Address:    address,
		Balance:    common.WeiToEther(balance),
		BalanceWei: balance.String(),
	}, nil
}
