package ethereum

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/eth-wallet/internal/common"

	"go.uber.org/zap"
)

// DeleteWallet removes a held wallet. Returns store.ErrNotFound (wrapped) when the
// address is not held.
func (s *Service) DeleteWallet(ctx context.Context, address string) error {
	if !common.IsValidAddress(address) {
		return &ValidationError{Field: "address", Reason: ReasonInvalidAddress, Message: "invalid Ethereum address"}
	}

	if err := s.store.Delete(ctx, address); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	s.logger.Info("wallet deleted", zap.String("address", common.NormalizeAddress(address)))
	return nil
}
