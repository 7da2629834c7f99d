package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/metrics"
	"github.com/AlexZinkM/eth-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"
)

// Send outcomes
const (
	outcomeSuccess             = "success"
	outcomeValidation          = "validation_error"
	outcomeKeyRecovery         = "key_recovery_error"
	outcomeInsufficientBalance = "insufficient_balance"
	outcomeNoEndpoint          = "no_endpoint"
	outcomeError               = "error"
)

// Send validates, signs and submits a native ETH transfer.
//
// If FromAddress is held the stored key is used and PrivateKey is ignored; a held key
// that fails to decrypt aborts the send. The fee is estimated with the fixed gas limit
// of a plain transfer, so transfers to contracts that need more gas will fail on chain.
func (s *Service) Send(ctx context.Context, req model.SendRequest) (resp *model.SendResponse, err error) {
	defer func() {
		metrics.Sends.WithLabelValues(sendOutcome(err)).Inc()
	}()

	if strings.TrimSpace(req.FromAddress) == "" || strings.TrimSpace(req.ToAddress) == "" ||
		strings.TrimSpace(req.Amount) == "" || strings.TrimSpace(req.PrivateKey) == "" {
		return nil, &ValidationError{Reason: ReasonMissingField, Message: "missing required fields"}
	}

	if !common.IsValidAddress(req.FromAddress) {
		return nil, &ValidationError{Field: "fromAddress", Reason: ReasonInvalidAddress, Message: "invalid sender address"}
	}
	if !common.IsValidAddress(req.ToAddress) {
		return nil, &ValidationError{Field: "toAddress", Reason: ReasonInvalidAddress, Message: "invalid recipient address"}
	}

	amount, err := common.EtherToWei(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: ReasonInvalidAmount, Message: "invalid amount"}
	}

	signingKey, err := s.resolveKey(ctx, req)
	if err != nil {
		return nil, err
	}
	defer clear(signingKey)

	if !common.IsValidPrivateKey(string(signingKey)) {
		return nil, &ValidationError{Field: "privateKey", Reason: ReasonInvalidPrivateKey, Message: "invalid private key format"}
	}

	signer, err := newKeySigner(signingKey)
	if err != nil {
		return nil, &ValidationError{Field: "privateKey", Reason: ReasonInvalidPrivateKey, Message: "invalid private key format"}
	}

	from := ethcommon.HexToAddress(req.FromAddress)
	to := ethcommon.HexToAddress(req.ToAddress)
	if signer.Address() != from {
		return nil, &ValidationError{Field: "privateKey", Reason: ReasonKeyMismatch, Message: "private key does not match sender address"}
	}

	conn, err := s.selector.Select(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	s.logger.Info("sending transaction",
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", common.WeiToEther(amount)),
		zap.String("endpoint", client.Redact(conn.Endpoint)))

	var balance, gasPrice *big.Int
	err = s.call(ctx, "eth_getBalance", func(ctx context.Context) error {
		var err error
		balance, err = conn.BalanceAt(ctx, from, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	err = s.call(ctx, "eth_gasPrice", func(ctx context.Context) error {
		var err error
		gasPrice, err = conn.SuggestGasPrice(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(params.TxGas))
	total := new(big.Int).Add(amount, fee)
	if balance.Cmp(total) < 0 {
		return nil, &InsufficientBalanceError{Required: total, Available: balance}
	}

	hash, nonce, err := s.submit(ctx, conn, signer, to, amount, gasPrice)
	if err != nil {
		subErr := classifySubmission(err)
		s.logger.Error("failed to send transaction",
			zap.String("from", from.Hex()),
			zap.String("category", string(subErr.Category)),
			zap.Error(err))
		return nil, subErr
	}

	s.logger.Info("transaction sent",
		zap.String("hash", hash.Hex()),
		zap.String("from", from.Hex()),
		zap.Uint64("nonce", nonce))

	return &model.SendResponse{
		Success:         true,
		TransactionHash: hash.Hex(),
		From:            from.Hex(),
		To:              to.Hex(),
		Amount:          common.WeiToEther(amount),
		Fee:             common.WeiToEther(fee),
		TotalCost:       common.WeiToEther(total),
		Nonce:           nonce,
	}, nil
}

// resolveKey returns the signing key as 0x-prefixed hex. The caller clears it.
func (s *Service) resolveKey(ctx context.Context, req model.SendRequest) ([]byte, error) {
	rec, held, err := s.store.Get(ctx, req.FromAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to look up wallet: %w", err)
	}
	if !held {
		return []byte(req.PrivateKey), nil
	}

	key, err := s.cipher.Decrypt(rec.EncryptedPrivateKey)
	if err != nil {
		s.logger.Error("failed to decrypt held key", zap.String("address", rec.Address), zap.Error(err))
		return nil, &KeyRecoveryError{Address: rec.Address, Err: err}
	}
	return key, nil
}

// submit fetches nonce and chain id, signs a legacy transfer and sends it
func (s *Service) submit(ctx context.Context, conn *client.Connection, signer TxSigner, to ethcommon.Address, amount, gasPrice *big.Int) (ethcommon.Hash, uint64, error) {
	var nonce uint64
	err := s.call(ctx, "eth_getTransactionCount", func(ctx context.Context) error {
		var err error
		nonce, err = conn.PendingNonceAt(ctx, signer.Address())
		return err
	})
	if err != nil {
		return ethcommon.Hash{}, 0, fmt.Errorf("failed to get nonce: %w", err)
	}

	var chainID *big.Int
	err = s.call(ctx, "eth_chainId", func(ctx context.Context) error {
		var err error
		chainID, err = conn.ChainID(ctx)
		return err
	})
	if err != nil {
		return ethcommon.Hash{}, 0, fmt.Errorf("failed to get chain id: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    amount,
		Gas:      params.TxGas,
		GasPrice: gasPrice,
	})

	signed, err := signer.SignTx(tx, chainID)
	if err != nil {
		return ethcommon.Hash{}, 0, fmt.Errorf("failed to sign transaction: %w", err)
	}

	err = s.call(ctx, "eth_sendRawTransaction", func(ctx context.Context) error {
		return conn.SendTransaction(ctx, signed)
	})
	if err != nil {
		return ethcommon.Hash{}, 0, err
	}

	return signed.Hash(), nonce, nil
}

func sendOutcome(err error) string {
	var subErr *SubmissionError
	switch {
	case err == nil:
		return outcomeSuccess
	case IsValidationError(err):
		return outcomeValidation
	case IsKeyRecoveryError(err):
		return outcomeKeyRecovery
	case IsInsufficientBalanceError(err):
		return outcomeInsufficientBalance
	case client.IsNoAvailableEndpointError(err):
		return outcomeNoEndpoint
	case errors.As(err, &subErr):
		return string(subErr.Category)
	default:
		return outcomeError
	}
}
