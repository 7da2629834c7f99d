package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/eth-wallet/ethereum"
	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/model"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Error codes
const (
	CodeValidation          = "validation_error"
	CodeKeyRecovery         = "key_recovery_error"
	CodeInsufficientBalance = "insufficient_balance"
	CodeNotFound            = "not_found"
	CodeNoEndpoint          = "no_available_endpoint"
	CodeInternal            = "internal_error"
)

// WalletService is what the HTTP layer needs from the wallet domain
type WalletService interface {
	CreateWallet(ctx context.Context) (*model.WalletInfo, error)
	GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error)
	GetTransactions(ctx context.Context, address string) ([]model.Transaction, error)
	Send(ctx context.Context, req model.SendRequest) (*model.SendResponse, error)
	DeleteWallet(ctx context.Context, address string) error
	Health(ctx context.Context) model.HealthResponse
}

// WalletHandler serves the wallet API
type WalletHandler struct {
	svc    WalletService
	logger *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc WalletService, logger *zap.Logger) *WalletHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletHandler{svc: svc, logger: logger.Named("handler")}
}

// Create handles POST /api/wallet/create
// @Summary      Create wallet
// @Description  Generates a new key pair. The private key is stored encrypted and never returned.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.CreateWallet(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Wallet:  *info,
	})
}

// GetBalance handles GET /api/wallet/balance/{address}
// @Summary      Get balance
// @Description  Gets the latest ETH balance of an address
// @Tags         wallet
// @Produce      json
// @Param        address  path      string  true  "0x-prefixed address"
// @Success      200      {object}  model.BalanceResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /api/wallet/balance/{address} [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.GetBalance(r.Context(), r.PathValue("address"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// GetTransactions handles GET /api/wallet/transactions/{address}
// @Summary      Get recent transactions
// @Description  Scans the most recent blocks for transfers from or to an address (at most 20)
// @Tags         wallet
// @Produce      json
// @Param        address  path      string  true  "0x-prefixed address"
// @Success      200      {object}  model.TransactionsResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /api/wallet/transactions/{address} [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.GetTransactions(r.Context(), r.PathValue("address"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.TransactionsResponse{
		Success:      true,
		Transactions: txs,
	})
}

// Send handles POST /api/wallet/send
// @Summary      Send ETH
// @Description  Signs and submits a native ETH transfer. A held wallet signs with its stored key.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Transfer data"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /api/wallet/send [post]
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error: "invalid request body",
			Code:  CodeValidation,
		})
		return
	}

	resp, err := h.svc.Send(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/wallet/{address}
// @Summary      Delete wallet
// @Description  Removes a held wallet and its encrypted key
// @Tags         wallet
// @Produce      json
// @Param        address  path      string  true  "0x-prefixed address"
// @Success      200      {object}  model.DeleteResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/wallet/{address} [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if err := h.svc.DeleteWallet(r.Context(), address); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{
		Success: true,
		Address: common.NormalizeAddress(address),
	})
}

// Health handles GET /api/health
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Router       /api/health [get]
func (h *WalletHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}

// writeError maps domain errors to status codes
func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	var subErr *ethereum.SubmissionError

	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case ethereum.IsValidationError(err):
		status, code = http.StatusBadRequest, CodeValidation
	case ethereum.IsKeyRecoveryError(err):
		status, code = http.StatusBadRequest, CodeKeyRecovery
	case ethereum.IsInsufficientBalanceError(err):
		status, code = http.StatusBadRequest, CodeInsufficientBalance
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case client.IsNoAvailableEndpointError(err):
		status, code = http.StatusServiceUnavailable, CodeNoEndpoint
	case errors.As(err, &subErr):
		code = string(subErr.Category)
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", code), zap.Error(err))
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
