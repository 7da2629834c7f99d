package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/eth-wallet/ethereum"
	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/model"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService returns err from every call, or canned values when err is nil
type stubService struct {
	err     error
	lastReq model.SendRequest
}

func (s *stubService) CreateWallet(ctx context.Context) (*model.WalletInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.WalletInfo{Address: "0xabc"}, nil
}

func (s *stubService) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.BalanceResponse{Success: true, Address: address, Balance: "1"}, nil
}

func (s *stubService) GetTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Transaction{}, nil
}

func (s *stubService) Send(ctx context.Context, req model.SendRequest) (*model.SendResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.SendResponse{Success: true, TransactionHash: "0x01"}, nil
}

func (s *stubService) DeleteWallet(ctx context.Context, address string) error {
	return s.err
}

func (s *stubService) Health(ctx context.Context) model.HealthResponse {
	return model.HealthResponse{Success: true, Message: "Server is running"}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &ethereum.ValidationError{Reason: ethereum.ReasonMissingField, Message: "missing required fields"}, http.StatusBadRequest, CodeValidation},
		{"key recovery", &ethereum.KeyRecoveryError{Err: errors.New("auth failed")}, http.StatusBadRequest, CodeKeyRecovery},
		{"insufficient balance", &ethereum.InsufficientBalanceError{Required: big.NewInt(2), Available: big.NewInt(1)}, http.StatusBadRequest, CodeInsufficientBalance},
		{"not found", fmt.Errorf("failed to delete wallet: %w", store.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"no endpoint", &client.NoAvailableEndpointError{Attempted: []string{"https://a.test"}}, http.StatusServiceUnavailable, CodeNoEndpoint},
		{"submission", &ethereum.SubmissionError{Category: ethereum.FailureNonce, Message: "Transaction nonce error. Please try again."}, http.StatusInternalServerError, string(ethereum.FailureNonce)},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWalletHandler(&stubService{err: tt.err}, nil)
			rec := httptest.NewRecorder()

			h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/wallet/create", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			resp := decodeError(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.err.Error(), resp.Error)
		})
	}
}

func TestSend_DecodesBody(t *testing.T) {
	svc := &stubService{}
	h := NewWalletHandler(svc, nil)
	body := `{"fromAddress":"0x1","toAddress":"0x2","amount":"0.5","privateKey":"0xkey"}`
	rec := httptest.NewRecorder()

	h.Send(rec, httptest.NewRequest(http.MethodPost, "/api/wallet/send", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SendRequest{FromAddress: "0x1", ToAddress: "0x2", Amount: "0.5", PrivateKey: "0xkey"}, svc.lastReq)
}

func TestSend_BadBody(t *testing.T) {
	h := NewWalletHandler(&stubService{}, nil)
	rec := httptest.NewRecorder()

	h.Send(rec, httptest.NewRequest(http.MethodPost, "/api/wallet/send", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeError(t, rec).Code)
}

func TestGetBalance_PathValue(t *testing.T) {
	h := NewWalletHandler(&stubService{}, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wallet/balance/{address}", h.GetBalance)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallet/balance/0xabc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.BalanceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "0xabc", resp.Address)
}

func TestDelete_ReturnsChecksumAddress(t *testing.T) {
	h := NewWalletHandler(&stubService{}, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/wallet/{address}", h.Delete)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/wallet/0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.DeleteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", resp.Address)
}

func TestHealth(t *testing.T) {
	h := NewWalletHandler(&stubService{}, nil)
	rec := httptest.NewRecorder()

	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Server is running"}`, rec.Body.String())
}
