package model

// BalanceResponse represents response for GET /api/wallet/balance/{address}
type BalanceResponse struct {
	Success    bool   `json:"success"`
	Address    string `json:"address"`
	Balance    string `json:"balance"`    // ETH
	BalanceWei string `json:"balanceWei"` // wei, base 10
}
