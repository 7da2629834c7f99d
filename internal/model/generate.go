package model

// GenerateResponse represents response for POST /api/wallet/create
type GenerateResponse struct {
	Success bool       `json:"success"`
	Wallet  WalletInfo `json:"wallet"`
}

// DeleteResponse represents response for DELETE /api/wallet/{address}
type DeleteResponse struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
}
