package model

// SendRequest represents request for POST /api/wallet/send.
// PrivateKey is ignored when FromAddress is held by the server.
type SendRequest struct {
	FromAddress string `json:"fromAddress"`
	ToAddress   string `json:"toAddress"`
	Amount      string `json:"amount"`
	PrivateKey  string `json:"privateKey"`
}

// SendResponse represents response for POST /api/wallet/send
type SendResponse struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Amount          string `json:"amount"`
	Fee             string `json:"fee"`       // ETH, gas limit * gas price
	TotalCost       string `json:"totalCost"` // ETH, amount + fee
	Nonce           uint64 `json:"nonce"`
}
