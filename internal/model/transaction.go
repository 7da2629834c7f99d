package model

import "time"

// Transaction represents a transfer found in a recent block
type Transaction struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Value       string    `json:"value"` // ETH
	Timestamp   time.Time `json:"timestamp"`
	BlockNumber uint64    `json:"blockNumber"`
}

// TransactionsResponse represents response for GET /api/wallet/transactions/{address}
type TransactionsResponse struct {
	Success      bool          `json:"success"`
	Transactions []Transaction `json:"transactions"`
}
