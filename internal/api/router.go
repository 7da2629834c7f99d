package api

import (
	"net/http"

	_ "github.com/AlexZinkM/eth-wallet/docs"
	"github.com/AlexZinkM/eth-wallet/internal/handler"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/health", walletHandler.Health)

	// Wallet endpoints
	mux.HandleFunc("POST /api/wallet/create", walletHandler.Create)
	mux.HandleFunc("GET /api/wallet/balance/{address}", walletHandler.GetBalance)
	mux.HandleFunc("GET /api/wallet/transactions/{address}", walletHandler.GetTransactions)
	mux.HandleFunc("POST /api/wallet/send", walletHandler.Send)
	mux.HandleFunc("DELETE /api/wallet/{address}", walletHandler.Delete)

	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(mux)
}
