package ethereum

import (
	"context"

	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// Health reports that the process is up. No RPC is made.
func (s *Service) Health(ctx context.Context) model.HealthResponse {
	return model.HealthResponse{Success: true, Message: "Server is running"}
}
