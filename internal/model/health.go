package model

// HealthResponse represents response for GET /api/health
type HealthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
