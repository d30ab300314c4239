package handlers

import (
	"net/http"
	"time"

	"github.com/dom/moodbite/internal/api/response"
)

type HealthResponse struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, HealthResponse{
		Success:   true,
		Status:    "OK",
		Timestamp: time.Now().UTC(),
	})
}
