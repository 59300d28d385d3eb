package handler

import (
	"net/http"

	"github.com/dtroode/countries-api/internal/api/http/response"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
)

// Health reports whether the service can reach its database.
type Health struct {
	db     model.Pinger
	logger *logger.Logger
}

func NewHealth(db model.Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database unreachable", "error", err.Error())
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable", "")
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{Status: response.StatusSuccess})
}
