package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

const healthTimeout = 2 * time.Second

// Health reports whether the service and its database are reachable.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database ping failed",
			"error", err.Error())
		response.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
