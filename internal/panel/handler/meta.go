package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/panel/service"
)

// MetaProvider describes what the handler needs from the meta service.
type MetaProvider interface {
	Discover(ctx context.Context) (*service.Meta, error)
}

type MetaHandler struct {
	service MetaProvider
	logger  *zap.Logger
}

func NewMetaHandler(s MetaProvider, logger *zap.Logger) *MetaHandler {
	return &MetaHandler{service: s, logger: logger.Named("meta-handler")}
}

// GetMeta lists discovered periods and tabs.
// GET /api/v1/meta
func (h *MetaHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Discover(r.Context())
	if err != nil {
		h.logger.Error("meta discovery failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	respondJSON(w, http.StatusOK, meta)
}
