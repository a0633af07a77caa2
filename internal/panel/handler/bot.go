package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/infra/auth"
	"github.com/xela07ax/gcfin-panel/internal/panel/service"
)

// BotProvider describes what the handler needs from the bot service.
type BotProvider interface {
	Trigger(ctx context.Context, role domain.Role, email string, req service.BotRequest) (json.RawMessage, error)
}

type BotHandler struct {
	service BotProvider
	logger  *zap.Logger
}

func NewBotHandler(s BotProvider, logger *zap.Logger) *BotHandler {
	return &BotHandler{service: s, logger: logger.Named("bot-handler")}
}

// Trigger forwards a closing-window command to the bot. GC only.
// POST /api/v1/bot {"action": "start_closing", "competencia": "FEV-26", "days": 5}
func (h *BotHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req service.BotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}

	ctx := r.Context()
	reply, err := h.service.Trigger(ctx, auth.RoleFromContext(ctx), auth.EmailFromContext(ctx), req)
	switch {
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
		return
	case errors.Is(err, service.ErrInvalidAction):
		respondError(w, http.StatusBadRequest, "unknown action")
		return
	case err != nil:
		h.logger.Error("bot trigger failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "bot unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(reply)
}
