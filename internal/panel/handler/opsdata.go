package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/infra/auth"
	"github.com/xela07ax/gcfin-panel/internal/panel/service"
)

// OpsDataProvider describes what the handler needs from the ops service.
type OpsDataProvider interface {
	Load(ctx context.Context, comp string, role domain.Role) (*service.OpsData, error)
	Summary(ctx context.Context, comp, company string, role domain.Role) (*service.AuditSummary, error)
}

type OpsHandler struct {
	service     OpsDataProvider
	defaultComp string
	logger      *zap.Logger
}

func NewOpsHandler(s OpsDataProvider, defaultComp string, logger *zap.Logger) *OpsHandler {
	return &OpsHandler{service: s, defaultComp: defaultComp, logger: logger.Named("ops-handler")}
}

// GetOpsData serves the reconciliation payload.
// GET /api/v1/ops-data?comp=FEV-26
func (h *OpsHandler) GetOpsData(w http.ResponseWriter, r *http.Request) {
	comp := h.comp(r)
	if comp == "" {
		respondError(w, http.StatusBadRequest, "missing comp")
		return
	}

	data, err := h.service.Load(r.Context(), comp, auth.RoleFromContext(r.Context()))
	if err != nil {
		h.logger.Error("ops data load failed", zap.String("comp", comp), zap.Error(err))
		respondError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// GetAuditSummary serves the compact health view.
// GET /api/v1/audit-summary?comp=FEV-26&company=T.Youth
func (h *OpsHandler) GetAuditSummary(w http.ResponseWriter, r *http.Request) {
	comp := h.comp(r)
	if comp == "" {
		respondError(w, http.StatusBadRequest, "missing comp")
		return
	}
	company := strings.TrimSpace(r.URL.Query().Get("company"))

	summary, err := h.service.Summary(r.Context(), comp, company, auth.RoleFromContext(r.Context()))
	switch {
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
		return
	case err != nil:
		h.logger.Error("audit summary failed", zap.String("comp", comp), zap.Error(err))
		respondError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *OpsHandler) comp(r *http.Request) string {
	comp := strings.TrimSpace(r.URL.Query().Get("comp"))
	if comp == "" {
		comp = h.defaultComp
	}
	return strings.ToUpper(comp)
}
