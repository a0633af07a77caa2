package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/panel/service"
)

type stubOpsProvider struct {
	gotComp    string
	gotCompany string
	data       *service.OpsData
	summary    *service.AuditSummary
	err        error
}

func (s *stubOpsProvider) Load(ctx context.Context, comp string, role domain.Role) (*service.OpsData, error) {
	s.gotComp = comp
	return s.data, s.err
}

func (s *stubOpsProvider) Summary(ctx context.Context, comp, company string, role domain.Role) (*service.AuditSummary, error) {
	s.gotComp = comp
	s.gotCompany = company
	return s.summary, s.err
}

func TestGetOpsData(t *testing.T) {
	t.Parallel()

	stub := &stubOpsProvider{data: &service.OpsData{OK: true, Comp: "FEV-26"}}
	h := NewOpsHandler(stub, "FEV-26", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetOpsData(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ops-data?comp=fev-26", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotComp != "FEV-26" {
		t.Fatalf("comp = %q, want upper-cased FEV-26", stub.gotComp)
	}

	var got service.OpsData
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("undecodable body: %v", err)
	}
	if !got.OK || got.Comp != "FEV-26" {
		t.Fatalf("body = %+v", got)
	}
}

func TestGetOpsDataDefaultComp(t *testing.T) {
	t.Parallel()

	stub := &stubOpsProvider{data: &service.OpsData{OK: true}}
	h := NewOpsHandler(stub, "JAN-26", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetOpsData(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ops-data", nil))

	if stub.gotComp != "JAN-26" {
		t.Fatalf("comp = %q, want configured default", stub.gotComp)
	}
}

func TestGetOpsDataMissingComp(t *testing.T) {
	t.Parallel()

	h := NewOpsHandler(&stubOpsProvider{}, "", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetOpsData(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ops-data", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetOpsDataUpstreamFailure(t *testing.T) {
	t.Parallel()

	stub := &stubOpsProvider{err: errors.New("sheets gone")}
	h := NewOpsHandler(stub, "FEV-26", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetOpsData(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ops-data", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var env struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("undecodable body: %v", err)
	}
	if env.OK || env.Error == "" {
		t.Fatalf("error envelope = %+v", env)
	}
}

func TestGetAuditSummaryForbidden(t *testing.T) {
	t.Parallel()

	stub := &stubOpsProvider{err: service.ErrForbidden}
	h := NewOpsHandler(stub, "FEV-26", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetAuditSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit-summary?company=T.Youth", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if stub.gotCompany != "T.Youth" {
		t.Fatalf("company = %q", stub.gotCompany)
	}
}

func TestGetAuditSummaryOK(t *testing.T) {
	t.Parallel()

	stub := &stubOpsProvider{summary: &service.AuditSummary{OK: true, Semaforo: "green"}}
	h := NewOpsHandler(stub, "FEV-26", zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetAuditSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit-summary?comp=FEV-26", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
