package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/classify"
	"github.com/xela07ax/gcfin-panel/internal/closing"
	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/infra"
	"github.com/xela07ax/gcfin-panel/internal/sheetdata"
	"github.com/xela07ax/gcfin-panel/internal/sheets"
)

// ClosingProvider is what the ops service needs from the bot client.
type ClosingProvider interface {
	Status(ctx context.Context) (*domain.ClosingStatus, error)
}

// OpsService runs the reconciliation pass: window status + spreadsheet tabs
// in, classified and aggregated records out. One pass per request; no state
// survives between calls.
type OpsService struct {
	src     sheets.Source
	bot     ClosingProvider
	rules   domain.Ruleset
	metrics *infra.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewOpsService(src sheets.Source, bot ClosingProvider, rules domain.Ruleset, metrics *infra.Metrics, logger *zap.Logger) *OpsService {
	if metrics == nil {
		metrics = infra.NewMetrics(nil)
	}
	return &OpsService{
		src:     src,
		bot:     bot,
		rules:   rules,
		metrics: metrics,
		logger:  logger.Named("ops-service"),
		now:     time.Now,
	}
}

// PolicyInfo reports which policy tab was used and how many entries it held.
type PolicyInfo struct {
	Sheet string `json:"sheet"`
	Count int    `json:"count"`
}

// AuditSection is the compliance half of the payload.
type AuditSection struct {
	Rows   []domain.ComplianceRecord `json:"rows"`
	Counts domain.ComplianceCounts   `json:"counts"`
	Risk   domain.ComplianceRisk     `json:"risk"`
}

// FinanceSection is the payment half of the payload.
type FinanceSection struct {
	Rows   []domain.PaymentRecord `json:"rows"`
	Counts domain.PaymentCounts   `json:"counts"`
	Totals domain.PaymentTotals   `json:"totals"`
}

// OpsData is the full reconciliation payload for one period and one caller.
type OpsData struct {
	OK               bool                  `json:"ok"`
	Comp             string                `json:"comp"`
	Closing          *domain.ClosingStatus `json:"closing"`
	InWindow         bool                  `json:"inWindow"`
	DaysLeft         *int                  `json:"daysLeft"`
	AllowedCompanies []string              `json:"allowedCompanies"`
	Policy           PolicyInfo            `json:"policy"`
	Audit            AuditSection          `json:"audit"`
	Finance          FinanceSection        `json:"finance"`
	CLT              domain.CLTSummary     `json:"clt"`
}

// Load produces the classified view of one period, filtered by the caller's
// role. Tabs that do not exist yet yield an empty-but-ok payload; only the
// spreadsheet backend being unreachable is an error.
func (s *OpsService) Load(ctx context.Context, comp string, role domain.Role) (*OpsData, error) {
	comp = strings.ToUpper(strings.TrimSpace(comp))

	ws := s.windowState(ctx, comp)
	allowed := s.rules.AllowedCompanies(role)

	out := &OpsData{
		OK:               true,
		Comp:             comp,
		Closing:          ws.Status,
		InWindow:         ws.Open,
		DaysLeft:         ws.DaysLeft,
		AllowedCompanies: allowed,
		Policy:           PolicyInfo{Sheet: sheets.PolicySheetName(comp)},
		Audit:            AuditSection{Rows: []domain.ComplianceRecord{}},
		Finance:          FinanceSection{Rows: []domain.PaymentRecord{}},
		CLT:              domain.CLTSummary{Sheet: sheets.CLTSheetName(comp)},
	}

	titles, err := s.src.Titles(ctx)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("sheets").Inc()
		return nil, fmt.Errorf("ops: list tabs: %w", err)
	}
	present := make(map[string]bool, len(titles))
	for _, t := range titles {
		present[t] = true
	}

	auditSheet := sheets.AuditSheetName(comp)
	policySheet := sheets.PolicySheetName(comp)
	cltSheet := sheets.CLTSheetName(comp)

	var want []string
	for _, sh := range []string{auditSheet, policySheet, cltSheet} {
		if present[sh] {
			want = append(want, sh)
		}
	}
	type finSheet struct{ company, sheet string }
	var fins []finSheet
	for _, c := range allowed {
		if sh := sheets.FinSheetName(c, comp); present[sh] {
			fins = append(fins, finSheet{company: c, sheet: sh})
			want = append(want, sh)
		}
	}

	// First day of a period: no tabs yet. Empty and ok, not an error.
	if len(want) == 0 {
		return out, nil
	}

	values, err := s.src.BatchValues(ctx, want)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("sheets").Inc()
		return nil, fmt.Errorf("ops: fetch tabs: %w", err)
	}

	policy := classify.ResolvePolicy(sheetdata.NewTable(values[policySheet]))
	out.Policy.Count = len(policy)

	audit := classify.ClassifyCompliance(sheetdata.NewTable(values[auditSheet]), policy, s.rules, ws.Open)
	out.Audit.Rows = filterComplianceByRole(audit.Rows, role, allowed)
	classify.SortCompliance(out.Audit.Rows)
	out.Audit.Counts, out.Audit.Risk = classify.AggregateCompliance(out.Audit.Rows)

	for _, f := range fins {
		rows := classify.ClassifyPayment(f.company, sheetdata.NewTable(values[f.sheet]), policy, audit.ByName, s.rules, ws.Open)
		out.Finance.Rows = append(out.Finance.Rows, rows...)
	}
	classify.SortPayments(out.Finance.Rows)
	out.Finance.Counts, out.Finance.Totals = classify.AggregatePayments(out.Finance.Rows, s.rules)

	out.CLT.Rows, out.CLT.TotalLiquido = cltSummary(sheetdata.NewTable(values[cltSheet]))

	return out, nil
}

// windowState asks the bot for the closing window. A failing or silent bot
// is not fatal: classification proceeds with the window treated as closed.
func (s *OpsService) windowState(ctx context.Context, comp string) closing.WindowState {
	st, err := s.bot.Status(ctx)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("closing").Inc()
		s.logger.Warn("closing status unavailable, treating window as closed", zap.Error(err))
		st = nil
	}
	return closing.ResolveWindow(st, comp, s.now())
}

// filterComplianceByRole keeps rows that touch at least one allowed company.
// GC sees everything.
func filterComplianceByRole(rows []domain.ComplianceRecord, role domain.Role, allowed []string) []domain.ComplianceRecord {
	if role == domain.RoleGC {
		return rows
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = true
	}

	out := make([]domain.ComplianceRecord, 0, len(rows))
	for _, r := range rows {
		for _, e := range r.Empresas {
			if allowedSet[e] {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// cltSummary rolls up the salaried-payroll tab: non-empty row count plus the
// net total, found via loose header match ("Líquido", "Total Líquido", "Net").
func cltSummary(t sheetdata.Table) (rows int, total float64) {
	if t.Empty() {
		return 0, 0
	}
	iLiquido := t.ColContains("líquido", "liquido", "net")

	for _, r := range t.Rows {
		empty := true
		for _, cell := range r {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		rows++
		if iLiquido >= 0 {
			total += sheetdata.ParseAmount(t.Cell(r, iLiquido))
		}
	}
	return rows, total
}
