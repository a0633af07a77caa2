package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xela07ax/gcfin-panel/internal/classify"
	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/sheetdata"
	"github.com/xela07ax/gcfin-panel/internal/sheets"
)

const (
	topCritLimit   = 12
	breakdownLimit = 10
)

// SummaryTotals buckets audit rows into the traffic-light categories.
type SummaryTotals struct {
	Total int `json:"total"`
	OK    int `json:"ok"`
	Warn  int `json:"warn"`
	Crit  int `json:"crit"`
}

// FlagCount is one defect token with its occurrence count.
type FlagCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// CritEntry names one critically classified person and why.
type CritEntry struct {
	Nome    string `json:"nome"`
	Empresa string `json:"empresa"`
	Motivo  string `json:"motivo"`
}

// AuditSummary is the compact health view of one period's audit tab.
type AuditSummary struct {
	OK        bool          `json:"ok"`
	Comp      string        `json:"comp"`
	Company   string        `json:"company"`
	Totals    SummaryTotals `json:"totals"`
	Semaforo  string        `json:"semaforo"`
	Breakdown []FlagCount   `json:"breakdown"`
	TopCrit   []CritEntry   `json:"topCrit"`
	Hint      string        `json:"hint,omitempty"`
}

// Summary condenses the classified audit rows into totals, a flag breakdown
// and the worst offenders. It reuses the same classification pipeline as
// Load, so the two views can never disagree on a person's level.
func (s *OpsService) Summary(ctx context.Context, comp, company string, role domain.Role) (*AuditSummary, error) {
	comp = strings.ToUpper(strings.TrimSpace(comp))
	company = strings.TrimSpace(company)

	allowed := s.rules.AllowedCompanies(role)
	if len(allowed) == 0 {
		return nil, ErrForbidden
	}
	if company != "" && role != domain.RoleGC && !s.rules.CanSeeCompany(role, company) {
		return nil, ErrForbidden
	}

	out := &AuditSummary{
		OK:        true,
		Comp:      comp,
		Company:   company,
		Semaforo:  "green",
		Breakdown: []FlagCount{},
		TopCrit:   []CritEntry{},
	}

	titles, err := s.src.Titles(ctx)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("sheets").Inc()
		return nil, fmt.Errorf("ops: list tabs: %w", err)
	}
	auditSheet := sheets.AuditSheetName(comp)
	policySheet := sheets.PolicySheetName(comp)

	var want []string
	for _, t := range titles {
		if t == auditSheet || t == policySheet {
			want = append(want, t)
		}
	}
	if len(want) == 0 {
		out.Hint = "AUDITORIA vazia"
		return out, nil
	}

	values, err := s.src.BatchValues(ctx, want)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("sheets").Inc()
		return nil, fmt.Errorf("ops: fetch tabs: %w", err)
	}

	ws := s.windowState(ctx, comp)
	policy := classify.ResolvePolicy(sheetdata.NewTable(values[policySheet]))
	audit := classify.ClassifyCompliance(sheetdata.NewTable(values[auditSheet]), policy, s.rules, ws.Open)

	rows := audit.Rows
	if company != "" {
		rows = filterComplianceByCompany(rows, company)
	}

	breakdown := make(map[string]int)
	for _, r := range rows {
		out.Totals.Total++
		switch {
		case r.Level == domain.ComplianceCritical:
			out.Totals.Crit++
		case r.Level == domain.CompliancePending || len(r.Flags) > 0:
			out.Totals.Warn++
		default:
			out.Totals.OK++
		}

		for _, f := range r.Flags {
			breakdown[f]++
		}
		if r.NF == "" {
			breakdown["SEM_NF"]++
		}
		if r.Link == "" {
			breakdown["SEM_LINK"]++
		}

		if r.Level == domain.ComplianceCritical && len(out.TopCrit) < topCritLimit {
			out.TopCrit = append(out.TopCrit, CritEntry{
				Nome:    r.Nome,
				Empresa: r.PrimaryEmpresa,
				Motivo:  critReason(r),
			})
		}
	}

	switch {
	case out.Totals.Crit > 0:
		out.Semaforo = "red"
	case out.Totals.Warn > 0:
		out.Semaforo = "yellow"
	}

	out.Breakdown = topFlags(breakdown, breakdownLimit)
	return out, nil
}

func filterComplianceByCompany(rows []domain.ComplianceRecord, company string) []domain.ComplianceRecord {
	out := make([]domain.ComplianceRecord, 0, len(rows))
	for _, r := range rows {
		for _, e := range r.Empresas {
			if e == company {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func critReason(r domain.ComplianceRecord) string {
	var reasons []string
	if r.NF == "" {
		reasons = append(reasons, "sem NF")
	}
	if r.Link == "" {
		reasons = append(reasons, "sem link")
	}
	if len(r.Flags) > 0 {
		reasons = append(reasons, strings.Join(r.Flags, ", "))
	}
	if len(reasons) == 0 {
		return r.Motivo
	}
	return strings.Join(reasons, " • ")
}

// topFlags sorts the breakdown by count descending (name ascending on ties,
// so output is deterministic) and keeps the first limit entries.
func topFlags(counts map[string]int, limit int) []FlagCount {
	out := make([]FlagCount, 0, len(counts))
	for f, c := range counts {
		out = append(out, FlagCount{Flag: f, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Flag < out[j].Flag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
