package classify

import (
	"sort"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/sheetdata"
)

// ComplianceResult keeps both the classified rows and the by-normalized-name
// index the finance side joins against.
type ComplianceResult struct {
	Rows   []domain.ComplianceRecord
	ByName map[string]domain.ComplianceRecord
}

// ClassifyCompliance classifies every audit row for the period. Malformed
// cells degrade to zero values; rows without a name are skipped.
func ClassifyCompliance(t sheetdata.Table, policy map[string]domain.PolicyException, rs domain.Ruleset, windowOpen bool) ComplianceResult {
	res := ComplianceResult{ByName: make(map[string]domain.ComplianceRecord)}
	if t.Empty() {
		return res
	}

	iNome := t.Col(colNome...)
	iComp := t.Col(colCompetencia...)
	iStatus := t.Col(colStatus...)
	iNF := t.Col(colNF...)
	iLink := t.Col(colLink...)
	iSalario := t.Col(colSalarioMes...)
	iFlags := t.Col(colFlags...)
	iEsperado := t.Col(colEsperado...)

	for _, r := range t.Rows {
		nome := t.Cell(r, iNome)
		if nome == "" {
			continue
		}

		salarioMes := sheetdata.ParseAmount(t.Cell(r, iSalario))
		flags := splitFlags(t.Cell(r, iFlags))
		empresas, primary := declaredCompanies(t.Cell(r, iEsperado))

		key := sheetdata.NormalizeName(nome)
		rule := defaultRule(empresas, rs)
		motivo := ""
		if p, ok := policy[key]; ok {
			rule = p.Rule
			motivo = p.Motivo
		}

		hardErrors := hasHardError(flags, rs)
		missing := t.Cell(r, iNF) == "" || t.Cell(r, iLink) == ""
		level := complianceLevel(rule, hardErrors, missing, windowOpen)

		rec := domain.ComplianceRecord{
			Nome:           nome,
			Comp:           t.Cell(r, iComp),
			Status:         t.Cell(r, iStatus),
			NF:             t.Cell(r, iNF),
			Link:           t.Cell(r, iLink),
			SalarioMes:     salarioMes,
			Flags:          flags,
			Empresas:       empresas,
			PrimaryEmpresa: primary,
			PolicyRule:     rule,
			PolicyMotivo:   motivo,
			Level:          level,
			Motivo:         complianceReason(level, motivo, hardErrors),
			Risco:          riskAmount(level, rule, salarioMes),
		}

		res.Rows = append(res.Rows, rec)
		res.ByName[key] = rec
	}
	return res
}

// declaredCompanies derives the company set (non-zero expected amounts, in
// cell order, deduplicated) and the primary company (largest amount, first
// seen wins ties).
func declaredCompanies(esperadoCell string) (empresas []string, primary string) {
	entries := sheetdata.ParseAmountEntries(esperadoCell)

	seen := make(map[string]bool, len(entries))
	best := -1.0
	for _, e := range entries {
		if e.Valor != 0 && !seen[e.Empresa] {
			seen[e.Empresa] = true
			empresas = append(empresas, e.Empresa)
		}
		if e.Valor > best {
			best = e.Valor
			primary = e.Empresa
		}
	}
	return empresas, primary
}

func hasHardError(flags []string, rs domain.Ruleset) bool {
	for _, f := range flags {
		if rs.IsHardError(f) {
			return true
		}
	}
	return false
}

// complianceLevel is the rule ladder; first match wins.
func complianceLevel(rule domain.PolicyRule, hardErrors, missing, windowOpen bool) domain.ComplianceLevel {
	switch {
	case rule == domain.RuleWaived:
		return domain.ComplianceWaived
	case hardErrors:
		return domain.ComplianceCritical
	case !missing:
		return domain.ComplianceOK
	case rule == domain.RuleOptional:
		return domain.ComplianceOKOptional
	case windowOpen:
		return domain.CompliancePending
	default:
		return domain.ComplianceCritical
	}
}

// riskAmount implements the invariant: risk is the monthly salary only for
// blocked OBRIGATORIA rows, zero otherwise.
func riskAmount(level domain.ComplianceLevel, rule domain.PolicyRule, salarioMes float64) float64 {
	blocked := level == domain.CompliancePending || level == domain.ComplianceCritical
	if blocked && rule == domain.RuleMandatory {
		return salarioMes
	}
	return 0
}

// complianceReason is display text only; it never feeds classification.
func complianceReason(level domain.ComplianceLevel, policyMotivo string, hardErrors bool) string {
	switch level {
	case domain.ComplianceWaived:
		if policyMotivo != "" {
			return "Dispensado: " + policyMotivo
		}
		return "Dispensado por policy"
	case domain.ComplianceOKOptional:
		return "NF opcional"
	case domain.CompliancePending:
		return "Dentro da janela (pendente)"
	case domain.ComplianceCritical:
		if hardErrors {
			return "Erro estrutural (rateio/salário mês)"
		}
		return "Fora da janela (crítico)"
	default:
		return ""
	}
}

// SortCompliance orders rows critical-first, then by name, for display.
func SortCompliance(rows []domain.ComplianceRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if ri, rj := rows[i].Level.SortRank(), rows[j].Level.SortRank(); ri != rj {
			return ri < rj
		}
		return rows[i].Nome < rows[j].Nome
	})
}
