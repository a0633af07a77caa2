package classify

import (
	"sort"
	"strings"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/sheetdata"
)

// ClassifyPayment classifies one company's finance tab. The compliance index
// is consulted for display only; pay level depends on the company, the rule,
// the documents and the window.
func ClassifyPayment(company string, t sheetdata.Table, policy map[string]domain.PolicyException, compliance map[string]domain.ComplianceRecord, rs domain.Ruleset, windowOpen bool) []domain.PaymentRecord {
	if t.Empty() {
		return nil
	}

	iNome := t.Col(colNome...)
	iComp := t.Col(colCompetencia...)
	iValor := t.Col(colValor...)
	iNF := t.Col(colNF...)
	iLink := t.Col(colLink...)

	var out []domain.PaymentRecord
	for _, r := range t.Rows {
		nome := t.Cell(r, iNome)
		if nome == "" {
			continue
		}

		key := sheetdata.NormalizeName(nome)
		rule := defaultPayRule(company, rs)
		policyMotivo := ""
		if p, ok := policy[key]; ok {
			rule = p.Rule
			policyMotivo = p.Motivo
		}

		complianceLevel := domain.ComplianceNotFound
		if rec, ok := compliance[key]; ok {
			complianceLevel = rec.Level
		}

		nf := t.Cell(r, iNF)
		link := t.Cell(r, iLink)
		missingNF := nf == ""
		missingLink := link == ""

		out = append(out, domain.PaymentRecord{
			Empresa:         company,
			Comp:            t.Cell(r, iComp),
			Nome:            nome,
			ValorEsperado:   sheetdata.ParseAmount(t.Cell(r, iValor)),
			NF:              nf,
			Link:            link,
			PayLevel:        payLevel(company, rule, missingNF || missingLink, windowOpen, rs),
			Motivo:          payReason(company, rule, policyMotivo, missingNF, missingLink, rs),
			PolicyRule:      rule,
			PolicyMotivo:    policyMotivo,
			ComplianceLevel: complianceLevel,
		})
	}
	return out
}

// defaultPayRule applies when the person has no policy entry: the finance
// side keys the default on the sheet's company.
func defaultPayRule(company string, rs domain.Ruleset) domain.PolicyRule {
	if company == rs.NoInvoiceCompany {
		return domain.RuleOptional
	}
	return domain.RuleMandatory
}

// payLevel is the pay ladder; first match wins. The no-invoice company is a
// fixed business exception: its payments never block on documents.
func payLevel(company string, rule domain.PolicyRule, missing, windowOpen bool, rs domain.Ruleset) domain.PayLevel {
	switch {
	case company == rs.NoInvoiceCompany:
		return domain.PayOK
	case rule == domain.RuleWaived:
		return domain.PayOK
	case !missing:
		return domain.PayOK
	case windowOpen:
		return domain.PayPending
	default:
		return domain.PayCritical
	}
}

func payReason(company string, rule domain.PolicyRule, policyMotivo string, missingNF, missingLink bool, rs domain.Ruleset) string {
	missing := missingNF || missingLink

	if company == rs.NoInvoiceCompany {
		if !missing {
			return ""
		}
		switch rule {
		case domain.RuleWaived:
			if policyMotivo != "" {
				return "Dispensado: " + policyMotivo
			}
			return "Dispensado por policy"
		case domain.RuleOptional:
			return "NF opcional (" + rs.NoInvoiceCompany + ")"
		default:
			return "NF pendente (GC) — pagamento segue (" + rs.NoInvoiceCompany + ")"
		}
	}

	if rule == domain.RuleWaived {
		if policyMotivo != "" {
			return "Dispensado: " + policyMotivo
		}
		return "Dispensado por policy"
	}
	if !missing {
		return ""
	}

	var parts []string
	if missingNF {
		parts = append(parts, "sem NF")
	}
	if missingLink {
		parts = append(parts, "sem link")
	}
	return strings.Join(parts, ", ")
}

// SortPayments orders rows by company then name, for display.
func SortPayments(rows []domain.PaymentRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Empresa != rows[j].Empresa {
			return rows[i].Empresa < rows[j].Empresa
		}
		return rows[i].Nome < rows[j].Nome
	})
}
