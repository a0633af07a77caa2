package classify

import (
	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// AggregateCompliance reduces classified audit rows into per-level counts and
// risk sums. Pure fold: order-independent, and the sum over any partition of
// the rows equals the sum over the whole.
func AggregateCompliance(rows []domain.ComplianceRecord) (domain.ComplianceCounts, domain.ComplianceRisk) {
	var counts domain.ComplianceCounts
	var risk domain.ComplianceRisk

	counts.Total = len(rows)
	for _, r := range rows {
		switch r.Level {
		case domain.ComplianceOK:
			counts.OK++
		case domain.ComplianceOKOptional:
			counts.OKOptional++
		case domain.CompliancePending:
			counts.Pendente++
			risk.Pendente += r.Risco
		case domain.ComplianceCritical:
			counts.Critico++
			risk.Critico += r.Risco
		case domain.ComplianceWaived:
			counts.Dispensado++
		}
	}
	return counts, risk
}

// AggregatePayments reduces finance rows into pay-level counts and expected
// amount totals. Same fold properties as AggregateCompliance.
func AggregatePayments(rows []domain.PaymentRecord, rs domain.Ruleset) (domain.PaymentCounts, domain.PaymentTotals) {
	var counts domain.PaymentCounts
	var totals domain.PaymentTotals

	counts.Total = len(rows)
	for _, r := range rows {
		totals.TotalPagar += r.ValorEsperado
		switch r.PayLevel {
		case domain.PayOK:
			counts.OK++
			totals.TotalPagarOK += r.ValorEsperado
		case domain.PayPending:
			counts.Pendente++
			totals.TotalPagarPendente += r.ValorEsperado
		case domain.PayCritical:
			counts.Critico++
			totals.TotalPagarCritico += r.ValorEsperado
		}
		if r.Empresa == rs.NoInvoiceCompany && (r.NF == "" || r.Link == "") {
			counts.YouthSemNF++
		}
	}
	return counts, totals
}
