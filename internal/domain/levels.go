package domain

// PolicyRule defines whether a contractor must submit an invoice for the period.
type PolicyRule string

const (
	// RuleMandatory — invoice required; missing documents carry risk.
	RuleMandatory PolicyRule = "OBRIGATORIA"
	// RuleOptional — invoice welcome but never blocking.
	RuleOptional PolicyRule = "OPCIONAL"
	// RuleWaived — person explicitly excused for the period.
	RuleWaived PolicyRule = "DISPENSADA"
)

// ComplianceLevel is the document-completeness status of a contractor,
// independent of whether payment can proceed.
type ComplianceLevel string

const (
	ComplianceOK         ComplianceLevel = "OK"
	ComplianceOKOptional ComplianceLevel = "OK_OPCIONAL"
	CompliancePending    ComplianceLevel = "PENDENTE"
	ComplianceCritical   ComplianceLevel = "CRITICO"
	ComplianceWaived     ComplianceLevel = "DISPENSADO"

	// ComplianceNotFound is used only on payment rows whose person has no
	// matching audit record. It never appears on a ComplianceRecord.
	ComplianceNotFound ComplianceLevel = "NAO_ENCONTRADO"
)

// SortRank orders levels for display: critical first, waived last.
func (l ComplianceLevel) SortRank() int {
	switch l {
	case ComplianceCritical:
		return 0
	case CompliancePending:
		return 1
	case ComplianceOK:
		return 2
	case ComplianceOKOptional:
		return 3
	case ComplianceWaived:
		return 4
	default:
		return 5
	}
}

// PayLevel states whether a payment can proceed for a company/period.
type PayLevel string

const (
	PayOK       PayLevel = "OK"
	PayPending  PayLevel = "PENDENTE"
	PayCritical PayLevel = "CRITICO"
)
