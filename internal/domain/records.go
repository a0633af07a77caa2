package domain

// PolicyException is a per-person override of the default invoice rule,
// loaded from the NF_POLICY tab. At most one survives per normalized name.
type PolicyException struct {
	Rule    PolicyRule `json:"rule"`
	Motivo  string     `json:"motivo"`
	Empresa string     `json:"empresa,omitempty"`
}

// ComplianceRecord is one classified audit row (one person per period).
type ComplianceRecord struct {
	Nome           string          `json:"nome"`
	Comp           string          `json:"comp"`
	Status         string          `json:"status"`
	NF             string          `json:"nf"`
	Link           string          `json:"link"`
	SalarioMes     float64         `json:"salarioMes"`
	Flags          []string        `json:"flags"`
	Empresas       []string        `json:"empresas"`
	PrimaryEmpresa string          `json:"primaryEmpresa"`
	PolicyRule     PolicyRule      `json:"policyRule"`
	PolicyMotivo   string          `json:"policyMotivo"`
	Level          ComplianceLevel `json:"complianceLevel"`
	Motivo         string          `json:"motivo"`

	// Risco is non-zero only when Level is PENDENTE/CRITICO and the rule is
	// OBRIGATORIA; it carries the monthly salary at stake.
	Risco float64 `json:"risco"`
}

// PaymentRecord is one classified finance row (person per company per period).
type PaymentRecord struct {
	Empresa       string     `json:"empresa"`
	Comp          string     `json:"comp"`
	Nome          string     `json:"nome"`
	ValorEsperado float64    `json:"valorEsperado"`
	NF            string     `json:"nf"`
	Link          string     `json:"link"`
	PayLevel      PayLevel   `json:"payLevel"`
	Motivo        string     `json:"motivo"`
	PolicyRule    PolicyRule `json:"policyRule"`
	PolicyMotivo  string     `json:"policyMotivo"`

	// ComplianceLevel mirrors the person's audit classification for display;
	// it does not influence PayLevel. NAO_ENCONTRADO when no audit row matched.
	ComplianceLevel ComplianceLevel `json:"complianceLevel"`
}
