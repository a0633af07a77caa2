package domain

// ComplianceCounts aggregates audit rows per level.
type ComplianceCounts struct {
	Total      int `json:"total"`
	OK         int `json:"ok"`
	OKOptional int `json:"ok_opcional"`
	Pendente   int `json:"pendente"`
	Critico    int `json:"critico"`
	Dispensado int `json:"dispensado"`
}

// ComplianceRisk sums the salary amounts at stake per blocking level.
type ComplianceRisk struct {
	Pendente float64 `json:"pendente"`
	Critico  float64 `json:"critico"`
}

// PaymentCounts aggregates finance rows per pay level.
type PaymentCounts struct {
	Total    int `json:"total"`
	OK       int `json:"ok"`
	Pendente int `json:"pendente"`
	Critico  int `json:"critico"`

	// YouthSemNF counts no-invoice-company rows still missing documents;
	// payment proceeds for them, GC chases the paperwork.
	YouthSemNF int `json:"youth_sem_nf"`
}

// PaymentTotals sums expected amounts, overall and per pay level.
type PaymentTotals struct {
	TotalPagar         float64 `json:"totalPagar"`
	TotalPagarOK       float64 `json:"totalPagarOk"`
	TotalPagarPendente float64 `json:"totalPagarPendente"`
	TotalPagarCritico  float64 `json:"totalPagarCritico"`
}

// CLTSummary is the roll-up of the salaried-payroll tab for the period.
type CLTSummary struct {
	Sheet        string  `json:"sheet"`
	Rows         int     `json:"rows"`
	TotalLiquido float64 `json:"totalLiquido"`
}
