package sheets

import "strings"

// The workbook follows a fixed naming scheme per accounting period (COMP):
// AUDITORIA_<COMP>, NF_POLICY_<COMP>, FOLHA_CLT_<COMP> and one
// FIN_<CompanyKey>_<COMP> tab per company.

// CompanyKey strips dots from a display name: "T.Youth" -> "TYouth".
func CompanyKey(company string) string {
	return strings.ReplaceAll(company, ".", "")
}

func AuditSheetName(comp string) string  { return "AUDITORIA_" + comp }
func PolicySheetName(comp string) string { return "NF_POLICY_" + comp }
func CLTSheetName(comp string) string    { return "FOLHA_CLT_" + comp }

func FinSheetName(company, comp string) string {
	return "FIN_" + CompanyKey(company) + "_" + comp
}

// IsUpdatesSheet matches the loosely named announcement tabs
// ("UPDATES - Jan-26", "Atualizações FEV-26", ...).
func IsUpdatesSheet(title string) bool {
	up := strings.ToUpper(strings.TrimSpace(title))
	return strings.Contains(up, "UPDATE") || strings.Contains(up, "ATUALIZA")
}
