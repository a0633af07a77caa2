// Package classify implements the compliance/pay classification pipeline:
// policy resolution, audit-row classification, finance-row classification and
// the aggregate reductions the panel displays. Everything here is a pure
// function of already-parsed tabular data plus the closing-window flag.
package classify

import (
	"strings"

	"github.com/xela07ax/gcfin-panel/internal/domain"
	"github.com/xela07ax/gcfin-panel/internal/sheetdata"
)

// Column synonym lists, in priority order. Header spellings drift between
// periods; matching is case/accent-insensitive (sheetdata.Table.Col).
var (
	colNome        = []string{"Nome", "Colaborador"}
	colRegra       = []string{"Regra", "Rule"}
	colMotivo      = []string{"Motivo"}
	colEmpresa     = []string{"Empresa"}
	colCompetencia = []string{"Competência", "Comp"}
	colStatus      = []string{"Status"}
	colNF          = []string{"NF(planilha)", "NF (planilha)", "NF", "NFS-e"}
	colLink        = []string{"Link(planilha)", "Link (planilha)", "Link"}
	colSalarioMes  = []string{"Salário Mês", "Salário", "Salario Mensal"}
	colFlags       = []string{"Flags"}
	colEsperado    = []string{"Esperado(json)", "Esperado (json)", "Esperado"}
	colValor       = []string{"Valor Esperado", "Valor"}
)

// ResolvePolicy builds the per-person exception map from the NF_POLICY tab.
// Rule text is classified by substring, case-insensitively; rows without a
// name are skipped silently and later rows overwrite earlier ones.
func ResolvePolicy(t sheetdata.Table) map[string]domain.PolicyException {
	out := make(map[string]domain.PolicyException)
	if t.Empty() {
		return out
	}

	iNome := t.Col(colNome...)
	iRegra := t.Col(colRegra...)
	iMotivo := t.Col(colMotivo...)
	iEmp := t.Col(colEmpresa...)

	for _, r := range t.Rows {
		nome := t.Cell(r, iNome)
		if nome == "" {
			continue
		}

		out[sheetdata.NormalizeName(nome)] = domain.PolicyException{
			Rule:    classifyRuleText(t.Cell(r, iRegra)),
			Motivo:  t.Cell(r, iMotivo),
			Empresa: t.Cell(r, iEmp),
		}
	}
	return out
}

// classifyRuleText maps free-text rule cells onto the three rules.
// Unrecognized or empty text falls back to OBRIGATORIA.
func classifyRuleText(raw string) domain.PolicyRule {
	up := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(up, "DISP"):
		return domain.RuleWaived
	case strings.Contains(up, "OPC"), strings.Contains(up, "OPTIONAL"):
		return domain.RuleOptional
	default:
		return domain.RuleMandatory
	}
}

// defaultRule applies when a person has no explicit policy entry: OPCIONAL
// if their only declared company is the no-invoice company, OBRIGATORIA
// otherwise.
func defaultRule(empresas []string, rs domain.Ruleset) domain.PolicyRule {
	if len(empresas) == 1 && empresas[0] == rs.NoInvoiceCompany {
		return domain.RuleOptional
	}
	return domain.RuleMandatory
}

// splitFlags tokenizes the Flags cell. Separators vary across periods, so
// commas, semicolons, pipes and slashes all split; tokens are upper-cased.
func splitFlags(cell string) []string {
	raw := strings.ToUpper(strings.TrimSpace(cell))
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '/'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
