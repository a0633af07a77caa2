package domain

// Ruleset carries the business constants the classifier depends on. They are
// configuration, not inlined conditionals, so the rules stay visible and
// testable in isolation.
type Ruleset struct {
	// Companies is the full company universe, in display order.
	Companies []string

	// NoInvoiceCompany never blocks payment on missing documents, and a person
	// declared only there defaults to the OPCIONAL rule.
	NoInvoiceCompany string

	// HardErrorFlags are structural failures that force CRITICO regardless of
	// the closing window or the policy rule (except DISPENSADA).
	HardErrorFlags []string
}

// DefaultRuleset mirrors the production spreadsheet layout.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Companies:        []string{"T.Youth", "T.Brands", "T.Dreams", "T.Venues", "T.Group"},
		NoInvoiceCompany: "T.Youth",
		HardErrorFlags:   []string{"SEM_RATEIO", "SEM_SALARIO_MES"},
	}
}

// IsHardError reports whether a single flag token is in the structural set.
func (rs Ruleset) IsHardError(flag string) bool {
	for _, f := range rs.HardErrorFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// AllowedCompanies resolves the role's company allow-list.
func (rs Ruleset) AllowedCompanies(role Role) []string {
	switch role {
	case RoleGC:
		return append([]string(nil), rs.Companies...)
	case RoleFinanceYouth:
		return []string{rs.NoInvoiceCompany}
	case RoleFinanceCore:
		out := make([]string, 0, len(rs.Companies))
		for _, c := range rs.Companies {
			if c != rs.NoInvoiceCompany {
				out = append(out, c)
			}
		}
		return out
	default:
		return nil
	}
}

// CanSeeCompany reports whether the role's allow-list includes the company.
func (rs Ruleset) CanSeeCompany(role Role, company string) bool {
	for _, c := range rs.AllowedCompanies(role) {
		if c == company {
			return true
		}
	}
	return false
}
