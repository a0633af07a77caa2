package domain

import (
	"reflect"
	"testing"
)

func TestAllowedCompanies(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleset()
	cases := []struct {
		role Role
		want []string
	}{
		{RoleGC, []string{"T.Youth", "T.Brands", "T.Dreams", "T.Venues", "T.Group"}},
		{RoleFinanceYouth, []string{"T.Youth"}},
		{RoleFinanceCore, []string{"T.Brands", "T.Dreams", "T.Venues", "T.Group"}},
		{RoleViewer, nil},
		{Role("unknown"), nil},
	}
	for _, c := range cases {
		got := rs.AllowedCompanies(c.role)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("AllowedCompanies(%q) = %v, want %v", c.role, got, c.want)
		}
	}
}

func TestCanSeeCompany(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleset()
	if !rs.CanSeeCompany(RoleGC, "T.Youth") {
		t.Fatalf("gc must see T.Youth")
	}
	if rs.CanSeeCompany(RoleFinanceCore, "T.Youth") {
		t.Fatalf("finance_core must not see T.Youth")
	}
	if rs.CanSeeCompany(RoleViewer, "T.Brands") {
		t.Fatalf("viewer must not see any company")
	}
}

func TestIsHardError(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleset()
	if !rs.IsHardError("SEM_RATEIO") || !rs.IsHardError("SEM_SALARIO_MES") {
		t.Fatalf("structural flags not recognized")
	}
	if rs.IsHardError("SEM_NF") {
		t.Fatalf("SEM_NF is not a structural flag")
	}
}

func TestSortRank(t *testing.T) {
	t.Parallel()

	order := []ComplianceLevel{
		ComplianceCritical, CompliancePending, ComplianceOK, ComplianceOKOptional, ComplianceWaived,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].SortRank() >= order[i].SortRank() {
			t.Fatalf("%s must rank before %s", order[i-1], order[i])
		}
	}
	if ComplianceNotFound.SortRank() <= ComplianceWaived.SortRank() {
		t.Fatalf("unknown levels must sort last")
	}
}
