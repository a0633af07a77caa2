package sheets

import "testing"

func TestCompanyKey(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"T.Youth", "TYouth"},
		{"T.Brands", "TBrands"},
		{"NoDots", "NoDots"},
	}
	for _, c := range cases {
		if got := CompanyKey(c.in); got != c.want {
			t.Fatalf("CompanyKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSheetNames(t *testing.T) {
	t.Parallel()

	if got := AuditSheetName("FEV-26"); got != "AUDITORIA_FEV-26" {
		t.Fatalf("AuditSheetName = %q", got)
	}
	if got := PolicySheetName("FEV-26"); got != "NF_POLICY_FEV-26" {
		t.Fatalf("PolicySheetName = %q", got)
	}
	if got := CLTSheetName("FEV-26"); got != "FOLHA_CLT_FEV-26" {
		t.Fatalf("CLTSheetName = %q", got)
	}
	if got := FinSheetName("T.Youth", "FEV-26"); got != "FIN_TYouth_FEV-26" {
		t.Fatalf("FinSheetName = %q", got)
	}
}

func TestIsUpdatesSheet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"UPDATES - Jan-26", true},
		{"Atualizações FEV-26", true},
		{"  updates  ", true},
		{"AUDITORIA_FEV-26", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsUpdatesSheet(c.in); got != c.want {
			t.Fatalf("IsUpdatesSheet(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
