package minutes

import "testing"

func TestFiltersQuerySkipsEmptyValues(t *testing.T) {
	q := Filters{}.Query()
	if len(q) != 0 {
		t.Fatalf("empty filters must produce no parameters, got %v", q)
	}

	q = Filters{CNPJ: "12345678000199", Status: StatusPending, Page: 2, Limit: 20}.Query()
	if got := q.Get("cnpj"); got != "12345678000199" {
		t.Fatalf("cnpj = %q", got)
	}
	if got := q.Get("status"); got != "pending" {
		t.Fatalf("status = %q", got)
	}
	if got := q.Get("page"); got != "2" {
		t.Fatalf("page = %q", got)
	}
	if got := q.Get("limit"); got != "20" {
		t.Fatalf("limit = %q", got)
	}
	if q.Has("dateFrom") || q.Has("dateTo") || q.Has("keywords") {
		t.Fatalf("unset filters must be skipped, got %v", q)
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusUnderReview, StatusAuthenticated, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
		if StatusLabels[s] == "" {
			t.Errorf("%q is missing a label", s)
		}
	}
	if Status("archived").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}
