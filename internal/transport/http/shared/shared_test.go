package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidatorYear(t *testing.T) {
	now := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		raw       string
		want      int
		wantIssue bool
	}{
		{name: "missing defaults to previous year", raw: "", want: 2025},
		{name: "explicit year", raw: "2023", want: 2023},
		{name: "not a number", raw: "last", wantIssue: true},
		{name: "out of range", raw: "0", wantIssue: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			got := v.Year("year", tc.raw, now)
			if v.HasIssues() != tc.wantIssue {
				t.Fatalf("expected issues=%v, got %+v", tc.wantIssue, v.Issues())
			}
			if !tc.wantIssue && got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestValidatorEnum(t *testing.T) {
	v := NewValidator()
	v.Enum("status", "Calculated", []string{"calculated", "pending_evaluation"}, "unknown status")
	if v.HasIssues() {
		t.Fatalf("expected case-insensitive match, got %+v", v.Issues())
	}
	v.Enum("status", "paid", []string{"calculated"}, "unknown status")
	if !v.HasIssues() {
		t.Fatal("expected issue for unknown status")
	}
}

func TestValidatorRejectWritesDetails(t *testing.T) {
	v := NewValidator()
	v.Add("year", "must be a four digit year")
	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaginationPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=2&offset=3", nil)
	p := ParsePagination(req, 50, 200)
	start, end := p.Page(4)
	if start != 3 || end != 4 {
		t.Fatalf("expected [3,4), got [%d,%d)", start, end)
	}
	start, end = Pagination{Limit: 10, Offset: 9}.Page(4)
	if start != 4 || end != 4 {
		t.Fatalf("expected empty page at end, got [%d,%d)", start, end)
	}
}
