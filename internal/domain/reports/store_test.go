package reports

import (
	"context"
	"strings"
	"testing"
)

func TestBuildSummaryRunsQuery(t *testing.T) {
	query, args := buildSummaryRunsQuery("t1", SummaryRunFilter{Year: 2025, Status: "completed"})
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[1] != JobTypeBonusSummary || args[2] != 2025 || args[3] != "completed" {
		t.Fatalf("unexpected args: %+v", args)
	}
	if !strings.Contains(query, "(details_json->>'year')::int = $3") || !strings.Contains(query, "status = $4") {
		t.Fatalf("unexpected query: %s", query)
	}

	_, args = buildSummaryRunsQuery("t1", SummaryRunFilter{})
	if len(args) != 2 {
		t.Fatalf("expected only tenant and job type, got %+v", args)
	}
}

func TestDecodeDetails(t *testing.T) {
	summary, errMsg := decodeDetails([]byte(`{"year":2025,"employees":4,"calculated":3,"averageFinal":61.5}`))
	if summary == nil || errMsg != "" {
		t.Fatalf("expected summary, got %v %q", summary, errMsg)
	}
	if summary.Calculated != 3 || *summary.AverageFinal != 61.5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	summary, errMsg = decodeDetails([]byte(`{"year":2025,"error":"list active employees: timeout"}`))
	if summary != nil || errMsg != "list active employees: timeout" {
		t.Fatalf("expected failure message, got %v %q", summary, errMsg)
	}

	summary, errMsg = decodeDetails([]byte(`{}`))
	if summary != nil || errMsg != "" {
		t.Fatalf("expected empty decode, got %v %q", summary, errMsg)
	}
}

type countingStore struct {
	total     int
	listCalls int
}

func (c *countingStore) ListSummaryRuns(context.Context, string, SummaryRunFilter, int, int) ([]SummaryRun, error) {
	c.listCalls++
	return []SummaryRun{{ID: "r1", Status: "completed"}}, nil
}

func (c *countingStore) CountSummaryRuns(context.Context, string, SummaryRunFilter) (int, error) {
	return c.total, nil
}

func TestSummaryHistorySkipsListWhenEmpty(t *testing.T) {
	store := &countingStore{}
	runs, total, err := NewService(store).SummaryHistory(context.Background(), "t1", SummaryRunFilter{}, 10, 0)
	if err != nil || total != 0 || len(runs) != 0 || store.listCalls != 0 {
		t.Fatalf("expected empty history without listing, got %v %d %v %d", runs, total, err, store.listCalls)
	}

	store.total = 1
	runs, total, err = NewService(store).SummaryHistory(context.Background(), "t1", SummaryRunFilter{}, 10, 0)
	if err != nil || total != 1 || len(runs) != 1 {
		t.Fatalf("expected one run, got %v %d %v", runs, total, err)
	}
}
