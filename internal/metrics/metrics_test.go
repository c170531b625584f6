package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBulkActionsCounter(t *testing.T) {
	c := BulkActions.WithLabelValues("confirm")
	before := testutil.ToFloat64(c)

	c.Add(4)

	if got := testutil.ToFloat64(c); got != before+4 {
		t.Errorf("bulk_actions_total{action=\"confirm\"} = %v, want %v", got, before+4)
	}
}

func TestExportsGeneratedCounterPerFormat(t *testing.T) {
	for _, format := range []string{"pdf", "csv", "zip", "xlsx", "json"} {
		c := ExportsGenerated.WithLabelValues(format)
		before := testutil.ToFloat64(c)

		c.Inc()

		if got := testutil.ToFloat64(c); got != before+1 {
			t.Errorf("exports_generated_total{format=%q} = %v, want %v", format, got, before+1)
		}
	}
}
