package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	PlanCacheLookups.WithLabelValues("hit").Inc()
	TransformSize.Observe(8)

	var buf bytes.Buffer
	if err := WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, name := range []string{"bigntt_plan_cache_lookups_total", "bigntt_transform_log_size"} {
		if !strings.Contains(out, name) {
			t.Errorf("exposition is missing %s", name)
		}
	}
}
