package tui

import (
	"strings"
	"testing"
)

func TestHeaderModel_View(t *testing.T) {
	h := NewHeaderModel("v1.2.3", []string{"bmi2", "adx"})
	h.SetWidth(120)
	h.SetProgress(1, 2)

	view := h.View()
	for _, want := range []string{"bigntt bench v1.2.3", "Elapsed", "1/2 (50%)", "cpu: bmi2 adx"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q: %s", want, view)
		}
	}
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	h := NewHeaderModel("dev", nil)
	h.SetWidth(120)
	view := h.View()
	if strings.Contains(view, "dev") {
		t.Errorf("dev version should not be shown: %s", view)
	}
	if !strings.Contains(view, "cpu: none") {
		t.Errorf("expected no-feature marker: %s", view)
	}
}

func TestHeaderModel_DoneAndReset(t *testing.T) {
	h := NewHeaderModel("", nil)
	h.SetDone()
	if h.endTime.IsZero() {
		t.Fatal("expected end time after SetDone")
	}
	h.Reset()
	if !h.endTime.IsZero() {
		t.Error("expected end time cleared after Reset")
	}
}

func TestFooterModel_Status(t *testing.T) {
	tests := []struct {
		name                string
		paused, done, isErr bool
		want                string
	}{
		{"running", false, false, false, "RUNNING"},
		{"paused", true, false, false, "PAUSED"},
		{"done", true, true, false, "DONE"},
		{"error wins", true, true, true, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooterModel()
			f.SetWidth(100)
			f.SetPaused(tt.paused)
			f.SetDone(tt.done)
			f.SetError(tt.isErr)
			if got := f.Status(); got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
			if !strings.Contains(f.View(), tt.want) {
				t.Errorf("view missing %s", tt.want)
			}
		})
	}
}
