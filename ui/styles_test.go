package ui

import (
	"strings"
	"testing"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name  string
		saved int64
		want  string
	}{
		{"saved", 2048, SuccessStyle.Render("line")},
		{"nothing saved", 0, SuccessStyle.Render("line")},
		{"files grew", -10, WarningStyle.Render("line")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outcome(tt.saved, "line")
			if got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(got, "line") {
				t.Errorf("Outcome() dropped the text: %q", got)
			}
		})
	}
}
