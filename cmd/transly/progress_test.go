package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressBar_Render(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &progressBar{start: start, now: func() time.Time { return start.Add(10 * time.Second) }}

	tests := []struct {
		name        string
		done, total int
		want        []string
	}{
		{"start", 0, 4, []string{"  0%", "0/4", strings.Repeat("░", barWidth)}},
		{"half", 2, 4, []string{" 50%", "2/4", "ETA: 10s", strings.Repeat("█", barWidth/2)}},
		{"done", 4, 4, []string{"100%", "4/4", "ETA: 0s", strings.Repeat("█", barWidth)}},
		{"empty", 0, 0, []string{"100%", "0/0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.render(tt.done, tt.total)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("render(%d, %d) = %q, missing %q", tt.done, tt.total, got, w)
				}
			}
		})
	}
}

func TestProgressBar_UpdateAndFinish(t *testing.T) {
	var buf bytes.Buffer
	b := newProgressBar(&buf)

	b.Finish()
	if buf.Len() != 0 {
		t.Errorf("Finish before Update should write nothing, got %q", buf.String())
	}

	b.Update(1, 2)
	b.Update(2, 2)
	b.Finish()

	out := buf.String()
	if strings.Count(out, "\r") != 2 {
		t.Errorf("expected two redraws, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("Finish should end the line, got %q", out)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)
	if !strings.Contains(buf.String(), "|_   _|") {
		t.Errorf("banner missing art:\n%s", buf.String())
	}
}
