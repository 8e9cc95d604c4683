package telemetry

import (
	"bytes"
	"strings"
	"testing"
)

func TestSeries(t *testing.T) {
	var s Series
	if _, ok := s.Latest(); ok {
		t.Error("empty series reports a latest day")
	}

	s.Append(DayStats{Day: 1, ErbastPopulation: 10})
	s.Append(DayStats{Day: 2, ErbastPopulation: 12})

	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
	latest, ok := s.Latest()
	if !ok || latest.Day != 2 {
		t.Errorf("latest = %+v, want day 2", latest)
	}

	all := s.All()
	all[0].Day = 99
	if first, _ := s.Latest(); first.Day != 2 || s.All()[0].Day != 1 {
		t.Error("All must return a copy, not the backing slice")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"several", []float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.xs); got != tt.want {
				t.Errorf("Mean(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}
}

func TestVegetobHistogram(t *testing.T) {
	values := []int{0, 0, 10, 50, 99, 100}
	got := VegetobHistogram(values, 10, 100)

	if len(got) != 10 {
		t.Fatalf("bins = %d, want 10", len(got))
	}
	total := 0
	for _, c := range got {
		total += c
	}
	if total != len(values) {
		t.Errorf("histogram counts sum to %d, want %d", total, len(values))
	}
	if got[0] != 3 {
		t.Errorf("first bin = %d, want 3 (two zeros and a ten)", got[0])
	}
	if got[9] != 2 {
		t.Errorf("last bin = %d, want 2 (99 and the maximum)", got[9])
	}
}

func TestVegetobHistogramEmpty(t *testing.T) {
	got := VegetobHistogram(nil, 5, 100)
	if len(got) != 5 {
		t.Fatalf("bins = %d, want 5", len(got))
	}
	for i, c := range got {
		if c != 0 {
			t.Errorf("bin %d = %d, want 0", i, c)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	days := []DayStats{
		{Day: 1, ErbastPopulation: 100, CarvizPopulation: 20, VegetobMean: 42.5},
		{Day: 2, ErbastPopulation: 90, CarvizPopulation: 22, VegetobMean: 43.75},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, days); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want header plus two days", len(lines))
	}
	if !strings.Contains(lines[0], "erbast_population") {
		t.Errorf("header %q missing erbast_population", lines[0])
	}
	if strings.Contains(lines[0], "vegetob_histogram") {
		t.Errorf("header %q should not export the histogram", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,") || !strings.HasPrefix(lines[2], "2,") {
		t.Errorf("rows out of order: %q, %q", lines[1], lines[2])
	}
}
