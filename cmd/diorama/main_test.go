package main

import (
	"math"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in     string
		w, h   int
		wantOK bool
	}{
		{"320x180", 320, 180, true},
		{"64X48", 64, 48, true},
		{"320", 0, 0, false},
		{"0x10", 0, 0, false},
		{"ax10", 0, 0, false},
		{"10x-2", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			w, h, err := parseSize(tc.in)
			if (err == nil) != tc.wantOK {
				t.Fatalf("parseSize(%q) err = %v", tc.in, err)
			}
			if w != tc.w || h != tc.h {
				t.Errorf("parseSize(%q) = %d, %d", tc.in, w, h)
			}
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		phase float64
		want  string
	}{
		{0, "06:00"},
		{math.Pi / 2, "12:00"},
		{math.Pi, "18:00"},
		{3 * math.Pi / 2, "00:00"},
	}
	for _, tc := range tests {
		if got := clock(tc.phase); got != tc.want {
			t.Errorf("clock(%v) = %q, want %q", tc.phase, got, tc.want)
		}
	}
}
