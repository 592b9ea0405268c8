package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Annual Survey 2024":   "annual-survey-2024",
		"  Khảo sát đầu năm  ": "khao-sat-dau-nam",
		"Hello,   World!!":     "hello-world",
		"--already-slugged--":  "already-slugged",
		"Crème brûlée & café":  "creme-brulee-cafe",
		"":                     "",
		"!!!":                  "",
		"UPPER lower 123":      "upper-lower-123",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugCandidate(t *testing.T) {
	if got := SlugCandidate("annual-survey-2024", 0); got != "annual-survey-2024" {
		t.Fatalf("n=0: got %q", got)
	}
	if got := SlugCandidate("annual-survey-2024", 1); got != "annual-survey-2024-1" {
		t.Fatalf("n=1: got %q", got)
	}
	if got := SlugCandidate("x", 12); got != "x-12" {
		t.Fatalf("n=12: got %q", got)
	}
}
