package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into an ASCII slug: lower-case, diacritics removed,
// every run of non [a-z0-9] characters replaced by a single "-", trimmed.
// "Annual Survey 2024" -> "annual-survey-2024", "Khảo sát" -> "khao-sat".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		// đ không tách dấu được bằng NFD
		if r == 'đ' {
			r = 'd'
		}
		b.WriteRune(r)
	}

	out := reNonAlnum.ReplaceAllString(b.String(), "-")
	out = reHyphen.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// SlugCandidate returns the n-th candidate for base: base itself for n == 0,
// otherwise base-n.
func SlugCandidate(base string, n int) string {
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
