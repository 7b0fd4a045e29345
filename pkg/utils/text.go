package utils

import (
	"strings"
	"unicode"

	"github.com/aryann/difflib"
)

// TokenizeWords splits text into lowercase word tokens, dropping whitespace
// and punctuation runs.
func TokenizeWords(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '-' {
			cur = append(cur, r)
		} else {
			flush()
		}
	}
	flush()
	return out
}

// MissingWords returns words that appear in source but never in response, in
// source order, capped at limit. Short and common words are skipped so the
// result reads as candidate key terms rather than noise.
func MissingWords(source, response string, limit int) []string {
	recs := difflib.Diff(TokenizeWords(source), TokenizeWords(response))

	present := make(map[string]struct{})
	for _, r := range recs {
		if r.Delta != difflib.LeftOnly {
			present[r.Payload] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, r := range recs {
		if r.Delta != difflib.LeftOnly {
			continue
		}
		w := r.Payload
		if len(w) < 5 || stopWords[w] {
			continue
		}
		if _, ok := present[w]; ok {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var stopWords = map[string]bool{
	"about": true, "after": true, "again": true, "because": true,
	"before": true, "being": true, "between": true, "could": true,
	"during": true, "every": true, "other": true, "should": true,
	"their": true, "there": true, "these": true, "those": true,
	"through": true, "under": true, "where": true, "which": true,
	"while": true, "would": true,
}
