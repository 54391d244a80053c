package projections

import (
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"redlytics/pkg/snoo"
)

// stopwords match the server-side word-cloud filter closely enough for the
// client-side recompute to stay comparable.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "will": {}, "what": {},
	"when": {}, "your": {}, "about": {}, "would": {}, "there": {},
	"their": {}, "which": {}, "been": {}, "were": {}, "just": {},
	"like": {}, "into": {}, "over": {}, "than": {}, "then": {}, "them": {},
	"some": {}, "more": {}, "very": {}, "after": {}, "reddit": {},
}

// WordCounts tokenizes post titles into the client-side word cloud: the
// topN most frequent words, stopwords and short tokens removed.
func WordCounts(posts []snoo.Post, topN int) []snoo.WordCount {
	counts := map[string]int{}

	for _, p := range posts {
		for _, word := range tokenize(p.Title) {
			counts[word]++
		}
	}

	out := lo.MapToSlice(counts, func(text string, value int) snoo.WordCount {
		return snoo.WordCount{Text: text, Value: value}
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Text < out[j].Text
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func tokenize(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	return lo.Filter(fields, func(word string, _ int) bool {
		if len(word) < 3 {
			return false
		}
		_, stop := stopwords[word]
		return !stop
	})
}
