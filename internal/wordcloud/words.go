// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordcloud turns the title corpus into word frequencies and
// renders them as a word cloud image.
package wordcloud

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxWords caps the number of distinct words kept by Frequencies.
const DefaultMaxWords = 200

// stopWords are common English words left out of the cloud.
var stopWords = toSet(`a about above after again against all also am an and any are
aren't as at be because been before being below between both but by can can't
cannot com could couldn't did didn't do does doesn't doing don't down during each
else ever few for from further get had hadn't has hasn't have haven't having he
he'd he'll he's hence her here here's hers herself him himself his how how's
however http i i'd i'll i'm i've if in into is isn't it it's its itself just k
let's like me more most mustn't my myself no nor not of off on once only or
other otherwise ought our ours ourselves out over own r same shall shan't she
she'd she'll she's should shouldn't since so some such than that that's the
their theirs them themselves then there there's therefore these they they'd
they'll they're they've this those through to too under until up very via was
wasn't we we'd we'll we're we've were weren't what what's when when's where
where's which while who who's whom why why's with won't would wouldn't www you
you'd you'll you're you've your yours yourself yourselves`)

func toSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// Frequencies counts lower-cased words in corpus. Stop words, single
// characters and pure numbers are skipped, a trailing "'s" is dropped, and
// only the maxWords most frequent words are kept (ties broken
// alphabetically). maxWords <= 0 uses DefaultMaxWords.
func Frequencies(corpus string, maxWords int) map[string]int {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	counts := make(map[string]int)
	for _, tok := range tokenize(corpus) {
		tok = strings.TrimSuffix(tok, "'s")
		if len([]rune(tok)) < 2 || isNumber(tok) {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		counts[tok]++
	}
	if len(counts) <= maxWords {
		return counts
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	top := make(map[string]int, maxWords)
	for _, w := range words[:maxWords] {
		top[w] = counts[w]
	}
	return top
}

// tokenize splits on anything that is not a letter, digit or apostrophe.
func tokenize(s string) []string {
	s = strings.ToLower(strings.ReplaceAll(s, "\u2019", "'"))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
