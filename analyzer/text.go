package analyzer

import (
	"regexp"
	"strings"
)

var (
	wordPattern      = regexp.MustCompile(`[a-z]+`)
	sentencePattern  = regexp.MustCompile(`[.!?]+`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
)

// Words returns the lowercase alphabetic tokens of text. Any non-letter
// character acts as a word boundary; digits and punctuation are dropped.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Sentences splits text on runs of '.', '!' and '?', trimming surrounding
// whitespace and discarding empty results.
func Sentences(text string) []string {
	parts := sentencePattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Paragraphs splits text on blank-line boundaries, trimming each block and
// discarding empty results.
func Paragraphs(text string) []string {
	parts := paragraphPattern.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// CountSyllables estimates the syllable count of a word: words of three or
// fewer letters count as one syllable; otherwise a single trailing 'e' is
// stripped and maximal vowel groups (aeiouy) are counted, with a floor of
// one. This is an approximation, not a dictionary lookup — the readability
// formulas depend on this exact heuristic.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) <= 3 {
		return 1
	}
	word = strings.TrimSuffix(word, "e")

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count < 1 {
		return 1
	}
	return count
}
