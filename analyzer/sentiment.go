package analyzer

import (
	"math"
	"sort"
	"strings"
)

// AnalyzeSentiment scores polarity from the positive/negative lexicons and
// derives emotion categories, tone flags and the two marketing appeal
// scalars. Emotion and tone matching is substring containment against the
// lowercased full text, so "unhappy" matches "happy"; that inaccuracy is
// part of the documented scoring behavior.
func (a *Analyzer) AnalyzeSentiment(text string) SentimentReport {
	words := Words(text)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}
	lower := strings.ToLower(text)

	positive, negative := 0, 0
	for w := range wordSet {
		if _, ok := positiveWords[w]; ok {
			positive++
		}
		if _, ok := negativeWords[w]; ok {
			negative++
		}
	}
	total := positive + negative

	score := 0.0
	if total > 0 {
		score = float64(positive-negative) / float64(total)
	}

	overall := "neutral"
	switch {
	case score > 0.3:
		overall = "positive"
	case score < -0.3:
		overall = "negative"
	case positive > 0 && negative > 0:
		overall = "mixed"
	}

	confidence := math.Min(1, float64(total)/10)

	emotions := []EmotionScore{}
	for _, category := range emotionLexicon {
		matches := 0
		for _, kw := range category.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches > 0 {
			emotions = append(emotions, EmotionScore{
				Emotion: category.name,
				Score:   round2(math.Min(1, float64(matches)/3)),
			})
		}
	}
	sort.SliceStable(emotions, func(i, j int) bool {
		return emotions[i].Score > emotions[j].Score
	})

	isUrgent := containsAny(lower, urgentWords)

	ctaCount := 0
	for _, kw := range ctaKeywords {
		if strings.Contains(lower, kw) {
			ctaCount++
		}
	}
	ctaStrength := math.Min(1, float64(ctaCount)/3)

	// Emotional appeal uses the full detected-emotion count, before the
	// report is trimmed to the top five.
	urgencyBoost := 0.0
	if isUrgent {
		urgencyBoost = 0.3
	}
	exclamations := strings.Count(text, "!")
	appeal := math.Min(1, float64(len(emotions))*0.2+float64(exclamations)*0.1+urgencyBoost)

	if len(emotions) > 5 {
		emotions = emotions[:5]
	}

	return SentimentReport{
		OverallSentiment:     overall,
		SentimentScore:       round2(score),
		Confidence:           round2(confidence),
		Emotions:             emotions,
		IsUrgent:             isUrgent,
		IsPersuasive:         containsAny(lower, persuasiveWords),
		IsInformative:        containsAny(lower, informativeWords),
		IsCasual:             containsAny(lower, casualWords),
		IsFormal:             containsAny(lower, formalWords),
		CallToActionStrength: round2(ctaStrength),
		EmotionalAppeal:      round2(appeal),
	}
}
