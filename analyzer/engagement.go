package analyzer

import (
	"math"
	"regexp"
	"strings"
)

var digitPattern = regexp.MustCompile(`\d`)

// componentFeedback drives the strengths/improvements lists from a single
// threshold table so the cutoffs live in one place.
type componentFeedback struct {
	score       float64
	threshold   float64
	strength    string
	improvement string
}

// PredictEngagement combines readability and sentiment with headline and
// hook heuristics into a weighted 0-100 prediction. The platform label is
// informational only and does not affect scoring.
func (a *Analyzer) PredictEngagement(text, contentType, platform string) EngagementReport {
	_ = platform

	words := Words(text)
	sentences := Sentences(text)

	readability := a.AnalyzeReadability(text)
	sentiment := a.AnalyzeSentiment(text)

	lines := strings.Split(text, "\n")
	firstLine := strings.TrimSpace(lines[0])

	headlineScore := 50.0
	if firstLine != "" {
		if n := len(strings.Fields(firstLine)); n >= 6 && n <= 12 {
			headlineScore += 15
		}
		if containsAny(strings.ToLower(firstLine), headlinePowerWords) {
			headlineScore += 15
		}
		if digitPattern.MatchString(firstLine) {
			headlineScore += 10
		}
		if strings.HasSuffix(firstLine, "?") || strings.HasSuffix(firstLine, "!") {
			headlineScore += 10
		}
	}

	hookScore := 50.0
	hookText := strings.Join(sentences[:min(2, len(sentences))], " ")
	if hookText != "" {
		if containsAny(strings.ToLower(hookText), hookPersonalWords) {
			hookScore += 15
		}
		if strings.Contains(hookText, "?") {
			hookScore += 10
		}
		if len(strings.Fields(hookText)) <= 30 {
			hookScore += 10
		}
		if sentiment.EmotionalAppeal > 0.3 {
			hookScore += 15
		}
	}

	readScore := math.Min(100, readability.FleschReadingEase)
	emotionalScore := float64(int(sentiment.EmotionalAppeal*50 + 50))

	ctaScore := float64(int(sentiment.CallToActionStrength * 100))
	lastParagraph := strings.ToLower(lines[len(lines)-1])
	if containsAny(lastParagraph, ctaKeywords) {
		ctaScore = math.Min(100, ctaScore+20)
	}

	w := weightsFor(contentType)
	overall := headlineScore*w.headline +
		hookScore*w.hook +
		readScore*w.read +
		emotionalScore*w.emotion +
		ctaScore*w.cta

	var clickRate, shareLikelihood string
	switch {
	case overall >= 80:
		clickRate, shareLikelihood = "very_high", "very_likely"
	case overall >= 65:
		clickRate, shareLikelihood = "high", "likely"
	case overall >= 50:
		clickRate, shareLikelihood = "medium", "possible"
	default:
		clickRate, shareLikelihood = "low", "unlikely"
	}

	wordCount := len(words)
	completion := 0.4
	switch {
	case wordCount < 300:
		completion = 0.85
	case wordCount < 800:
		completion = 0.7
	case wordCount < 1500:
		completion = 0.55
	}
	completion *= 0.5 + readability.FleschReadingEase/200

	feedback := []componentFeedback{
		{headlineScore, 70, "Strong, attention-grabbing headline", "Improve headline with power words or numbers"},
		{hookScore, 70, "Engaging opening that hooks readers", "Make the opening more personal and engaging"},
		{readScore, 60, "Good readability for target audience", "Simplify language for better readability"},
		{emotionalScore, 60, "Strong emotional appeal", "Add more emotional triggers"},
		{ctaScore, 60, "Clear call-to-action", "Add or strengthen call-to-action"},
	}
	strengths := []string{}
	improvements := []string{}
	for _, f := range feedback {
		if f.score >= f.threshold {
			strengths = append(strengths, f.strength)
		} else {
			improvements = append(improvements, f.improvement)
		}
	}

	return EngagementReport{
		OverallScore:             round1(overall),
		HeadlineScore:            round1(headlineScore),
		HookScore:                round1(hookScore),
		ReadabilityScore:         round1(readScore),
		EmotionalScore:           round1(emotionalScore),
		CTAScore:                 round1(ctaScore),
		PredictedClickRate:       clickRate,
		PredictedReadCompletion:  round2(math.Min(1, completion)),
		PredictedShareLikelihood: shareLikelihood,
		Strengths:                strengths,
		Improvements:             improvements,
	}
}
