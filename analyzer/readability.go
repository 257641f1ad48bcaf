package analyzer

import "math"

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// AnalyzeReadability computes six classic readability formulas from word,
// sentence and syllable statistics. Every denominator is floored at 1, so
// empty input produces a degenerate but valid report instead of an error.
func (a *Analyzer) AnalyzeReadability(text string) ReadabilityReport {
	words := Words(text)
	sentences := Sentences(text)
	paragraphs := Paragraphs(text)

	wordCount := len(words)
	sentenceCount := max(1, len(sentences))
	paragraphCount := max(1, len(paragraphs))

	totalSyllables := 0
	complexWords := 0
	charCount := 0
	for _, w := range words {
		syllables := CountSyllables(w)
		totalSyllables += syllables
		if syllables >= 3 {
			complexWords++
		}
		charCount += len(w)
	}

	wc := float64(max(1, wordCount))
	avgSyllables := float64(totalSyllables) / wc
	avgWordsPerSentence := float64(wordCount) / float64(sentenceCount)

	fleschEase := 206.835 - 1.015*avgWordsPerSentence - 84.6*avgSyllables
	fleschEase = math.Max(0, math.Min(100, fleschEase))

	fkGrade := math.Max(0, 0.39*avgWordsPerSentence+11.8*avgSyllables-15.59)

	fog := 0.4 * (avgWordsPerSentence + 100*float64(complexWords)/wc)

	// SMOG needs at least 3 sentences to be meaningful.
	smog := fkGrade
	if sentenceCount >= 3 {
		smog = 1.0430*math.Sqrt(float64(complexWords)*(30/float64(sentenceCount))) + 3.1291
	}

	ari := math.Max(0, 4.71*(float64(charCount)/wc)+0.5*avgWordsPerSentence-21.43)

	lettersPer100 := float64(charCount) / wc * 100
	sentencesPer100 := float64(sentenceCount) / wc * 100
	coleman := math.Max(0, 0.0588*lettersPer100-0.296*sentencesPer100-15.8)

	avgGrade := (fkGrade + fog + smog + ari + coleman) / 5

	// 200 words per minute baseline.
	readingTime := int(math.Round(float64(wordCount) / 200 * 60))

	var difficulty, audience string
	switch {
	case fleschEase >= 80:
		difficulty, audience = "easy", "General public, 6th grade"
	case fleschEase >= 60:
		difficulty, audience = "moderate", "8th-9th grade students"
	case fleschEase >= 40:
		difficulty, audience = "difficult", "College students"
	default:
		difficulty, audience = "very_difficult", "College graduates, professionals"
	}

	return ReadabilityReport{
		FleschReadingEase:         round1(fleschEase),
		FleschKincaidGrade:        round1(fkGrade),
		GunningFog:                round1(fog),
		SMOGIndex:                 round1(smog),
		AutomatedReadabilityIndex: round1(ari),
		ColemanLiauIndex:          round1(coleman),
		AvgGradeLevel:             round1(avgGrade),
		ReadingTimeSeconds:        readingTime,
		WordCount:                 wordCount,
		SentenceCount:             sentenceCount,
		ParagraphCount:            paragraphCount,
		AvgWordsPerSentence:       round1(avgWordsPerSentence),
		AvgSyllablesPerWord:       round2(avgSyllables),
		DifficultyLevel:           difficulty,
		TargetAudience:            audience,
	}
}
