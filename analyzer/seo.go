package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// AnalyzeSEO checks on-page factors for markdown-formatted copy: heading
// structure, keyword placement and density, and paragraph shape. Scores
// start from a base of 50 and accumulate fixed bonuses, capped at 100.
func (a *Analyzer) AnalyzeSEO(text string, targetKeywords []string, contentType string) SEOReport {
	words := Words(text)
	wordCount := len(words)
	paragraphs := Paragraphs(text)

	headings := []HeadingStructure{}
	for _, line := range strings.Split(text, "\n") {
		m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		level := len(m[1])
		headings = append(headings, HeadingStructure{
			Tag:       fmt.Sprintf("h%d", level),
			Text:      m[2],
			WordCount: len(strings.Fields(m[2])),
		})
	}

	hasH1 := false
	firstH1 := ""
	for _, h := range headings {
		if h.Tag == "h1" {
			if !hasH1 {
				firstH1 = strings.ToLower(h.Text)
			}
			hasH1 = true
		}
	}

	// A heading may only go one level deeper than its predecessor.
	hierarchyValid := true
	prevLevel := 0
	for _, h := range headings {
		level := int(h.Tag[1] - '0')
		if prevLevel > 0 && level > prevLevel+1 {
			hierarchyValid = false
			break
		}
		prevLevel = level
	}

	lower := strings.ToLower(text)
	firstParagraph := ""
	if len(paragraphs) > 0 {
		firstParagraph = strings.ToLower(paragraphs[0])
	}
	headingTexts := make([]string, len(headings))
	for i, h := range headings {
		headingTexts[i] = strings.ToLower(h.Text)
	}
	allHeadingText := strings.Join(headingTexts, " ")

	keywords := []KeywordAnalysis{}
	for _, kw := range targetKeywords {
		kwLower := strings.ToLower(kw)
		count := strings.Count(lower, kwLower)
		density := round2(float64(count) / float64(max(1, wordCount)) * 100)
		keywords = append(keywords, KeywordAnalysis{
			Keyword:          kw,
			Count:            count,
			Density:          density,
			InTitle:          firstH1 != "" && strings.Contains(firstH1, kwLower),
			InHeadings:       allHeadingText != "" && strings.Contains(allHeadingText, kwLower),
			InFirstParagraph: firstParagraph != "" && strings.Contains(firstParagraph, kwLower),
		})
	}

	stuffing := false
	for _, k := range keywords {
		if k.Density > 3.0 {
			stuffing = true
			break
		}
	}

	totalParagraphWords := 0
	shortParagraphs := 0
	for _, p := range paragraphs {
		totalParagraphWords += len(strings.Fields(p))
		if len(Sentences(p)) < 3 {
			shortParagraphs++
		}
	}
	paragraphFloor := float64(max(1, len(paragraphs)))
	avgParagraphLength := float64(totalParagraphWords) / paragraphFloor
	shortRatio := float64(shortParagraphs) / paragraphFloor

	suggestions := []string{}
	if !hasH1 {
		suggestions = append(suggestions, "Add an H1 heading to your content")
	}
	if !hierarchyValid {
		suggestions = append(suggestions, "Fix heading hierarchy (don't skip levels)")
	}
	if wordCount < 300 {
		suggestions = append(suggestions, "Consider adding more content (at least 300 words)")
	}
	if avgParagraphLength > 100 {
		suggestions = append(suggestions, "Break up long paragraphs for better readability")
	}
	if len(keywords) > 0 {
		missingInHeadings := []string{}
		missingInFirst := []string{}
		for _, k := range keywords {
			if !k.InHeadings {
				missingInHeadings = append(missingInHeadings, k.Keyword)
			}
			if !k.InFirstParagraph {
				missingInFirst = append(missingInFirst, k.Keyword)
			}
		}
		if len(missingInHeadings) > 0 {
			suggestions = append(suggestions,
				"Include keywords in headings: "+strings.Join(firstN(missingInHeadings, 2), ", "))
		}
		if len(missingInFirst) > 0 {
			suggestions = append(suggestions,
				"Include keywords in first paragraph: "+strings.Join(firstN(missingInFirst, 2), ", "))
		}
	}
	if stuffing {
		suggestions = append(suggestions, "Reduce keyword density to avoid keyword stuffing")
	}

	score := 50
	if hasH1 {
		score += 10
	}
	if hierarchyValid {
		score += 5
	}
	if wordCount >= 300 {
		score += 10
	}
	if avgParagraphLength <= 100 {
		score += 5
	}
	if shortRatio >= 0.5 {
		score += 5
	}
	if len(keywords) > 0 {
		healthy := 0
		for _, k := range keywords {
			if k.Density >= 0.5 && k.Density <= 2.5 {
				healthy++
			}
		}
		score += min(15, healthy*5)
		if !stuffing {
			score += 5
		}
	}

	return SEOReport{
		SEOScore:               math.Min(100, float64(score)),
		WordCount:              wordCount,
		IdealWordCountRange:    idealRangeFor(contentType),
		Keywords:               keywords,
		KeywordStuffingWarning: stuffing,
		Headings:               headings,
		HasH1:                  hasH1,
		HeadingHierarchyValid:  hierarchyValid,
		ParagraphCount:         len(paragraphs),
		AvgParagraphLength:     round1(avgParagraphLength),
		ShortParagraphsRatio:   round2(shortRatio),
		Suggestions:            suggestions,
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
