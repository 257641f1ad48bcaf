package analyzer

// Analyzer runs the text analyses. It holds no state: every call is an
// independent computation over its input, so a single instance is safe for
// any number of concurrent callers and identical input always produces
// identical output.
type Analyzer struct{}

// New creates a new Analyzer instance.
func New() *Analyzer {
	return &Analyzer{}
}

// FullAnalysis runs all four analyses in dependency order and returns the
// reports side by side. Each report is exactly what the corresponding
// single-analysis call would return for the same arguments.
func (a *Analyzer) FullAnalysis(text string, targetKeywords []string, contentType, platform string) FullAnalysisReport {
	return FullAnalysisReport{
		Readability: a.AnalyzeReadability(text),
		Sentiment:   a.AnalyzeSentiment(text),
		SEO:         a.AnalyzeSEO(text, targetKeywords, contentType),
		Engagement:  a.PredictEngagement(text, contentType, platform),
	}
}
