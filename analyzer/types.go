package analyzer

// ReadabilityReport contains the classic readability formula scores for a
// piece of copy along with the raw text statistics they were derived from.
type ReadabilityReport struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	GunningFog                float64 `json:"gunning_fog"`
	SMOGIndex                 float64 `json:"smog_index"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
	ColemanLiauIndex          float64 `json:"coleman_liau_index"`
	AvgGradeLevel             float64 `json:"avg_grade_level"`
	ReadingTimeSeconds        int     `json:"reading_time_seconds"`

	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	ParagraphCount      int     `json:"paragraph_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`

	DifficultyLevel string `json:"difficulty_level"` // easy, moderate, difficult, very_difficult
	TargetAudience  string `json:"target_audience"`
}

// EmotionScore is one detected emotion category and its strength.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// SentimentReport describes the polarity and emotional tone of copy.
type SentimentReport struct {
	OverallSentiment string  `json:"overall_sentiment"` // positive, negative, neutral, mixed
	SentimentScore   float64 `json:"sentiment_score"`   // -1 (negative) to 1 (positive)
	Confidence       float64 `json:"confidence"`

	Emotions []EmotionScore `json:"emotions"`

	IsUrgent      bool `json:"is_urgent"`
	IsPersuasive  bool `json:"is_persuasive"`
	IsInformative bool `json:"is_informative"`
	IsCasual      bool `json:"is_casual"`
	IsFormal      bool `json:"is_formal"`

	CallToActionStrength float64 `json:"call_to_action_strength"`
	EmotionalAppeal      float64 `json:"emotional_appeal"`
}

// KeywordAnalysis reports how one target keyword is used in the copy.
type KeywordAnalysis struct {
	Keyword          string  `json:"keyword"`
	Count            int     `json:"count"`
	Density          float64 `json:"density"` // percentage of total words
	InTitle          bool    `json:"in_title"`
	InHeadings       bool    `json:"in_headings"`
	InFirstParagraph bool    `json:"in_first_paragraph"`
}

// HeadingStructure is one markdown heading found in the copy.
type HeadingStructure struct {
	Tag       string `json:"tag"` // h1 through h6
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// SEOReport contains on-page SEO checks for markdown-formatted copy.
type SEOReport struct {
	SEOScore float64 `json:"seo_score"`

	WordCount           int    `json:"word_count"`
	IdealWordCountRange string `json:"ideal_word_count_range"`

	Keywords               []KeywordAnalysis `json:"keywords"`
	KeywordStuffingWarning bool              `json:"keyword_stuffing_warning"`

	Headings              []HeadingStructure `json:"headings"`
	HasH1                 bool               `json:"has_h1"`
	HeadingHierarchyValid bool               `json:"heading_hierarchy_valid"`

	ParagraphCount       int     `json:"paragraph_count"`
	AvgParagraphLength   float64 `json:"avg_paragraph_length"`
	ShortParagraphsRatio float64 `json:"short_paragraphs_ratio"` // paragraphs under 3 sentences

	Suggestions []string `json:"suggestions"`
}

// EngagementReport predicts how copy will perform for a given content type.
type EngagementReport struct {
	OverallScore float64 `json:"overall_score"`

	HeadlineScore    float64 `json:"headline_score"`
	HookScore        float64 `json:"hook_score"`
	ReadabilityScore float64 `json:"readability_score"`
	EmotionalScore   float64 `json:"emotional_score"`
	CTAScore         float64 `json:"cta_score"`

	PredictedClickRate       string  `json:"predicted_click_rate"` // low, medium, high, very_high
	PredictedReadCompletion  float64 `json:"predicted_read_completion"`
	PredictedShareLikelihood string  `json:"predicted_share_likelihood"` // unlikely, possible, likely, very_likely

	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// FullAnalysisReport bundles all four analyses for a single text.
type FullAnalysisReport struct {
	Readability ReadabilityReport `json:"readability"`
	Sentiment   SentimentReport   `json:"sentiment"`
	SEO         SEOReport         `json:"seo"`
	Engagement  EngagementReport  `json:"engagement"`
}
