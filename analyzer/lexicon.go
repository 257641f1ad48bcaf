package analyzer

import "strings"

// The keyword lexicons below are load-bearing for the scoring formulas and
// are deliberately compiled in rather than configurable. Changing them
// changes every documented score.

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "wonderful": {},
	"fantastic": {}, "awesome": {}, "best": {}, "love": {}, "happy": {},
	"joy": {}, "success": {}, "win": {}, "perfect": {}, "beautiful": {},
	"easy": {}, "free": {}, "save": {}, "benefit": {}, "improve": {},
	"grow": {}, "achieve": {}, "gain": {}, "profit": {}, "valuable": {},
	"quality": {}, "premium": {}, "exclusive": {}, "guaranteed": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "worst": {},
	"hate": {}, "sad": {}, "fail": {}, "lose": {}, "problem": {},
	"issue": {}, "difficult": {}, "hard": {}, "expensive": {}, "cost": {},
	"risk": {}, "danger": {}, "warning": {}, "mistake": {}, "error": {},
	"wrong": {}, "never": {},
}

// emotionLexicon is ordered so that equal-score emotions sort stably.
var emotionLexicon = []struct {
	name     string
	keywords []string
}{
	{"joy", []string{"happy", "joy", "excited", "amazing", "wonderful", "love", "great", "fantastic", "awesome", "delighted"}},
	{"trust", []string{"trust", "reliable", "secure", "safe", "proven", "guaranteed", "certified", "authentic"}},
	{"fear", []string{"fear", "worried", "anxious", "urgent", "danger", "risk", "warning", "alert", "limited"}},
	{"surprise", []string{"surprise", "unexpected", "shocking", "incredible", "unbelievable", "wow", "astonishing"}},
	{"sadness", []string{"sad", "sorry", "unfortunately", "regret", "miss", "lost", "disappointed"}},
	{"anger", []string{"angry", "frustrated", "annoyed", "hate", "terrible", "awful", "worst"}},
	{"anticipation", []string{"soon", "coming", "upcoming", "expect", "wait", "future", "next", "new"}},
}

var ctaKeywords = []string{
	"buy", "get", "start", "try", "join", "subscribe", "download", "sign up",
	"register", "learn", "discover", "click", "shop", "order", "book", "call",
	"contact", "claim", "grab", "unlock", "access", "reserve", "apply",
}

// Tone trigger lists. Matching is substring containment against the
// lowercased full text, so "now" also fires inside "knowledge". That is the
// documented heuristic, not an oversight.
var (
	urgentWords      = []string{"urgent", "now", "today", "limited", "hurry", "fast", "immediately"}
	persuasiveWords  = []string{"you", "your", "imagine", "discover", "proven", "guaranteed"}
	informativeWords = []string{"how", "what", "why", "learn", "guide", "tips", "steps"}
	casualWords      = []string{"hey", "awesome", "cool", "gonna", "wanna", "!"}
	formalWords      = []string{"therefore", "however", "furthermore", "regarding", "pursuant"}
)

var headlinePowerWords = []string{"how", "why", "what", "best", "top", "new", "free", "secret", "proven", "ultimate"}

var hookPersonalWords = []string{"you", "your", "imagine"}

// engagementWeights are the per-content-type mixing factors for the five
// engagement component scores. Each set sums to 1.0.
type engagementWeights struct {
	headline float64
	hook     float64
	read     float64
	emotion  float64
	cta      float64
}

// weightsFor returns the weight set for a content type. Unknown types fall
// back to the social weights.
func weightsFor(contentType string) engagementWeights {
	switch contentType {
	case "email":
		return engagementWeights{headline: 0.35, hook: 0.2, read: 0.15, emotion: 0.15, cta: 0.15}
	case "blog":
		return engagementWeights{headline: 0.2, hook: 0.2, read: 0.25, emotion: 0.15, cta: 0.2}
	case "ad":
		return engagementWeights{headline: 0.25, hook: 0.15, read: 0.1, emotion: 0.25, cta: 0.25}
	case "landing":
		return engagementWeights{headline: 0.25, hook: 0.2, read: 0.15, emotion: 0.15, cta: 0.25}
	default: // social and anything unrecognized
		return engagementWeights{headline: 0.3, hook: 0.25, read: 0.15, emotion: 0.2, cta: 0.1}
	}
}

// idealRangeFor returns the advisory word-count range for a content type.
func idealRangeFor(contentType string) string {
	switch contentType {
	case "blog":
		return "1500-2500"
	case "landing":
		return "500-1000"
	case "product":
		return "300-500"
	case "social":
		return "50-280"
	case "email":
		return "200-500"
	default:
		return "500-1500"
	}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
