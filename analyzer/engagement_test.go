package analyzer

import "testing"

func TestPredictEngagementStrongCopy(t *testing.T) {
	a := New()
	text := "How You Can Save Big Today!\n\nImagine getting the best results fast. You will love it.\n\nBuy now and start today!"
	report := a.PredictEngagement(text, "social", "twitter")

	// 50 base + 15 for 6 words + 15 power word + 10 exclamation.
	if report.HeadlineScore != 90 {
		t.Errorf("Expected headline score 90, got %v", report.HeadlineScore)
	}
	// 50 base + 15 personal + 10 short + 15 emotional appeal.
	if report.HookScore != 90 {
		t.Errorf("Expected hook score 90, got %v", report.HookScore)
	}
	if report.ReadabilityScore != 92.7 {
		t.Errorf("Expected readability score 92.7, got %v", report.ReadabilityScore)
	}
	if report.EmotionalScore != 85 {
		t.Errorf("Expected emotional score 85, got %v", report.EmotionalScore)
	}
	// Three CTA keywords saturate the strength; the closing-line bonus is
	// capped at 100.
	if report.CTAScore != 100 {
		t.Errorf("Expected CTA score 100, got %v", report.CTAScore)
	}

	if report.OverallScore != 90.4 {
		t.Errorf("Expected overall score 90.4, got %v", report.OverallScore)
	}
	if report.PredictedClickRate != "very_high" {
		t.Errorf("Expected very_high click rate, got %q", report.PredictedClickRate)
	}
	if report.PredictedShareLikelihood != "very_likely" {
		t.Errorf("Expected very_likely share, got %q", report.PredictedShareLikelihood)
	}
	if report.PredictedReadCompletion != 0.82 {
		t.Errorf("Expected read completion 0.82, got %v", report.PredictedReadCompletion)
	}

	if len(report.Strengths) != 5 {
		t.Errorf("Expected all 5 strengths, got %v", report.Strengths)
	}
	if len(report.Improvements) != 0 {
		t.Errorf("Expected no improvements, got %v", report.Improvements)
	}
}

func TestPredictEngagementWeakCopy(t *testing.T) {
	a := New()
	report := a.PredictEngagement("Okay.", "social", "")

	if report.HeadlineScore != 50 {
		t.Errorf("Expected headline score 50, got %v", report.HeadlineScore)
	}
	// Only the short-hook bonus applies.
	if report.HookScore != 60 {
		t.Errorf("Expected hook score 60, got %v", report.HookScore)
	}
	if report.ReadabilityScore != 36.6 {
		t.Errorf("Expected readability score 36.6, got %v", report.ReadabilityScore)
	}
	if report.EmotionalScore != 50 {
		t.Errorf("Expected emotional score 50, got %v", report.EmotionalScore)
	}
	if report.CTAScore != 0 {
		t.Errorf("Expected CTA score 0, got %v", report.CTAScore)
	}

	if report.OverallScore != 45.5 {
		t.Errorf("Expected overall score 45.5, got %v", report.OverallScore)
	}
	if report.PredictedClickRate != "low" {
		t.Errorf("Expected low click rate, got %q", report.PredictedClickRate)
	}
	if report.PredictedShareLikelihood != "unlikely" {
		t.Errorf("Expected unlikely share, got %q", report.PredictedShareLikelihood)
	}
	if report.PredictedReadCompletion != 0.58 {
		t.Errorf("Expected read completion 0.58, got %v", report.PredictedReadCompletion)
	}

	if len(report.Strengths) != 0 {
		t.Errorf("Expected no strengths, got %v", report.Strengths)
	}
	if len(report.Improvements) != 5 {
		t.Errorf("Expected all 5 improvements, got %v", report.Improvements)
	}
}

func TestPredictEngagementContentTypeWeights(t *testing.T) {
	a := New()
	text := "How You Can Save Big Today!\n\nImagine getting the best results fast. You will love it.\n\nBuy now and start today!"

	social := a.PredictEngagement(text, "social", "")
	email := a.PredictEngagement(text, "email", "")

	if social.OverallScore == email.OverallScore {
		t.Errorf("Expected content type to change the weighting, both %v", social.OverallScore)
	}
	// Component scores do not depend on content type.
	if social.HeadlineScore != email.HeadlineScore || social.CTAScore != email.CTAScore {
		t.Error("Component scores must not depend on content type")
	}
}

func TestPredictEngagementUnknownContentTypeUsesSocialWeights(t *testing.T) {
	a := New()
	text := "Why wait? Get your free guide now!"

	known := a.PredictEngagement(text, "social", "")
	unknown := a.PredictEngagement(text, "brochure", "")

	if known.OverallScore != unknown.OverallScore {
		t.Errorf("Expected fallback to social weights, got %v vs %v", known.OverallScore, unknown.OverallScore)
	}
}

func TestPredictEngagementEmptyText(t *testing.T) {
	a := New()
	report := a.PredictEngagement("", "social", "")

	if report.HeadlineScore != 50 || report.HookScore != 50 {
		t.Errorf("Expected neutral headline/hook for empty text, got %v/%v",
			report.HeadlineScore, report.HookScore)
	}
	if report.CTAScore != 0 {
		t.Errorf("Expected CTA score 0, got %v", report.CTAScore)
	}
	if report.OverallScore < 0 || report.OverallScore > 100 {
		t.Errorf("Overall score out of bounds: %v", report.OverallScore)
	}
	if report.PredictedReadCompletion != 0.85 {
		t.Errorf("Expected completion 0.85, got %v", report.PredictedReadCompletion)
	}
}

func TestEngagementClosingLineCTABonus(t *testing.T) {
	a := New()

	without := a.PredictEngagement("A plain statement.\nAnother plain statement.", "social", "")
	with := a.PredictEngagement("A plain statement.\nOrder yours while supplies last.", "social", "")

	if with.CTAScore <= without.CTAScore {
		t.Errorf("Expected closing CTA bonus: %v vs %v", with.CTAScore, without.CTAScore)
	}
}
