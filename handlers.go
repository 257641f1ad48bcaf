package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/copyforge/backend/abtest"
	"github.com/copyforge/backend/stats"
)

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

type seoRequest struct {
	Text           string   `json:"text" binding:"required"`
	TargetKeywords []string `json:"target_keywords"`
	ContentType    string   `json:"content_type"`
}

type engagementRequest struct {
	Text        string `json:"text" binding:"required"`
	ContentType string `json:"content_type"`
	Platform    string `json:"platform"`
}

type fullAnalysisRequest struct {
	Text           string   `json:"text" binding:"required"`
	TargetKeywords []string `json:"target_keywords"`
	ContentType    string   `json:"content_type"`
	Platform       string   `json:"platform"`
}

type urlAnalysisRequest struct {
	URL            string   `json:"url" binding:"required,url"`
	TargetKeywords []string `json:"target_keywords"`
	ContentType    string   `json:"content_type"`
}

type abTestCreateRequest struct {
	VariantA string `json:"variant_a" binding:"required"`
	VariantB string `json:"variant_b" binding:"required"`
}

type abTestDecideRequest struct {
	Winner       string `json:"winner" binding:"required,oneof=A B"`
	WinnerReason string `json:"winner_reason"`
}

// rejectBlankText enforces the non-empty-text contract at the edge so the
// analyzer itself stays total. Returns false after writing the 400 response.
func rejectBlankText(c *gin.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Text cannot be empty",
		})
		return false
	}
	return true
}

func analyzeReadability(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if !rejectBlankText(c, req.Text) {
		return
	}

	usage.IncrementAnalysis(stats.KindReadability)
	c.JSON(http.StatusOK, textAnalyzer.AnalyzeReadability(req.Text))
}

func analyzeSentiment(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if !rejectBlankText(c, req.Text) {
		return
	}

	usage.IncrementAnalysis(stats.KindSentiment)
	c.JSON(http.StatusOK, textAnalyzer.AnalyzeSentiment(req.Text))
}

func analyzeSEO(c *gin.Context) {
	var req seoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if !rejectBlankText(c, req.Text) {
		return
	}
	if req.ContentType == "" {
		req.ContentType = "blog"
	}

	usage.IncrementAnalysis(stats.KindSEO)
	c.JSON(http.StatusOK, textAnalyzer.AnalyzeSEO(req.Text, req.TargetKeywords, req.ContentType))
}

func predictEngagement(c *gin.Context) {
	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if !rejectBlankText(c, req.Text) {
		return
	}
	if req.ContentType == "" {
		req.ContentType = "social"
	}

	usage.IncrementAnalysis(stats.KindEngagement)
	c.JSON(http.StatusOK, textAnalyzer.PredictEngagement(req.Text, req.ContentType, req.Platform))
}

func fullAnalysis(c *gin.Context) {
	var req fullAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if !rejectBlankText(c, req.Text) {
		return
	}
	if req.ContentType == "" {
		req.ContentType = "blog"
	}

	usage.IncrementAnalysis(stats.KindFull)
	c.JSON(http.StatusOK, textAnalyzer.FullAnalysis(req.Text, req.TargetKeywords, req.ContentType, req.Platform))
}

func analyzeContentURL(c *gin.Context) {
	var req urlAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}
	if req.ContentType == "" {
		req.ContentType = "blog"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	text, err := pageExtractor.Extract(ctx, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch content: " + err.Error(),
		})
		return
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No analyzable text found at URL",
		})
		return
	}

	usage.IncrementAnalysis(stats.KindURL)
	c.JSON(http.StatusOK, textAnalyzer.FullAnalysis(text, req.TargetKeywords, req.ContentType, ""))
}

func createABTest(c *gin.Context) {
	var req abTestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Both variants are required",
		})
		return
	}

	test, err := abTests.Create(req.VariantA, req.VariantB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, test)
}

func listABTests(c *gin.Context) {
	decidedOnly := c.Query("decided_only") == "true"

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be between 1 and 100",
			})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, abTests.List(decidedOnly, limit))
}

func getABTest(c *gin.Context) {
	test, err := abTests.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A/B test not found"})
		return
	}

	c.JSON(http.StatusOK, test)
}

func decideABTest(c *gin.Context) {
	var req abTestDecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Winner must be A or B",
		})
		return
	}

	test, err := abTests.Decide(c.Param("id"), req.Winner, req.WinnerReason)
	switch {
	case errors.Is(err, abtest.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "A/B test not found"})
	case errors.Is(err, abtest.ErrAlreadyDecided):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A/B test already has a winner"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, test)
	}
}

func abTestStats(c *gin.Context) {
	c.JSON(http.StatusOK, abTests.Stats())
}

func deleteABTest(c *gin.Context) {
	if err := abTests.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A/B test not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A/B test deleted"})
}
