package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/pkg/logger"
)

func newTestEngine(client SafeBrowsingClient) *RiskEngine {
	log := logger.NewDefault()
	return NewRiskEngine(
		NewRuleScorer(log),
		NewSentimentScorer(log),
		NewURLChecker(client, nil, 0, log),
		log,
	)
}

func TestRiskEngine_Assess_PhishingNarrative(t *testing.T) {
	client := &MockSafeBrowsingClient{ThreatURLs: map[string]bool{
		"http://evil.test/login": true,
	}}
	engine := newTestEngine(client)

	a := engine.Assess(context.Background(), "Urgent! click this link now: http://evil.test/login", "", "")

	// 25 (login) + 15*3 (urgent, click, link) + 20 + 40 exceeds the cap
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, models.RiskLevelHigh, a.Level)
	assert.True(t, a.MaliciousURLFound)
	assert.Equal(t, []string{"http://evil.test/login"}, a.URLs)

	// Keyword reasons first, then URL reasons
	require.GreaterOrEqual(t, len(a.Reasons), 6)
	assert.Equal(t, []string{
		"high risk keyword: login",
		"medium risk keyword: urgent",
		"medium risk keyword: click",
		"medium risk keyword: link",
		"URL detected",
		"malicious URL identified: http://evil.test/login",
	}, a.Reasons[:6])
}

func TestRiskEngine_Assess_ScoreNeverNegative(t *testing.T) {
	engine := newTestEngine(NewMockSafeBrowsingClient())

	a := engine.Assess(context.Background(), "monthly newsletter with a promotion and a discount offer", "", "")

	assert.Equal(t, 0, a.Score)
	assert.Equal(t, models.RiskLevelLow, a.Level)
	assert.Equal(t, []string{
		"low risk indicator: newsletter",
		"low risk indicator: promotion",
		"low risk indicator: discount",
		"low risk indicator: offer",
	}, a.Reasons)
}

func TestRiskEngine_Assess_SingleKeywordStaysLow(t *testing.T) {
	engine := newTestEngine(NewMockSafeBrowsingClient())

	a := engine.Assess(context.Background(), "they changed my password for me", "", "")

	assert.Equal(t, 25, a.Score)
	assert.Equal(t, models.RiskLevelLow, a.Level)
}

func TestRiskEngine_Assess_IOCFieldFeedsKeywordsAndBonus(t *testing.T) {
	engine := newTestEngine(NewMockSafeBrowsingClient())

	// "bank" lives only in the IOC field; it must still match, and the
	// non-empty field earns the evidence bonus.
	a := engine.Assess(context.Background(), "someone called me about a transfer", "bank-helpdesk.example", "")

	assert.Equal(t, 35, a.Score)
	assert.Equal(t, models.RiskLevelMedium, a.Level)
	assert.Equal(t, []string{
		"high risk keyword: bank",
		"evidence provided",
	}, a.Reasons)
}

func TestRiskEngine_Assess_OCRTextFeedsAnalysis(t *testing.T) {
	engine := newTestEngine(NewMockSafeBrowsingClient())

	withOCR := engine.Assess(context.Background(), "screenshot attached", "", "please verify your OTP")
	withoutOCR := engine.Assess(context.Background(), "screenshot attached", "", "")

	assert.Greater(t, withOCR.Score, withoutOCR.Score)
	assert.Contains(t, withOCR.Reasons, "high risk keyword: otp")
	assert.Contains(t, withOCR.Reasons, "high risk keyword: verify")
}

func TestRiskEngine_Assess_Deterministic(t *testing.T) {
	engine := newTestEngine(NewMockSafeBrowsingClient())
	narrative := "Urgent security alert: verify your bank login at http://phishing.testing.google.test/testing/phishing/"

	first := engine.Assess(context.Background(), narrative, "203.0.113.7", "")
	second := engine.Assess(context.Background(), narrative, "203.0.113.7", "")

	assert.Equal(t, first, second)
}

func TestRiskLevelForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskLevelLow},
		{25, models.RiskLevelLow},
		{26, models.RiskLevelMedium},
		{60, models.RiskLevelMedium},
		{61, models.RiskLevelHigh},
		{100, models.RiskLevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.RiskLevelForScore(tt.score), "score %d", tt.score)
	}
}
