package services

import (
	"context"

	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/pkg/logger"
)

// Assessment is the full outcome of one risk scoring pass. It carries the
// malicious-URL flag alongside the assessment because the hybrid threat
// classifier consumes it as a separate signal.
type Assessment struct {
	models.RiskAssessment
	MaliciousURLFound bool
	URLs              []string
}

// RiskEngine composes the rule, sentiment, and URL reputation scorers
// into a single score/level/reasons triple. Each submission runs through
// one synchronous pipeline invocation; the engine itself holds no
// per-request state.
type RiskEngine struct {
	rules     *RuleScorer
	sentiment *SentimentScorer
	urls      *URLChecker
	logger    *logger.Logger
}

// NewRiskEngine creates a new RiskEngine
func NewRiskEngine(rules *RuleScorer, sentiment *SentimentScorer, urls *URLChecker, log *logger.Logger) *RiskEngine {
	return &RiskEngine{
		rules:     rules,
		sentiment: sentiment,
		urls:      urls,
		logger:    log.WithComponent("risk-engine"),
	}
}

// Assess scores one submission. Reasons are concatenated in a fixed
// order: keyword reasons (high, medium, low), the evidence bonus, URL
// reasons, then tone reasons. The order is load-bearing; callers and
// tests rely on it being reproducible.
func (e *RiskEngine) Assess(ctx context.Context, narrative, iocIndicators, ocrText string) Assessment {
	text := NormalizeText(narrative, iocIndicators, ocrText)

	ruleC := e.rules.Score(text.Lowered, iocIndicators != "")
	urlC := e.urls.Check(ctx, text.Raw)
	toneC := e.sentiment.Score(text.Raw)

	score := ruleC.Delta + urlC.Delta + toneC.Delta
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	reasons := make([]string, 0, len(ruleC.Reasons)+len(urlC.Reasons)+len(toneC.Reasons))
	reasons = append(reasons, ruleC.Reasons...)
	reasons = append(reasons, urlC.Reasons...)
	reasons = append(reasons, toneC.Reasons...)

	assessment := Assessment{
		RiskAssessment: models.RiskAssessment{
			Score:   score,
			Level:   models.RiskLevelForScore(score),
			Reasons: reasons,
		},
		MaliciousURLFound: urlC.MaliciousURLFound,
		URLs:              urlC.URLs,
	}

	e.logger.Debug().
		Int("score", score).
		Str("level", string(assessment.Level)).
		Int("url_count", len(urlC.URLs)).
		Bool("malicious_url", urlC.MaliciousURLFound).
		Msg("risk assessment completed")

	return assessment
}

// AssessRisk is the plain core contract: it returns only the risk
// assessment for a submission.
func (e *RiskEngine) AssessRisk(ctx context.Context, narrative, iocIndicators, ocrText string) models.RiskAssessment {
	return e.Assess(ctx, narrative, iocIndicators, ocrText).RiskAssessment
}
