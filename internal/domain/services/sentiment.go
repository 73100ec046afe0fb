package services

import (
	"github.com/jonreiter/govader"

	"cyberguard-lab/pkg/logger"
)

// Sentiment thresholds over the VADER compound polarity in [-1, 1]
const (
	strongNegativeThreshold = -0.5
	mildNegativeThreshold   = -0.2

	strongNegativeBonus = 15
	mildNegativeBonus   = 8
)

// SentimentScorer scores emotional pressure and urgency tone using
// lexicon-based VADER polarity analysis. Case matters to the lexicon, so
// it always receives the raw-case combined text.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
	logger   *logger.Logger
}

// NewSentimentScorer creates a new SentimentScorer
func NewSentimentScorer(log *logger.Logger) *SentimentScorer {
	return &SentimentScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		logger:   log.WithComponent("sentiment-scorer"),
	}
}

// Score analyzes the raw-case text and returns the tone contribution.
// An unavailable analyzer degrades to a zero contribution; scoring must
// never abort because the lexicon could not be loaded.
func (s *SentimentScorer) Score(raw string) Contribution {
	if s.analyzer == nil {
		s.logger.Warn().Msg("sentiment analyzer unavailable, skipping tone scoring")
		return Contribution{}
	}

	compound := s.analyzer.PolarityScores(raw).Compound

	switch {
	case compound <= strongNegativeThreshold:
		return Contribution{
			Delta:   strongNegativeBonus,
			Reasons: []string{"strong negative / fear tone detected"},
		}
	case compound < mildNegativeThreshold:
		return Contribution{
			Delta:   mildNegativeBonus,
			Reasons: []string{"mild urgency tone detected"},
		}
	default:
		return Contribution{}
	}
}
