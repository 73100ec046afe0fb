package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberguard-lab/pkg/logger"
)

func TestSentimentScorer_Score(t *testing.T) {
	scorer := NewSentimentScorer(logger.NewDefault())

	t.Run("fear laden text earns the strong bonus", func(t *testing.T) {
		c := scorer.Score("I am terrified and scared, this is a horrible horrible threat and I am panicking")

		assert.Equal(t, 15, c.Delta)
		assert.Equal(t, []string{"strong negative / fear tone detected"}, c.Reasons)
	})

	t.Run("mildly uneasy text earns the mild bonus", func(t *testing.T) {
		// "worried" alone carries lexicon weight here; its compound
		// lands between the mild and strong thresholds
		c := scorer.Score("I am worried about this message")

		assert.Equal(t, 8, c.Delta)
		assert.Equal(t, []string{"mild urgency tone detected"}, c.Reasons)
	})

	t.Run("neutral text contributes nothing", func(t *testing.T) {
		c := scorer.Score("The meeting is scheduled for Tuesday at the main office")

		assert.Zero(t, c.Delta)
		assert.Empty(t, c.Reasons)
	})

	t.Run("positive text contributes nothing", func(t *testing.T) {
		c := scorer.Score("What a wonderful day, everything is great and I am happy")

		assert.Zero(t, c.Delta)
		assert.Empty(t, c.Reasons)
	})

	t.Run("unavailable analyzer degrades to zero", func(t *testing.T) {
		broken := &SentimentScorer{logger: logger.NewDefault().WithComponent("sentiment-scorer")}

		c := broken.Score("I am terrified")

		assert.Zero(t, c.Delta)
		assert.Empty(t, c.Reasons)
	})
}
