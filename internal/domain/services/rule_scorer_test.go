package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberguard-lab/pkg/logger"
)

func TestRuleScorer_Score(t *testing.T) {
	scorer := NewRuleScorer(logger.NewDefault())

	tests := []struct {
		name        string
		text        string
		iocProvided bool
		wantDelta   int
		wantReasons []string
	}{
		{
			name:      "neutral text scores zero",
			text:      "we met for coffee yesterday",
			wantDelta: 0,
		},
		{
			name:      "single high risk keyword",
			text:      "they asked for my password",
			wantDelta: 25,
			wantReasons: []string{
				"high risk keyword: password",
			},
		},
		{
			name:      "multi-word keyword matches as substring",
			text:      "the email said my account locked me out",
			wantDelta: 25,
			wantReasons: []string{
				"high risk keyword: account locked",
			},
		},
		{
			name:      "keyword inside larger word still matches",
			text:      "use your one-time passwords wisely",
			wantDelta: 25,
			wantReasons: []string{
				"high risk keyword: password",
			},
		},
		{
			name:      "repeated keyword counts once",
			text:      "password password password",
			wantDelta: 25,
			wantReasons: []string{
				"high risk keyword: password",
			},
		},
		{
			name:      "mixed categories in fixed reason order",
			text:      "urgent: verify your bank details via this link",
			wantDelta: 25 + 25 + 15 + 15,
			wantReasons: []string{
				"high risk keyword: bank",
				"high risk keyword: verify",
				"medium risk keyword: urgent",
				"medium risk keyword: link",
			},
		},
		{
			name:      "benign marketing keywords subtract",
			text:      "monthly newsletter with a special discount offer",
			wantDelta: -30,
			wantReasons: []string{
				"low risk indicator: newsletter",
				"low risk indicator: discount",
				"low risk indicator: offer",
			},
		},
		{
			name:        "evidence bonus appended last",
			text:        "they asked for my otp",
			iocProvided: true,
			wantDelta:   35,
			wantReasons: []string{
				"high risk keyword: otp",
				"evidence provided",
			},
		},
		{
			name:        "evidence bonus alone",
			text:        "something felt off about the call",
			iocProvided: true,
			wantDelta:   10,
			wantReasons: []string{
				"evidence provided",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scorer.Score(tt.text, tt.iocProvided)

			assert.Equal(t, tt.wantDelta, c.Delta)
			assert.Equal(t, tt.wantReasons, c.Reasons)
		})
	}
}

func TestContainsCredentialKeyword(t *testing.T) {
	assert.True(t, ContainsCredentialKeyword("please enter your password and otp"))
	assert.True(t, ContainsCredentialKeyword("we need to verify something"))
	assert.False(t, ContainsCredentialKeyword("see you at the meeting tomorrow"))
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name        string
		narrative   string
		ioc         string
		ocr         string
		wantRaw     string
		wantLowered string
	}{
		{
			name:        "all parts joined with single spaces",
			narrative:   "Suspicious Email",
			ioc:         "evil.test",
			ocr:         "Extracted",
			wantRaw:     "Suspicious Email evil.test Extracted",
			wantLowered: "suspicious email evil.test extracted",
		},
		{
			name:        "empty parts skipped",
			narrative:   "Narrative only",
			wantRaw:     "Narrative only",
			wantLowered: "narrative only",
		},
		{
			name: "all empty yields empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NormalizeText(tt.narrative, tt.ioc, tt.ocr)

			assert.Equal(t, tt.wantRaw, text.Raw)
			assert.Equal(t, tt.wantLowered, text.Lowered)
		})
	}
}

func TestUrgencyScore(t *testing.T) {
	assert.Equal(t, 15, UrgencyScore("Reply URGENT please"))
	assert.Equal(t, 15, UrgencyScore("do it immediately"))
	assert.Equal(t, 0, UrgencyScore("no rush at all"))
}
