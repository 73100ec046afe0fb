package services

import (
	"fmt"
	"strings"

	"cyberguard-lab/pkg/logger"
)

// Contribution is one scoring signal's share of the final risk score,
// together with the human-readable reasons it contributes.
type Contribution struct {
	Delta   int
	Reasons []string
}

// Keyword sets scanned by the rule scorer. Iteration order is fixed so
// reason lists are reproducible across runs.
var (
	highRiskKeywords   = []string{"password", "bank", "otp", "login", "verify", "account locked"}
	mediumRiskKeywords = []string{"urgent", "click", "link", "security alert", "update"}
	lowRiskKeywords    = []string{"newsletter", "promotion", "discount", "offer"}
)

// Per-keyword weights
const (
	highRiskWeight   = 25
	mediumRiskWeight = 15
	lowRiskWeight    = -10
	evidenceBonus    = 10
)

// RuleScorer scans submission text for weighted keyword categories
type RuleScorer struct {
	logger *logger.Logger
}

// NewRuleScorer creates a new RuleScorer
func NewRuleScorer(log *logger.Logger) *RuleScorer {
	return &RuleScorer{
		logger: log.WithComponent("rule-scorer"),
	}
}

// Score scans the lower-cased text for keyword matches. Matching is
// substring containment, not word matching, and each distinct keyword
// counts at most once. iocProvided adds the flat evidence bonus.
func (s *RuleScorer) Score(lowered string, iocProvided bool) Contribution {
	var c Contribution

	for _, word := range highRiskKeywords {
		if strings.Contains(lowered, word) {
			c.Delta += highRiskWeight
			c.Reasons = append(c.Reasons, fmt.Sprintf("high risk keyword: %s", word))
		}
	}

	for _, word := range mediumRiskKeywords {
		if strings.Contains(lowered, word) {
			c.Delta += mediumRiskWeight
			c.Reasons = append(c.Reasons, fmt.Sprintf("medium risk keyword: %s", word))
		}
	}

	for _, word := range lowRiskKeywords {
		if strings.Contains(lowered, word) {
			c.Delta += lowRiskWeight
			c.Reasons = append(c.Reasons, fmt.Sprintf("low risk indicator: %s", word))
		}
	}

	if iocProvided {
		c.Delta += evidenceBonus
		c.Reasons = append(c.Reasons, "evidence provided")
	}

	return c
}

// ContainsCredentialKeyword reports whether the text carries credential
// harvesting wording. The hybrid classifier cascade uses this as its
// second rule.
func ContainsCredentialKeyword(lowered string) bool {
	for _, word := range []string{"otp", "password", "bank", "verify", "login"} {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
