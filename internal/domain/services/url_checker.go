package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"cyberguard-lab/internal/infrastructure/cache"
	"cyberguard-lab/pkg/logger"
)

// URL scoring weights
const (
	urlPresenceBonus  = 20
	maliciousURLBonus = 40

	verdictCacheTTL = 1 * time.Hour
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// ExtractURLs finds URL substrings in text, in order of appearance
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// URLContribution is the URL reputation signal's share of the risk score
type URLContribution struct {
	Contribution
	MaliciousURLFound bool
	URLs              []string
}

// URLChecker extracts URLs from submission text and checks them against
// an external reputation collaborator. Reputation failures never surface
// to the caller; they degrade to a not-malicious verdict.
type URLChecker struct {
	client  SafeBrowsingClient
	cache   *cache.RedisCache
	timeout time.Duration
	logger  *logger.Logger
}

// NewURLChecker creates a new URLChecker. cache may be nil; verdicts are
// then always fetched fresh.
func NewURLChecker(client SafeBrowsingClient, c *cache.RedisCache, timeout time.Duration, log *logger.Logger) *URLChecker {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &URLChecker{
		client:  client,
		cache:   c,
		timeout: timeout,
		logger:  log.WithComponent("url-checker"),
	}
}

// Check extracts URLs from the raw combined text and scores them. Any
// extracted URL earns the flat presence bonus once. URLs are then checked
// in extraction order; the first malicious verdict earns the malicious
// bonus and stops further lookups, so the bonus is awarded at most once
// and worst-case latency is bounded by the first match.
func (c *URLChecker) Check(ctx context.Context, rawText string) URLContribution {
	result := URLContribution{URLs: ExtractURLs(rawText)}
	if len(result.URLs) == 0 {
		return result
	}

	result.Delta += urlPresenceBonus
	result.Reasons = append(result.Reasons, "URL detected")

	for _, u := range result.URLs {
		if c.isMalicious(ctx, u) {
			result.Delta += maliciousURLBonus
			result.Reasons = append(result.Reasons, fmt.Sprintf("malicious URL identified: %s", u))
			result.MaliciousURLFound = true
			break
		}
	}

	return result
}

// isMalicious resolves one URL's verdict, consulting the verdict cache
// first. Every failure path (no client, no credentials, network error,
// non-2xx) fails open to not-malicious with a logged warning.
func (c *URLChecker) isMalicious(ctx context.Context, u string) bool {
	if c.client == nil {
		c.logger.Warn().Msg("no reputation client configured, skipping URL check")
		return false
	}

	urlHash := hashURL(u)
	if c.cache != nil {
		if verdict, err := c.cache.GetURLVerdict(ctx, urlHash); err == nil {
			return verdict
		}
	}

	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	malicious, err := c.client.IsMalicious(checkCtx, u)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", u).Msg("reputation lookup failed, treating URL as not malicious")
		return false
	}

	if c.cache != nil {
		if err := c.cache.CacheURLVerdict(ctx, urlHash, malicious, verdictCacheTTL); err != nil {
			c.logger.Debug().Err(err).Msg("failed to cache URL verdict")
		}
	}

	return malicious
}

// hashURL returns a stable cache key for a URL
func hashURL(u string) string {
	sum := sha256.Sum256([]byte(u))
	return hex.EncodeToString(sum[:])
}
