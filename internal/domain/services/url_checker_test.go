package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberguard-lab/pkg/logger"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no urls",
			text: "nothing suspicious here",
			want: nil,
		},
		{
			name: "http and https in order of appearance",
			text: "see http://first.test/a then https://second.test/b",
			want: []string{"http://first.test/a", "https://second.test/b"},
		},
		{
			name: "url runs to next whitespace",
			text: "go to https://evil.test/login?next=/home now",
			want: []string{"https://evil.test/login?next=/home"},
		},
		{
			name: "bare domain without scheme ignored",
			text: "visit evil.test for details",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}

func TestURLChecker_Check(t *testing.T) {
	log := logger.NewDefault()

	t.Run("no urls yields empty contribution", func(t *testing.T) {
		checker := NewURLChecker(NewMockSafeBrowsingClient(), nil, 0, log)

		result := checker.Check(context.Background(), "plain text")

		assert.Zero(t, result.Delta)
		assert.Empty(t, result.Reasons)
		assert.False(t, result.MaliciousURLFound)
	})

	t.Run("presence bonus awarded once for clean urls", func(t *testing.T) {
		checker := NewURLChecker(NewMockSafeBrowsingClient(), nil, 0, log)

		result := checker.Check(context.Background(), "http://a.test/x and http://b.test/y")

		assert.Equal(t, 20, result.Delta)
		assert.Equal(t, []string{"URL detected"}, result.Reasons)
		assert.False(t, result.MaliciousURLFound)
	})

	t.Run("first malicious url stops further lookups", func(t *testing.T) {
		client := &MockSafeBrowsingClient{ThreatURLs: map[string]bool{
			"http://bad.test/1": true,
			"http://bad.test/2": true,
		}}
		checker := NewURLChecker(client, nil, 0, log)

		result := checker.Check(context.Background(), "http://clean.test/ http://bad.test/1 http://bad.test/2")

		assert.Equal(t, 60, result.Delta)
		assert.Equal(t, []string{
			"URL detected",
			"malicious URL identified: http://bad.test/1",
		}, result.Reasons)
		assert.True(t, result.MaliciousURLFound)
		assert.Equal(t, []string{"http://clean.test/", "http://bad.test/1"}, client.Calls)
	})

	t.Run("lookup errors fail open", func(t *testing.T) {
		client := &MockSafeBrowsingClient{Err: errors.New("api unreachable")}
		checker := NewURLChecker(client, nil, 0, log)

		result := checker.Check(context.Background(), "click http://unknown.test/")

		assert.Equal(t, 20, result.Delta)
		assert.Equal(t, []string{"URL detected"}, result.Reasons)
		assert.False(t, result.MaliciousURLFound)
	})

	t.Run("nil client still awards presence bonus", func(t *testing.T) {
		checker := NewURLChecker(nil, nil, 0, log)

		result := checker.Check(context.Background(), "see https://somewhere.test/")

		assert.Equal(t, 20, result.Delta)
		assert.False(t, result.MaliciousURLFound)
	})
}
