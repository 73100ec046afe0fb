package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/pkg/logger"
)

func testClassifierConfig(modelPath string) config.ClassifierConfig {
	return config.ClassifierConfig{
		ModelPath:      modelPath,
		NumTrees:       25,
		MaxDepth:       10,
		MinSamplesLeaf: 1,
		RandomSeed:     42,
		TrustThreshold: 0.6,
	}
}

func TestClassifierService_TrainsAndPersists(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "models", "threat_model.gob")

	svc, err := NewClassifierService(testClassifierConfig(modelPath), logger.NewDefault())
	require.NoError(t, err)

	_, statErr := os.Stat(modelPath)
	assert.NoError(t, statErr, "trained model should be persisted")

	prediction := svc.Predict("Enter your password here to continue using the service")
	assert.True(t, prediction.Type.Valid())
	assert.GreaterOrEqual(t, prediction.Confidence, 0.0)
	assert.LessOrEqual(t, prediction.Confidence, 1.0)
}

func TestClassifierService_LoadedModelPredictsIdentically(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "threat_model.gob")
	cfg := testClassifierConfig(modelPath)

	trained, err := NewClassifierService(cfg, logger.NewDefault())
	require.NoError(t, err)

	loaded, err := NewClassifierService(cfg, logger.NewDefault())
	require.NoError(t, err)

	samples := []string{
		"Your account has been suspended. Please verify your identity",
		"Download this attachment to view the invoice",
		"Hello, how are you? Just checking in.",
	}
	for _, text := range samples {
		assert.Equal(t, trained.Predict(text), loaded.Predict(text), "text %q", text)
	}
}

func TestClassifierService_CorruptArtifactTriggersRetrain(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "threat_model.gob")
	require.NoError(t, os.WriteFile(modelPath, []byte("not a gob artifact"), 0o644))

	svc, err := NewClassifierService(testClassifierConfig(modelPath), logger.NewDefault())
	require.NoError(t, err)

	prediction := svc.Predict("Please provide your OTP to confirm the transaction")
	assert.True(t, prediction.Type.Valid())
}

func TestClassifierService_Classify_HybridOverrides(t *testing.T) {
	svc, err := NewClassifierService(testClassifierConfig(""), logger.NewDefault())
	require.NoError(t, err)

	// Text with no training vocabulary keeps model confidence low, so
	// the rule cascade decides.
	gibberish := "xyzzy plugh unrelated wording"

	t.Run("malicious url wins first", func(t *testing.T) {
		c := svc.Classify(gibberish, true, 0)

		assert.Equal(t, models.ThreatTypeMaliciousLink, c.Type)
		assert.Equal(t, 1.0, c.Confidence)
	})

	t.Run("credential keywords rank second", func(t *testing.T) {
		// A service without a trained model predicts with confidence 0,
		// which never clears the trust threshold, so the outcome below
		// is the cascade's alone.
		weak := &ClassifierService{
			classes:        models.ThreatTypes(),
			trustThreshold: 0.6,
			logger:         logger.NewDefault().WithComponent("threat-classifier"),
		}

		c := weak.Classify("please enter your password and otp", false, 0)

		assert.Equal(t, models.ThreatTypeCredentialTheft, c.Type)
		assert.Equal(t, 0.9, c.Confidence)

		// The trained model agrees on the category either way
		assert.Equal(t, models.ThreatTypeCredentialTheft, svc.Classify("please enter your password and otp", false, 0).Type)
	})

	t.Run("urgency ranks third", func(t *testing.T) {
		c := svc.Classify(gibberish, false, 15)

		assert.Equal(t, models.ThreatTypeSocialEngineering, c.Type)
		assert.Equal(t, 0.8, c.Confidence)
	})

	t.Run("urgency of exactly 10 does not trigger override", func(t *testing.T) {
		atThreshold := svc.Classify(gibberish, false, 10)
		noUrgency := svc.Classify(gibberish, false, 0)

		assert.Equal(t, noUrgency, atThreshold)
		assert.True(t, atThreshold.Type.Valid())
	})
}
