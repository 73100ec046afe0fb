package services

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/pkg/logger"
)

// credentialTheftConfidence and friends are the fixed confidences the
// hybrid cascade assigns when a rule overrides a weak model prediction
const (
	maliciousLinkConfidence     = 1.0
	credentialTheftConfidence   = 0.9
	socialEngineeringConfidence = 0.8
)

// modelArtifact is the on-disk shape of a trained threat model
type modelArtifact struct {
	Vectorizer *TFIDFVectorizer
	Forest     *RandomForest
	Classes    []models.ThreatType
}

// ClassifierService predicts threat categories for incident text.
// Construction either loads a persisted model artifact or trains one
// from the embedded corpus and persists it, so later processes start
// from disk. All methods on a constructed service are read-only.
type ClassifierService struct {
	vectorizer     *TFIDFVectorizer
	forest         *RandomForest
	classes        []models.ThreatType
	trustThreshold float64
	logger         *logger.Logger
}

// NewClassifierService builds the service, loading or training the model
func NewClassifierService(cfg config.ClassifierConfig, log *logger.Logger) (*ClassifierService, error) {
	svc := &ClassifierService{
		classes:        models.ThreatTypes(),
		trustThreshold: cfg.TrustThreshold,
		logger:         log.WithComponent("threat-classifier"),
	}
	if svc.trustThreshold <= 0 {
		svc.trustThreshold = 0.6
	}

	if err := svc.loadModel(cfg.ModelPath); err == nil {
		svc.logger.Info().Str("path", cfg.ModelPath).Msg("threat model loaded")
		return svc, nil
	} else if !os.IsNotExist(err) {
		svc.logger.Warn().Err(err).Str("path", cfg.ModelPath).Msg("failed to load threat model, retraining")
	}

	svc.train(cfg)

	if cfg.ModelPath != "" {
		if err := svc.saveModel(cfg.ModelPath); err != nil {
			svc.logger.Warn().Err(err).Str("path", cfg.ModelPath).Msg("failed to persist threat model")
		} else {
			svc.logger.Info().Str("path", cfg.ModelPath).Msg("threat model trained and saved")
		}
	}

	return svc, nil
}

// train fits the vectorizer and forest on the embedded corpus
func (s *ClassifierService) train(cfg config.ClassifierConfig) {
	texts := make([]string, len(threatTrainingCorpus))
	labels := make([]int, len(threatTrainingCorpus))

	classIndex := make(map[models.ThreatType]int, len(s.classes))
	for i, c := range s.classes {
		classIndex[c] = i
	}

	for i, ex := range threatTrainingCorpus {
		texts[i] = ex.text
		labels[i] = classIndex[ex.label]
	}

	s.vectorizer = NewTFIDFVectorizer()
	vectors := s.vectorizer.FitTransform(texts)

	s.forest = NewRandomForest(RandomForestConfig{
		NumTrees:       cfg.NumTrees,
		MaxDepth:       cfg.MaxDepth,
		MinSamplesLeaf: cfg.MinSamplesLeaf,
		RandomSeed:     cfg.RandomSeed,
	}, len(s.classes), s.logger)
	s.forest.Train(vectors, labels)
}

// loadModel restores a persisted artifact from disk
func (s *ClassifierService) loadModel(path string) error {
	if path == "" {
		return os.ErrNotExist
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var artifact modelArtifact
	if err := gob.NewDecoder(f).Decode(&artifact); err != nil {
		return fmt.Errorf("decode model artifact: %w", err)
	}
	if artifact.Vectorizer == nil || artifact.Forest == nil || !artifact.Forest.IsTrained() {
		return fmt.Errorf("model artifact at %s is incomplete", path)
	}
	if len(artifact.Classes) != len(s.classes) {
		return fmt.Errorf("model artifact has %d classes, expected %d", len(artifact.Classes), len(s.classes))
	}
	for i, c := range artifact.Classes {
		if c != s.classes[i] {
			return fmt.Errorf("model artifact class %q does not match %q", c, s.classes[i])
		}
	}

	s.vectorizer = artifact.Vectorizer
	s.forest = artifact.Forest
	return nil
}

// saveModel writes the trained artifact to disk
func (s *ClassifierService) saveModel(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	artifact := modelArtifact{
		Vectorizer: s.vectorizer,
		Forest:     s.forest,
		Classes:    s.classes,
	}
	if err := gob.NewEncoder(f).Encode(&artifact); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Predict returns the model's best category and its confidence
func (s *ClassifierService) Predict(text string) models.ThreatClassification {
	if s.vectorizer == nil || s.forest == nil {
		return models.ThreatClassification{Type: models.ThreatTypeSuspiciousMessage, Confidence: 0}
	}

	vec := s.vectorizer.Transform(strings.ToLower(text))
	probs := s.forest.PredictProba(vec)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	return models.ThreatClassification{
		Type:       s.classes[best],
		Confidence: probs[best],
	}
}

// Classify combines the model prediction with deterministic rule
// overrides. A confident model wins outright. Below the trust
// threshold the overrides fire in priority order, and if none apply
// the weak model prediction stands.
func (s *ClassifierService) Classify(text string, maliciousURLFound bool, urgencyScore int) models.ThreatClassification {
	prediction := s.Predict(text)
	if prediction.Confidence > s.trustThreshold {
		return prediction
	}

	lowered := strings.ToLower(text)
	switch {
	case maliciousURLFound:
		return models.ThreatClassification{Type: models.ThreatTypeMaliciousLink, Confidence: maliciousLinkConfidence}
	case ContainsCredentialKeyword(lowered):
		return models.ThreatClassification{Type: models.ThreatTypeCredentialTheft, Confidence: credentialTheftConfidence}
	case urgencyScore > 10:
		return models.ThreatClassification{Type: models.ThreatTypeSocialEngineering, Confidence: socialEngineeringConfidence}
	}

	return prediction
}
