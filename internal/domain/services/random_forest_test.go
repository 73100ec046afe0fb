package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-lab/pkg/logger"
)

// separableTrainingSet returns two well-separated classes in 2D
func separableTrainingSet() ([][]float64, []int) {
	data := [][]float64{
		{0.1, 0.2}, {0.2, 0.1}, {0.15, 0.25}, {0.05, 0.1}, {0.2, 0.2},
		{0.9, 0.8}, {0.8, 0.9}, {0.85, 0.75}, {0.95, 0.9}, {0.8, 0.8},
	}
	labels := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return data, labels
}

func TestRandomForest_TrainAndPredict(t *testing.T) {
	data, labels := separableTrainingSet()

	rf := NewRandomForest(RandomForestConfig{NumTrees: 20, MaxDepth: 5, RandomSeed: 42}, 2, logger.NewDefault())
	rf.Train(data, labels)

	require.True(t, rf.IsTrained())

	lowProbs := rf.PredictProba([]float64{0.1, 0.15})
	highProbs := rf.PredictProba([]float64{0.9, 0.85})

	assert.Greater(t, lowProbs[0], lowProbs[1], "point near class 0 cluster")
	assert.Greater(t, highProbs[1], highProbs[0], "point near class 1 cluster")
}

func TestRandomForest_ProbabilitiesSumToOne(t *testing.T) {
	data, labels := separableTrainingSet()

	rf := NewRandomForest(RandomForestConfig{NumTrees: 15, MaxDepth: 4, RandomSeed: 7}, 2, logger.NewDefault())
	rf.Train(data, labels)

	probs := rf.PredictProba([]float64{0.5, 0.5})

	var sum float64
	for _, p := range probs {
		require.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRandomForest_DeterministicWithFixedSeed(t *testing.T) {
	data, labels := separableTrainingSet()
	cfg := RandomForestConfig{NumTrees: 10, MaxDepth: 5, RandomSeed: 42}

	a := NewRandomForest(cfg, 2, logger.NewDefault())
	b := NewRandomForest(cfg, 2, logger.NewDefault())
	a.Train(data, labels)
	b.Train(data, labels)

	points := [][]float64{{0.1, 0.1}, {0.5, 0.4}, {0.9, 0.95}}
	for _, p := range points {
		assert.Equal(t, a.PredictProba(p), b.PredictProba(p))
	}
}

func TestRandomForest_UntrainedReturnsZeroProbs(t *testing.T) {
	rf := NewRandomForest(DefaultRandomForestConfig(), 3, logger.NewDefault())

	assert.False(t, rf.IsTrained())
	assert.Equal(t, []float64{0, 0, 0}, rf.PredictProba([]float64{1, 2, 3}))
}
