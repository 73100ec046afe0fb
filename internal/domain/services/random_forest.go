package services

import (
	"math"
	"math/rand"
	"sort"

	"cyberguard-lab/pkg/logger"
)

// RandomForestConfig holds forest hyperparameters
type RandomForestConfig struct {
	NumTrees       int   // Number of trees (default: 100)
	MaxDepth       int   // Maximum tree depth (default: 10)
	MinSamplesLeaf int   // Minimum samples in leaf (default: 1)
	MaxFeatures    int   // Max features per split (default: sqrt(n_features))
	RandomSeed     int64 // Seed; fixed for reproducible training
}

// DefaultRandomForestConfig returns default configuration
func DefaultRandomForestConfig() RandomForestConfig {
	return RandomForestConfig{
		NumTrees:       100,
		MaxDepth:       10,
		MinSamplesLeaf: 1,
		MaxFeatures:    0,
		RandomSeed:     42,
	}
}

// RandomForest is an ensemble of Gini-split decision trees producing
// class probabilities. Tree state uses exported fields so a trained
// forest serializes with encoding/gob.
type RandomForest struct {
	Trees      []*TreeNode
	NumClasses int

	numTrees       int
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int
	rng            *rand.Rand
	logger         *logger.Logger
}

// TreeNode is one node of a decision tree
type TreeNode struct {
	Feature     int       // Feature index for split
	Threshold   float64   // Split threshold
	Left        *TreeNode // feature < threshold
	Right       *TreeNode // feature >= threshold
	Leaf        bool
	Probability []float64 // Class probabilities (leaf nodes)
}

// NewRandomForest creates a new random forest classifier
func NewRandomForest(cfg RandomForestConfig, numClasses int, log *logger.Logger) *RandomForest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = 1
	}

	return &RandomForest{
		NumClasses:     numClasses,
		numTrees:       cfg.NumTrees,
		maxDepth:       cfg.MaxDepth,
		minSamplesLeaf: cfg.MinSamplesLeaf,
		maxFeatures:    cfg.MaxFeatures,
		rng:            rand.New(rand.NewSource(cfg.RandomSeed)),
		logger:         log.WithComponent("random-forest"),
	}
}

// Train builds the forest from feature vectors and class-index labels
func (rf *RandomForest) Train(data [][]float64, labels []int) {
	n := len(data)
	if n == 0 || len(labels) != n {
		return
	}

	numFeatures := len(data[0])
	if rf.maxFeatures <= 0 {
		rf.maxFeatures = int(math.Sqrt(float64(numFeatures)))
		if rf.maxFeatures < 1 {
			rf.maxFeatures = 1
		}
	}

	rf.Trees = make([]*TreeNode, rf.numTrees)
	for i := 0; i < rf.numTrees; i++ {
		sampleData, sampleLabels := rf.bootstrapSample(data, labels)
		rf.Trees[i] = rf.buildNode(sampleData, sampleLabels, 0, numFeatures)
	}

	rf.logger.Info().
		Int("trees", rf.numTrees).
		Int("training_size", n).
		Int("features", numFeatures).
		Msg("random forest trained")
}

// PredictProba returns averaged class probabilities for a single vector
func (rf *RandomForest) PredictProba(point []float64) []float64 {
	probs := make([]float64, rf.NumClasses)
	if len(rf.Trees) == 0 {
		return probs
	}

	for _, root := range rf.Trees {
		leaf := descend(root, point)
		if leaf == nil {
			continue
		}
		for c, p := range leaf.Probability {
			probs[c] += p
		}
	}

	total := float64(len(rf.Trees))
	for c := range probs {
		probs[c] /= total
	}
	return probs
}

// IsTrained reports whether the forest has been trained or loaded
func (rf *RandomForest) IsTrained() bool {
	return len(rf.Trees) > 0
}

// descend walks a tree to its leaf for the given point
func descend(node *TreeNode, point []float64) *TreeNode {
	for node != nil && !node.Leaf {
		if node.Feature < len(point) && point[node.Feature] < node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// buildNode recursively builds tree nodes
func (rf *RandomForest) buildNode(data [][]float64, labels []int, depth, numFeatures int) *TreeNode {
	n := len(data)

	classCounts := make([]int, rf.NumClasses)
	for _, label := range labels {
		classCounts[label]++
	}

	if depth >= rf.maxDepth || n <= rf.minSamplesLeaf || isPure(classCounts) {
		return rf.createLeaf(classCounts, n)
	}

	bestFeature, bestThreshold, bestGain := rf.findBestSplit(data, labels, classCounts, numFeatures)
	if bestGain <= 0 {
		return rf.createLeaf(classCounts, n)
	}

	leftData, leftLabels, rightData, rightLabels := splitData(data, labels, bestFeature, bestThreshold)
	if len(leftData) == 0 || len(rightData) == 0 {
		return rf.createLeaf(classCounts, n)
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      rf.buildNode(leftData, leftLabels, depth+1, numFeatures),
		Right:     rf.buildNode(rightData, rightLabels, depth+1, numFeatures),
	}
}

// createLeaf creates a leaf node with class probabilities
func (rf *RandomForest) createLeaf(classCounts []int, total int) *TreeNode {
	probability := make([]float64, len(classCounts))
	if total > 0 {
		for c, count := range classCounts {
			probability[c] = float64(count) / float64(total)
		}
	}

	return &TreeNode{
		Leaf:        true,
		Probability: probability,
	}
}

// findBestSplit finds the best split using Gini impurity over a random
// feature subset
func (rf *RandomForest) findBestSplit(data [][]float64, labels []int, classCounts []int, numFeatures int) (int, float64, float64) {
	n := len(data)
	if n == 0 || numFeatures == 0 {
		return 0, 0, 0
	}

	currentGini := giniImpurity(classCounts, n)

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	for _, feature := range rf.selectRandomFeatures(numFeatures) {
		values := make([]float64, n)
		for i, point := range data {
			values[i] = point[feature]
		}
		sort.Float64s(values)

		for i := 0; i < n-1; i++ {
			if values[i] == values[i+1] {
				continue
			}
			threshold := (values[i] + values[i+1]) / 2

			leftCounts := make([]int, rf.NumClasses)
			rightCounts := make([]int, rf.NumClasses)
			leftTotal := 0
			rightTotal := 0

			for j, point := range data {
				if point[feature] < threshold {
					leftCounts[labels[j]]++
					leftTotal++
				} else {
					rightCounts[labels[j]]++
					rightTotal++
				}
			}

			if leftTotal == 0 || rightTotal == 0 {
				continue
			}

			leftGini := giniImpurity(leftCounts, leftTotal)
			rightGini := giniImpurity(rightCounts, rightTotal)
			weightedGini := (float64(leftTotal)*leftGini + float64(rightTotal)*rightGini) / float64(n)

			if gain := currentGini - weightedGini; gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// giniImpurity calculates Gini impurity
func giniImpurity(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}

	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		impurity -= p * p
	}
	return impurity
}

// isPure checks if all samples belong to one class
func isPure(classCounts []int) bool {
	nonZero := 0
	for _, count := range classCounts {
		if count > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// splitData splits data based on feature and threshold
func splitData(data [][]float64, labels []int, feature int, threshold float64) ([][]float64, []int, [][]float64, []int) {
	var leftData, rightData [][]float64
	var leftLabels, rightLabels []int

	for i, point := range data {
		if point[feature] < threshold {
			leftData = append(leftData, point)
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightData = append(rightData, point)
			rightLabels = append(rightLabels, labels[i])
		}
	}

	return leftData, leftLabels, rightData, rightLabels
}

// selectRandomFeatures randomly selects features to consider for a split
func (rf *RandomForest) selectRandomFeatures(numFeatures int) []int {
	if rf.maxFeatures >= numFeatures {
		features := make([]int, numFeatures)
		for i := range features {
			features[i] = i
		}
		return features
	}

	indices := make([]int, numFeatures)
	for i := range indices {
		indices[i] = i
	}

	// Fisher-Yates shuffle for the first maxFeatures elements
	for i := 0; i < rf.maxFeatures; i++ {
		j := i + rf.rng.Intn(numFeatures-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices[:rf.maxFeatures]
}

// bootstrapSample creates a bootstrap sample of the data
func (rf *RandomForest) bootstrapSample(data [][]float64, labels []int) ([][]float64, []int) {
	n := len(data)
	sampleData := make([][]float64, n)
	sampleLabels := make([]int, n)

	for i := 0; i < n; i++ {
		idx := rf.rng.Intn(n)
		sampleData[i] = data[idx]
		sampleLabels[i] = labels[idx]
	}

	return sampleData, sampleLabels
}
