package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDFVectorizer_Fit(t *testing.T) {
	v := NewTFIDFVectorizer()
	v.Fit([]string{
		"verify your bank account",
		"the bank sent a newsletter",
	})

	// Stop words and single-char tokens never enter the vocabulary
	assert.NotContains(t, v.Vocabulary, "your")
	assert.NotContains(t, v.Vocabulary, "the")
	assert.NotContains(t, v.Vocabulary, "a")

	assert.Contains(t, v.Vocabulary, "bank")
	assert.Contains(t, v.Vocabulary, "verify")
	assert.Contains(t, v.Vocabulary, "newsletter")
	assert.Equal(t, len(v.Vocabulary), v.NumFeatures())

	// A term in every document carries less weight than a rarer one
	assert.Less(t, v.IDF[v.Vocabulary["bank"]], v.IDF[v.Vocabulary["verify"]])
}

func TestTFIDFVectorizer_Transform(t *testing.T) {
	v := NewTFIDFVectorizer()
	v.Fit([]string{
		"click the link to claim your prize",
		"quarterly report attached for review",
	})

	t.Run("vector is L2 normalized", func(t *testing.T) {
		vec := v.Transform("click the link")

		var norm float64
		for _, x := range vec {
			norm += x * x
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	})

	t.Run("out of vocabulary text maps to zero vector", func(t *testing.T) {
		vec := v.Transform("completely unrelated wording")

		for i, x := range vec {
			require.Zero(t, x, "feature %d", i)
		}
	})

	t.Run("transform is case insensitive", func(t *testing.T) {
		assert.Equal(t, v.Transform("CLICK THE LINK"), v.Transform("click the link"))
	})
}

func TestTFIDFVectorizer_DeterministicAcrossFits(t *testing.T) {
	docs := []string{
		"verify your bank login",
		"download this attachment now",
		"monthly newsletter and offers",
	}

	a := NewTFIDFVectorizer()
	b := NewTFIDFVectorizer()
	a.Fit(docs)
	b.Fit(docs)

	assert.Equal(t, a.Vocabulary, b.Vocabulary)
	assert.Equal(t, a.IDF, b.IDF)
}
