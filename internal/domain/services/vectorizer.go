package services

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// englishStopWords are dropped during tokenization so feature space stays
// focused on content words.
var englishStopWords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"am": true, "an": true, "and": true, "any": true, "are": true,
	"as": true, "at": true, "be": true, "been": true, "before": true,
	"but": true, "by": true, "can": true, "could": true, "did": true,
	"do": true, "does": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "here": true,
	"him": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "me": true, "my": true, "no": true, "not": true,
	"of": true, "on": true, "or": true, "our": true, "out": true,
	"please": true, "she": true, "so": true, "some": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"up": true, "us": true, "was": true, "we": true, "were": true,
	"what": true, "when": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

// TFIDFVectorizer converts text into fixed-width TF-IDF feature vectors.
// Fields are exported so a fitted vectorizer can be persisted with the
// model artifact.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

// NewTFIDFVectorizer creates an unfitted vectorizer
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{}
}

// tokenize splits text into lower-cased alphanumeric tokens with stop
// words removed
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || englishStopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Fit learns the vocabulary and inverse document frequencies from the
// training documents. Vocabulary order is sorted for determinism.
func (v *TFIDFVectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF, matching the convention of adding one virtual
		// document containing every term
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform converts one document into an L2-normalized TF-IDF vector.
// Out-of-vocabulary tokens are ignored.
func (v *TFIDFVectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, tok := range tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

// FitTransform fits the vectorizer and transforms the training documents
func (v *TFIDFVectorizer) FitTransform(docs []string) [][]float64 {
	v.Fit(docs)
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}
	return vectors
}

// NumFeatures returns the fitted vocabulary size
func (v *TFIDFVectorizer) NumFeatures() int {
	return len(v.IDF)
}
