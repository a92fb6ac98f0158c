// Package model implements the statistical text classifier behind the text
// and OCR stages. A multinomial naive Bayes estimator is trained once at
// process start from a small embedded corpus, giving deterministic
// predictions without an external artefact to load.
package model

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z][a-z0-9_]+`)

// NaiveBayes is a multinomial naive Bayes classifier over a bag-of-words
// vocabulary. Immutable after construction; safe for concurrent use.
type NaiveBayes struct {
	labels []string
	vocab  map[string]int

	logPrior []float64
	// logLikelihood[label][token] with Laplace smoothing applied.
	logLikelihood [][]float64
	// log probability of an in-vocabulary-but-unseen token per label.
	logUnseen []float64
}

// NewSeeded trains a classifier on the embedded seed corpus.
func NewSeeded() *NaiveBayes {
	return Train(seedCorpus)
}

// Train fits the estimator on corpus, a map from label to example documents.
// Label order is normalized so identical corpora always produce identical
// models.
func Train(corpus map[string][]string) *NaiveBayes {
	labels := make([]string, 0, len(corpus))
	for label := range corpus {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	vocab := make(map[string]int)
	counts := make([]map[int]int, len(labels))
	docTotals := make([]int, len(labels))
	tokenTotals := make([]int, len(labels))
	totalDocs := 0

	for i, label := range labels {
		counts[i] = make(map[int]int)
		for _, doc := range corpus[label] {
			docTotals[i]++
			totalDocs++
			for _, tok := range Tokenize(doc) {
				idx, ok := vocab[tok]
				if !ok {
					idx = len(vocab)
					vocab[tok] = idx
				}
				counts[i][idx]++
				tokenTotals[i]++
			}
		}
	}

	m := &NaiveBayes{
		labels:        labels,
		vocab:         vocab,
		logPrior:      make([]float64, len(labels)),
		logLikelihood: make([][]float64, len(labels)),
		logUnseen:     make([]float64, len(labels)),
	}

	vocabSize := float64(len(vocab))
	for i := range labels {
		m.logPrior[i] = math.Log(float64(docTotals[i]) / float64(totalDocs))
		denom := float64(tokenTotals[i]) + vocabSize
		m.logUnseen[i] = math.Log(1.0 / denom)
		m.logLikelihood[i] = make([]float64, len(vocab))
		for idx := range len(vocab) {
			m.logLikelihood[i][idx] = math.Log((float64(counts[i][idx]) + 1.0) / denom)
		}
	}
	return m
}

// Predict returns the most probable label for text with its posterior
// probability. Text with no in-vocabulary token yields ("", 0, nil): the
// model has no opinion and the caller falls back to heuristics.
func (m *NaiveBayes) Predict(text string) (string, float64, error) {
	tokens := Tokenize(text)
	known := 0
	scores := make([]float64, len(m.labels))
	copy(scores, m.logPrior)

	for _, tok := range tokens {
		idx, ok := m.vocab[tok]
		if !ok {
			continue
		}
		known++
		for i := range scores {
			scores[i] += m.logLikelihood[i][idx]
		}
	}
	if known == 0 {
		return "", 0, nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Posterior via log-sum-exp for numeric stability.
	maxScore := scores[best]
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - maxScore)
	}
	return m.labels[best], 1.0 / sum, nil
}

// Labels returns the trained label vocabulary in sorted order.
func (m *NaiveBayes) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Tokenize lowercases text and extracts word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
