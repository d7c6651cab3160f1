// Package ranking scores candidates against job postings: BM25 text relevance plus the
// rule-based composite score with its explanation trail.
package ranking

import (
	"math"
	"regexp"
	"strings"
)

// maxTermScore is the per-term score treated as a perfect hit when normalizing to 0-100
const maxTermScore = 8.0

var tokenStrip = regexp.MustCompile(`[^\w\s]`)

// BM25 holds the ranking function's tuning parameters
type BM25 struct {
	K1 float64
	B  float64
}

// DefaultBM25 is the standard parameterization (k1=1.5, b=0.75)
var DefaultBM25 = BM25{K1: 1.5, B: 0.75}

// Tokenize lower-cases text, replaces punctuation with spaces and keeps tokens longer than two characters
func Tokenize(text string) []string {
	cleaned := tokenStrip.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// IDF returns the inverse document frequency of term in corpus.
// A document counts toward the frequency when its lower-cased text contains the term
// anywhere, not only as a whole token. Terms found in no document get 0.
func IDF(term string, corpus []string) float64 {
	needle := strings.ToLower(term)
	df := 0
	for _, doc := range corpus {
		if strings.Contains(strings.ToLower(doc), needle) {
			df++
		}
	}
	if df == 0 {
		return 0
	}
	n := float64(len(corpus))
	return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// Score computes the raw BM25 score of document for query within corpus.
// Terms are summed in query order so the result is reproducible bit for bit.
func (p BM25) Score(query, document string, corpus []string) float64 {
	if len(corpus) == 0 {
		return 0
	}

	totalLen := 0
	for _, doc := range corpus {
		totalLen += len(Tokenize(doc))
	}
	avgDocLen := float64(totalLen) / float64(len(corpus))
	if avgDocLen == 0 {
		return 0
	}

	docTokens := Tokenize(document)
	docLen := float64(len(docTokens))
	counts := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		counts[tok]++
	}

	score := 0.0
	for _, term := range Tokenize(query) {
		idf := IDF(term, corpus)
		tf := float64(counts[term])

		numerator := tf * (p.K1 + 1)
		denominator := tf + p.K1*(1-p.B+p.B*(docLen/avgDocLen))
		if denominator == 0 {
			continue
		}
		score += idf * (numerator / denominator)
	}
	return score
}

// NormalizedScore maps the raw score onto 0-100, where every query term scoring
// maxTermScore would be 100.
func (p BM25) NormalizedScore(query, document string, corpus []string) float64 {
	terms := len(Tokenize(query))
	if terms == 0 {
		return 0
	}

	raw := p.Score(query, document, corpus)
	normalized := raw / (float64(terms) * maxTermScore) * 100
	return clamp(normalized, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
