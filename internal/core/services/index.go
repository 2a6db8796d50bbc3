package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// sparseVector is a TF-IDF weighted document vector keyed by feature
// position. Vectors are L2-normalised at construction, so cosine
// similarity between two of them reduces to a dot product.
type sparseVector map[int]float64

// dot computes the dot product of two sparse vectors.
// Iterates the smaller one.
func (v sparseVector) dot(other sparseVector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for i, w := range v {
		if ow, ok := other[i]; ok {
			sum += w * ow
		}
	}
	return sum
}

// normalise scales the vector to unit L2 norm in place.
// An all-zero vector is left untouched, so its similarity to anything is 0.
func (v sparseVector) normalise() {
	var sq float64
	for _, w := range v {
		sq += w * w
	}
	if sq == 0 {
		return
	}
	norm := math.Sqrt(sq)
	for i, w := range v {
		v[i] = w / norm
	}
}

// Index is a TF-IDF term-weighting model fit over the corpus search
// texts at build time. It is an immutable snapshot: rebuilding is the
// only way to include newly ingested incidents. The fitted vocabulary is
// reused to vectorise query strings into the same feature space; terms
// unseen at fit time are ignored.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	vectors    []sparseVector

	stopWords map[string]struct{}
	ngramMin  int
	ngramMax  int
}

// FitIndex builds a TF-IDF index over the given search texts.
// An empty corpus yields a built-but-empty index whose searches return
// no results.
func FitIndex(searchTexts []string, settings domain.IndexSettings) *Index {
	maxFeatures := settings.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	ngramMin, ngramMax := settings.NgramMin, settings.NgramMax
	if ngramMin <= 0 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}

	idx := &Index{
		vocabulary: make(map[string]int),
		stopWords:  buildStopWordSet(settings.ExtraStopWords),
		ngramMin:   ngramMin,
		ngramMax:   ngramMax,
	}

	if len(searchTexts) == 0 {
		logger.Warn("Index fit over empty corpus, all searches will return no results")
		return idx
	}

	// First pass: term frequencies per document and corpus-wide counts.
	docTerms := make([]map[string]int, len(searchTexts))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, text := range searchTexts {
		counts := make(map[string]int)
		for _, term := range idx.analyse(text) {
			counts[term]++
		}
		docTerms[i] = counts
		for term, n := range counts {
			corpusFreq[term] += n
			docFreq[term]++
		}
	}

	// Cap the vocabulary at maxFeatures, keeping the most frequent terms.
	// Ties break alphabetically so the fitted model is deterministic.
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		if corpusFreq[terms[a]] != corpusFreq[terms[b]] {
			return corpusFreq[terms[a]] > corpusFreq[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// Feature positions are assigned in sorted term order, matching the
	// convention of fitted vectoriser vocabularies.
	sort.Strings(terms)
	for pos, term := range terms {
		idx.vocabulary[term] = pos
	}

	// Smoothed inverse document frequency: log((1+n)/(1+df)) + 1.
	n := float64(len(searchTexts))
	idx.idf = make([]float64, len(terms))
	for term, pos := range idx.vocabulary {
		df := float64(docFreq[term])
		idx.idf[pos] = math.Log((1+n)/(1+df)) + 1
	}

	// Second pass: weighted, normalised document vectors.
	idx.vectors = make([]sparseVector, len(searchTexts))
	for i, counts := range docTerms {
		vec := make(sparseVector)
		for term, tf := range counts {
			pos, ok := idx.vocabulary[term]
			if !ok {
				continue
			}
			vec[pos] = float64(tf) * idx.idf[pos]
		}
		vec.normalise()
		idx.vectors[i] = vec
	}

	logger.Debug("Index fit: %d documents, %d features", len(searchTexts), len(idx.vocabulary))
	return idx
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int {
	return len(idx.vectors)
}

// Features returns the fitted vocabulary size.
func (idx *Index) Features() int {
	return len(idx.vocabulary)
}

// Vectorise maps a query string into the fitted feature space.
// Terms unseen at fit time are ignored, not errors.
func (idx *Index) Vectorise(query string) sparseVector {
	vec := make(sparseVector)
	for _, term := range idx.analyse(query) {
		pos, ok := idx.vocabulary[term]
		if !ok {
			continue
		}
		vec[pos] += idx.idf[pos]
	}
	vec.normalise()
	return vec
}

// Similarities computes the cosine similarity between a query vector and
// every document vector, in document order.
func (idx *Index) Similarities(query sparseVector) []float64 {
	sims := make([]float64, len(idx.vectors))
	if len(query) == 0 {
		return sims
	}
	for i, vec := range idx.vectors {
		sims[i] = query.dot(vec)
	}
	return sims
}

// analyse tokenises text and expands the tokens into the configured
// n-gram range. Stop words are removed before n-grams are formed.
func (idx *Index) analyse(text string) []string {
	tokens := idx.tokenise(text)
	if idx.ngramMin == 1 && idx.ngramMax == 1 {
		return tokens
	}

	var terms []string
	for n := idx.ngramMin; n <= idx.ngramMax; n++ {
		if n == 1 {
			terms = append(terms, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// tokenise lowercases text and splits it into word tokens of at least
// two characters, dropping stop words.
func (idx *Index) tokenise(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() < 2 {
			current.Reset()
			return
		}
		tok := current.String()
		current.Reset()
		if _, stop := idx.stopWords[tok]; stop {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
