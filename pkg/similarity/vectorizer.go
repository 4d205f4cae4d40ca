// Package similarity implements the TF-IDF vector space used to compare
// feedback sentences: vectorization, the pairwise cosine matrix, near
// duplicate detection and seed-similarity clustering.
package similarity

import (
	"math"
	"regexp"
	"sort"

	"github.com/OFFIS-RIT/feedlens/pkg/common"

	"gonum.org/v1/gonum/floats"
)

// tokens are runs of at least two word characters
var reToken = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vectors is the TF-IDF representation of one batch of sentences. The
// vocabulary is local to the batch it was built from.
type Vectors struct {
	Vocabulary []string
	rows       [][]float64
	norms      []float64
}

// Len returns the number of vectors.
func (v *Vectors) Len() int {
	return len(v.rows)
}

// Row returns the weighted term vector of sentence i, indexed like
// Vocabulary.
func (v *Vectors) Row(i int) []float64 {
	return v.rows[i]
}

// Vectorize builds a TF-IDF vector for every sentence over the vocabulary
// observed in sentences. Term weights are raw counts times the smoothed
// inverse document frequency ln((1+n)/(1+df))+1.
//
// Fewer than two sentences is an InsufficientDataError.
func Vectorize(sentences []common.Sentence) (*Vectors, error) {
	if len(sentences) < 2 {
		return nil, &InsufficientDataError{Count: len(sentences)}
	}

	docs := make([][]string, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		docs[i] = reToken.FindAllString(s.Text, -1)
		seen := make(map[string]bool, len(docs[i]))
		for _, tok := range docs[i] {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	for i, tok := range vocab {
		index[tok] = i
	}

	n := float64(len(sentences))
	idf := make([]float64, len(vocab))
	for i, tok := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	rows := make([][]float64, len(docs))
	norms := make([]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(vocab))
		for _, tok := range doc {
			row[index[tok]]++
		}
		if len(vocab) > 0 {
			floats.Mul(row, idf)
			norms[i] = floats.Norm(row, 2)
		}
		rows[i] = row
	}

	return &Vectors{Vocabulary: vocab, rows: rows, norms: norms}, nil
}
