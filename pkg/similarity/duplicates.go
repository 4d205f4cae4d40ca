package similarity

import "github.com/OFFIS-RIT/feedlens/pkg/common"

// DefaultDuplicateThreshold is the similarity a pair must exceed to count
// as a near duplicate.
const DefaultDuplicateThreshold = 0.9

// FindDuplicates returns every pair (i, j) with i < j whose similarity is
// strictly greater than threshold. Pairs are ordered by i, then j.
func FindDuplicates(sentences []common.Sentence, m *Matrix, threshold float64) []common.DuplicatePair {
	n := min(len(sentences), m.Len())

	var out []common.DuplicatePair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := m.At(i, j)
			if score > threshold {
				out = append(out, common.DuplicatePair{
					A:     sentences[i],
					B:     sentences[j],
					Score: score,
				})
			}
		}
	}
	return out
}
