package similarity

import "github.com/OFFIS-RIT/feedlens/pkg/common"

// DefaultClusterThreshold is the similarity to a seed a sentence must exceed
// to join the seed's cluster.
const DefaultClusterThreshold = 0.6

// SeedClusters groups sentences with seed-similarity clustering.
//
// Indices are scanned in ascending order. Every sentence not yet claimed
// becomes a seed and claims all later unclaimed sentences whose similarity
// to the seed (not to the other members) is strictly greater than
// threshold. A seed that claims nothing is dropped and stays unclustered.
//
// The result depends on sentence order and clusters never merge across
// seeds, even when their members are similar. Callers rely on exactly this
// behaviour; it is not complete-linkage clustering.
func SeedClusters(sentences []common.Sentence, m *Matrix, threshold float64) []common.Cluster {
	n := min(len(sentences), m.Len())
	claimed := make([]bool, n)

	var out []common.Cluster
	for i := 0; i < n; i++ {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		members := []common.Sentence{sentences[i]}

		for j := i + 1; j < n; j++ {
			if !claimed[j] && m.At(i, j) > threshold {
				members = append(members, sentences[j])
				claimed[j] = true
			}
		}

		if len(members) > 1 {
			out = append(out, common.Cluster{Seed: sentences[i].Index, Members: members})
		}
	}
	return out
}
