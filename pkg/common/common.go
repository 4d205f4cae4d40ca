package common

// Sentence is a normalized fragment of a feedback document. Index is the
// position of the fragment in the segmented sequence and never changes once
// the sentence is created.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// DuplicatePair links two near-identical sentences. A always precedes B in
// index order, so every pair is reported once.
type DuplicatePair struct {
	A     Sentence `json:"a"`
	B     Sentence `json:"b"`
	Score float64  `json:"score"`
}

// Cluster is a group of topically similar sentences formed around a seed.
// Members are ordered by index and always contain the seed first.
//
// A cluster always has at least two members. Clusters produced by one
// clustering pass never share members.
type Cluster struct {
	Seed    int        `json:"seed"`
	Members []Sentence `json:"members"`
}

// Texts returns the text of every member in order.
func (c Cluster) Texts() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.Text
	}
	return out
}

// QuickSummary is the result of the quick summary mode: counts plus a small
// sample of clusters.
type QuickSummary struct {
	TotalSentences int        `json:"total_sentences"`
	NumDuplicates  int        `json:"num_duplicates"`
	NumClusters    int        `json:"num_clusters"`
	SampleClusters [][]string `json:"sample_clusters"`
}
