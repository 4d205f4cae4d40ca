package common

// SentimentLabel is the three-way classification of a polarity score.
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Neutral  SentimentLabel = "Neutral"
	Negative SentimentLabel = "Negative"
)

// SentimentRecord holds the sentiment of a single sentence. Polarity is in
// [-1, 1] and rounded to three decimals.
type SentimentRecord struct {
	Text     string         `json:"text"`
	Polarity float64        `json:"polarity"`
	Label    SentimentLabel `json:"sentiment"`
}

// SentimentSummary aggregates the records of one document. Positive, Neutral
// and Negative always add up to Total.
type SentimentSummary struct {
	Total           int     `json:"total"`
	Positive        int     `json:"positive"`
	Neutral         int     `json:"neutral"`
	Negative        int     `json:"negative"`
	AveragePolarity float64 `json:"average_polarity"`
}

// SentimentReport combines the per-sentence records with their summary.
type SentimentReport struct {
	Records []SentimentRecord `json:"records"`
	Summary SentimentSummary  `json:"summary"`
}

// SentimentOverview is the document-level sentiment view: one label for the
// whole text plus polarity, subjectivity and the word count.
type SentimentOverview struct {
	Label        SentimentLabel `json:"sentiment"`
	Polarity     float64        `json:"polarity"`
	Subjectivity float64        `json:"subjectivity"`
	Length       int            `json:"length"`
}
