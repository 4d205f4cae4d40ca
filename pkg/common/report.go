package common

// SwotAnalysis is the four-quadrant breakdown extracted from a generated
// response. Sections are never nil; a section the response never mentioned
// is an empty list.
type SwotAnalysis struct {
	Strengths     []string `json:"Strengths"`
	Weaknesses    []string `json:"Weaknesses"`
	Opportunities []string `json:"Opportunities"`
	Threats       []string `json:"Threats"`
}

// NewSwotAnalysis returns an analysis with all four sections present and empty.
func NewSwotAnalysis() SwotAnalysis {
	return SwotAnalysis{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}
}

// Report is the full analysis of one feedback document as produced for
// asynchronous report jobs.
type Report struct {
	Summary   QuickSummary      `json:"summary"`
	Sentiment *SentimentReport  `json:"sentiment,omitempty"`
	Overview  SentimentOverview `json:"overview"`
	Swot      *SwotAnalysis     `json:"swot,omitempty"`
}
