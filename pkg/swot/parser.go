// Package swot turns a generated SWOT response into its four sections.
//
// Parsing is best effort. Malformed input never fails; it degrades to
// partially or fully empty sections.
package swot

import (
	"bufio"
	"strings"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// Section names as they appear in responses.
const (
	Strengths     = "Strengths"
	Weaknesses    = "Weaknesses"
	Opportunities = "Opportunities"
	Threats       = "Threats"
)

// Sections lists the section names in report order.
var Sections = []string{Strengths, Weaknesses, Opportunities, Threats}

type section int

const (
	sectionNone section = iota
	sectionStrengths
	sectionWeaknesses
	sectionOpportunities
	sectionThreats
)

const bulletMarker = "-"

// Parse reads a response line by line.
//
// A trimmed line starting with a section name (case-sensitive prefix)
// switches the current section. A line starting with "-" appends the rest
// of the line, trimmed, to the current section, even when nothing is left.
// Bullets before the first heading, blank lines and free text are ignored.
func Parse(text string) common.SwotAnalysis {
	out := common.NewSwotAnalysis()

	current := sectionNone
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if next, ok := heading(line); ok {
			current = next
			continue
		}
		if current == sectionNone || !strings.HasPrefix(line, bulletMarker) {
			continue
		}

		appendTo(&out, current, strings.TrimSpace(strings.TrimPrefix(line, bulletMarker)))
	}
	return out
}

// Missing returns the names of all sections without items, in report
// order.
func Missing(a common.SwotAnalysis) []string {
	var out []string
	for i, items := range [][]string{a.Strengths, a.Weaknesses, a.Opportunities, a.Threats} {
		if len(items) == 0 {
			out = append(out, Sections[i])
		}
	}
	return out
}

func heading(line string) (section, bool) {
	switch {
	case strings.HasPrefix(line, Strengths):
		return sectionStrengths, true
	case strings.HasPrefix(line, Weaknesses):
		return sectionWeaknesses, true
	case strings.HasPrefix(line, Opportunities):
		return sectionOpportunities, true
	case strings.HasPrefix(line, Threats):
		return sectionThreats, true
	default:
		return sectionNone, false
	}
}

func appendTo(a *common.SwotAnalysis, s section, items ...string) {
	switch s {
	case sectionStrengths:
		a.Strengths = append(a.Strengths, items...)
	case sectionWeaknesses:
		a.Weaknesses = append(a.Weaknesses, items...)
	case sectionOpportunities:
		a.Opportunities = append(a.Opportunities, items...)
	case sectionThreats:
		a.Threats = append(a.Threats, items...)
	}
}
