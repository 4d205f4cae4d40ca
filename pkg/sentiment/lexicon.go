package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// Entry is the sentiment carried by a single lexicon word.
type Entry struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

// Lexicon maps lowercase words to their sentiment. Intensifiers scale the
// next word found in Words; negations flip it.
type Lexicon struct {
	Words        map[string]Entry   `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Negations    []string           `yaml:"negations"`

	negations map[string]struct{}
}

var loadDefault = sync.OnceValues(func() (*Lexicon, error) {
	return ParseLexicon(defaultLexicon)
})

// DefaultLexicon returns the lexicon compiled into the binary. The result is
// shared and must not be modified.
func DefaultLexicon() *Lexicon {
	lex, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadLexicon reads a YAML lexicon from path.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}

	for word, e := range lex.Words {
		if e.Polarity < -1 || e.Polarity > 1 {
			return nil, fmt.Errorf("word %q: polarity %v out of [-1, 1]", word, e.Polarity)
		}
		if e.Subjectivity < 0 || e.Subjectivity > 1 {
			return nil, fmt.Errorf("word %q: subjectivity %v out of [0, 1]", word, e.Subjectivity)
		}
	}

	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, n := range lex.Negations {
		lex.negations[n] = struct{}{}
	}
	return &lex, nil
}

func (l *Lexicon) isNegation(tok string) bool {
	_, ok := l.negations[tok]
	return ok
}
