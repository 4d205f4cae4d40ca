package swot

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// ParseFlexible accepts both response shapes a model produces in practice:
// a JSON object keyed by section name (keys matched case-insensitively,
// malformed JSON repaired where possible) or the bulleted text format read
// by Parse. Anything that does not decode to at least one known section is
// handed to Parse.
func ParseFlexible(text string) common.SwotAnalysis {
	body := ai.StripCodeFence(text)
	if !strings.HasPrefix(body, "{") {
		return Parse(text)
	}

	var raw map[string]any
	if err := ai.UnmarshalFlexible(body, &raw); err != nil {
		return Parse(text)
	}

	// sorted so case-variant keys merge in a stable order
	keys := slices.Sorted(maps.Keys(raw))
	out := common.NewSwotAnalysis()
	found := false
	for i, name := range Sections {
		for _, key := range keys {
			if !strings.EqualFold(key, name) {
				continue
			}
			appendTo(&out, section(i+1), toItems(raw[key])...)
			found = true
		}
	}
	if !found {
		return Parse(text)
	}
	return out
}

func toItems(v any) []string {
	switch v := v.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, toItems(e)...)
		}
		return out
	case nil:
	default:
		return toItems(fmt.Sprint(v))
	}
	return nil
}
