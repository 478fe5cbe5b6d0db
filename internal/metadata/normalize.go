package metadata

import (
	"strings"
)

// keyAliases maps lower-cased response keys to the canonical field they
// fill. Lower rank wins when a response carries more than one alias.
var keyAliases = map[string]struct {
	field string
	rank  int
}{
	"author":       {"author", 0},
	"first_author": {"author", 1},
	"firstauthor":  {"author", 2},
	"year":         {"year", 0},
	"title":        {"title", 0},
}

var keyReplacer = strings.NewReplacer(" ", "_", "-", "_")

// normalizeKeys folds key case and synonyms onto author/year/title and drops
// everything else.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, 3)
	ranks := make(map[string]int, 3)

	for k, v := range m {
		key := keyReplacer.Replace(strings.ToLower(strings.TrimSpace(k)))
		alias, ok := keyAliases[key]
		if !ok {
			continue
		}
		if r, seen := ranks[alias.field]; seen && r <= alias.rank {
			continue
		}
		out[alias.field] = v
		ranks[alias.field] = alias.rank
	}
	return out
}

// extractObject returns the outermost {...} span of s. Models often wrap
// their JSON in prose or markdown fences.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// collapseSpace trims s and folds internal whitespace runs into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
