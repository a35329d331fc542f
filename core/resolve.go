package core

import (
	"strings"

	"github.com/orderscope/orderscope/schema"
)

// normalizeCell lowercases and trims a header or cell value for matching.
func normalizeCell(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveColumns maps the export's raw column headers onto the semantic
// roles in the alias table. Each role resolves independently, in two ordered
// passes that are never interleaved so the tie-break stays auditable: first
// the exact pass (first candidate with an exact normalized match wins), then
// the substring pass (first candidate contained in any header, headers tried
// in original order). A role with no match resolves to the empty string,
// which disables downstream computation instead of failing it.
func ResolveColumns(headers []string, aliases map[schema.ColumnRole][]string) schema.ColumnRoleMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeCell(h)
	}

	roleMap := make(schema.ColumnRoleMap, len(aliases))
	for role, candidates := range aliases {
		roleMap[role] = detectColumn(headers, normalized, candidates)
	}
	return roleMap
}

// detectColumn runs the exact pass, then the substring pass, over the
// pre-normalized headers.
func detectColumn(headers, normalized []string, candidates []string) string {
	for _, cand := range candidates {
		nc := normalizeCell(cand)
		for i, nh := range normalized {
			if nh == nc {
				return headers[i]
			}
		}
	}
	for _, cand := range candidates {
		nc := normalizeCell(cand)
		if nc == "" {
			continue
		}
		for i, nh := range normalized {
			if strings.Contains(nh, nc) {
				return headers[i]
			}
		}
	}
	return ""
}
