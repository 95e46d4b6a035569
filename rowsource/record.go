package rowsource

import (
	"strings"
)

// Record is one raw input row keyed by normalized header name.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-empty value among the given header keys. Source
// files have drifted through several header spellings for the same concept,
// so lookups check every variant.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func normalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = normalizeHeader(header)
	}
	return normalized
}

// newRecord pairs one raw data row with its normalized headers. Cell values
// are trimmed at read time; short rows pad out with empty values so every
// header key resolves.
func newRecord(normalizedHeaders, cells []string, rowNumber int) Record {
	values := make(map[string]string, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		if i < len(cells) {
			values[header] = strings.TrimSpace(cells[i])
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
