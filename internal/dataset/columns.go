package dataset

import (
	"strings"

	"golang.org/x/text/cases"
)

const byteOrderMark = "\ufeff"

var fold = cases.Fold()

// resolveColumns maps each required column to its index in header.
// Header cells are trimmed first. An exact match wins; otherwise a
// case-folded match is accepted.
func resolveColumns(table string, header []string, required []string) (map[string]int, error) {
	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, byteOrderMark)
		}
		h = strings.TrimSpace(h)
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		key := fold.String(h)
		if _, ok := folded[key]; !ok {
			folded[key] = i
		}
	}

	index := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		if i, ok := exact[name]; ok {
			index[name] = i
			continue
		}
		if i, ok := folded[fold.String(name)]; ok {
			index[name] = i
			continue
		}
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Table: table, Columns: missing}
	}
	return index, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
