package sheets

import (
	"fmt"
	"strings"

	"complaints/internal/core"
)

// parseSubmissions converts a values matrix (as returned by the Sheets API)
// into submissions. The first row must name the Name, Email, Message and
// Category columns; their order is free. Fully blank rows are skipped.
func parseSubmissions(values [][]interface{}) ([]core.Submission, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := toStrings(values[0])
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	cols := core.HeaderIndex(headers)
	if missing := cols.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("unexpected complaints header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	out := make([]core.Submission, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if isBlank(row) {
			continue
		}
		out = append(out, cols.Submission(row))
	}
	return out, nil
}

// parseCategories reads column A labels, skipping blank rows. The first row
// is dropped only when the sheet is configured with a header. Every other
// stored label comes back, in order and with duplicates.
func parseCategories(values [][]interface{}, header bool) []string {
	if header && len(values) > 0 {
		values = values[1:]
	}
	var out []string
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(row[0]))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// toStrings keeps cell text exactly as stored.
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
