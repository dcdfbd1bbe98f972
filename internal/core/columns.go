package core

import "strings"

// Columns maps submission fields to positions in a tabular row. -1 means absent.
type Columns struct {
	Name, Email, Message, Category int
}

// HeaderIndex locates the submission columns in a header row by name,
// ignoring case and surrounding whitespace.
func HeaderIndex(headers []string) Columns {
	return Columns{
		Name:     indexOf(headers, "Name"),
		Email:    indexOf(headers, "Email"),
		Message:  indexOf(headers, "Message"),
		Category: indexOf(headers, "Category"),
	}
}

// Missing lists the required columns that were not found.
func (c Columns) Missing() []string {
	var missing []string
	for i, col := range []int{c.Name, c.Email, c.Message, c.Category} {
		if col == -1 {
			missing = append(missing, ExportHeader[i])
		}
	}
	return missing
}

// Submission builds a record from a row. Short rows yield empty fields.
func (c Columns) Submission(row []string) Submission {
	return Submission{
		Name:     safeGet(row, c.Name),
		Email:    safeGet(row, c.Email),
		Message:  safeGet(row, c.Message),
		Category: safeGet(row, c.Category),
	}
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
