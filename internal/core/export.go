package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

const (
	// ExportFilename is the suggested name of a downloaded export.
	ExportFilename = "submissions.csv"
	// ExportContentType is the media type of an export.
	ExportContentType = "text/csv; charset=utf-8"
)

// ExportHeader is the fixed column order of an export.
var ExportHeader = []string{"Name", "Email", "Message", "Category"}

// Saver receives a serialized export. Implementations decide where the bytes go.
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

// WriteCSV writes the header followed by one row per submission.
func WriteCSV(w io.Writer, view []Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range view {
		if err := cw.Write([]string{s.Name, s.Email, s.Message, s.Category}); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportCSV serializes the view into a CSV document.
func ExportCSV(view []Submission) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a document produced by WriteCSV (or any CSV with the same
// header, columns matched case-insensitively in any order).
func ReadCSV(r io.Reader) ([]Submission, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	cols := HeaderIndex(records[0])
	out := make([]Submission, 0, len(records)-1)
	for _, rec := range records[1:] {
		out = append(out, cols.Submission(rec))
	}
	return out, nil
}
