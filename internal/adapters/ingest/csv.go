// Package ingest provides document ingestion adapters.
// Adapter implementing ports.DocumentIngestor for delimited text files.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
)

// CSVIngestor parses comma-delimited UTF-8 text into row documents. The
// first record is the header; each following record becomes one document
// whose text is "column: value" lines in header order.
type CSVIngestor struct {
	comma rune
}

// NewCSVIngestor creates an ingestor for comma-delimited files.
func NewCSVIngestor() *CSVIngestor {
	return &CSVIngestor{comma: ','}
}

// Ingest reads the stream and returns one document per data row. Any column
// layout is accepted; ragged rows, binary input or invalid UTF-8 fail.
func (g *CSVIngestor) Ingest(ctx context.Context, name string, r io.Reader) ([]entities.Document, error) {
	reader := csv.NewReader(r)
	reader.Comma = g.comma

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !recordIsUTF8(header) {
		return nil, errors.New("file is not valid UTF-8 text")
	}

	var docs []entities.Document
	for rowNum := 1; ; rowNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", rowNum, err)
		}
		if !recordIsUTF8(record) {
			return nil, fmt.Errorf("row %d is not valid UTF-8 text", rowNum)
		}

		docs = append(docs, entities.Document{
			Text: formatRow(header, record),
			Metadata: map[string]string{
				"source": name,
				"row":    strconv.Itoa(rowNum),
			},
		})
	}

	return docs, nil
}

// formatRow renders a record as "column: value" lines in header order.
func formatRow(header, record []string) string {
	var sb strings.Builder
	for i, col := range header {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(col)
		sb.WriteString(": ")
		if i < len(record) {
			sb.WriteString(record[i])
		}
	}
	return sb.String()
}

func recordIsUTF8(record []string) bool {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}
