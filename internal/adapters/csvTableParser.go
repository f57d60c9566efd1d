package adapters

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/ports"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVTableParser struct{}

func NewCSVTableParser() ports.TableParser {
	return &CSVTableParser{}
}

// Parse reads a header row followed by records of the same width.
func (p *CSVTableParser) Parse(r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.InputParseError{Err: errors.New("file is empty")}
	}
	if err != nil {
		return nil, toInputParseError(err)
	}

	seen := make(map[string]bool, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.InputParseError{Line: 1, Err: fmt.Errorf("column %d has an empty name", i+1)}
		}
		if seen[name] {
			return nil, &domain.InputParseError{Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		seen[name] = true
		columns[i] = name
	}

	table := &domain.Table{Columns: columns, Rows: [][]string{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toInputParseError(err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

func toInputParseError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &domain.InputParseError{Line: parseErr.Line, Err: parseErr.Err}
	}
	return &domain.InputParseError{Err: err}
}
