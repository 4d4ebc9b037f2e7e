// Package tabular loads delimited text files of unknown encoding and
// separator, as produced by fleet-telemetry vendors and office exports.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeError reports that no encoding/separator combination produced a
// table. It is fatal for the file; pipelines log it and continue with the
// remaining files.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: no encoding/separator combination parses", e.Path)
}

// Table is a parsed delimited file: a header row plus data records aligned
// with it.
type Table struct {
	Columns []string
	Records [][]string

	colIndex map[string]int
}

// New builds a table from an in-memory header and records.
func New(columns []string, records [][]string) *Table {
	t := &Table{
		Columns:  columns,
		Records:  records,
		colIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := t.colIndex[c]; !ok {
			t.colIndex[c] = i
		}
	}
	return t
}

var separators = []rune{';', ',', '\t'}

// ReadFile loads a delimited file by probing encodings {utf-8, latin-1}
// crossed with separators {";", ",", tab} in that priority order. The first
// combination that parses into a table with at least one column wins.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	for _, decode := range []func([]byte) ([]byte, bool){decodeUTF8, decodeLatin1} {
		text, ok := decode(data)
		if !ok {
			continue
		}
		for _, sep := range separators {
			t, err := parse(text, sep)
			if err != nil {
				continue
			}
			return t, nil
		}
	}

	return nil, &DecodeError{Path: path}
}

// ReadReference loads a small reference file with a lighter-weight variant:
// it samples the first 4KB and picks the first separator (comma, semicolon,
// tab) occurring in the sample, defaulting to comma. Encoding is assumed
// UTF-8 with invalid bytes tolerated.
func ReadReference(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference table: %w", err)
	}

	data = bytes.ToValidUTF8(data, nil)
	t, err := parse(data, SniffSeparator(data))
	if err != nil {
		return nil, fmt.Errorf("read reference table %s: %w", path, err)
	}
	return t, nil
}

// SniffSeparator picks the first of comma, semicolon, tab present in the
// first 4KB of the sample, defaulting to comma.
func SniffSeparator(sample []byte) rune {
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	for _, sep := range []rune{',', ';', '\t'} {
		if bytes.ContainsRune(sample, sep) {
			return sep
		}
	}
	return ','
}

func decodeUTF8(data []byte) ([]byte, bool) {
	if !utf8.Valid(data) {
		return nil, false
	}
	return data, true
}

func decodeLatin1(data []byte) ([]byte, bool) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, false
	}
	return out, true
}

func parse(data []byte, sep rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sep
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse with separator %q: %w", sep, err)
	}
	if len(records) == 0 || len(records[0]) < 1 {
		return nil, fmt.Errorf("parse with separator %q: no columns", sep)
	}

	return New(records[0], records[1:]), nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// Get returns the value of the named column in the given record, or "" when
// the column does not exist.
func (t *Table) Get(record []string, name string) string {
	i, ok := t.colIndex[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// Reader exposes the table as a record stream, header first. It satisfies
// the reader contract of csvutil.NewDecoder, so callers can decode records
// into tagged structs without reparsing the file.
func (t *Table) Reader() *RecordReader {
	return &RecordReader{table: t, next: -1}
}

// RecordReader iterates a Table record by record.
type RecordReader struct {
	table *Table
	next  int
}

func (r *RecordReader) Read() ([]string, error) {
	if r.next == -1 {
		r.next = 0
		return r.table.Columns, nil
	}
	if r.next >= len(r.table.Records) {
		return nil, io.EOF
	}
	rec := r.table.Records[r.next]
	r.next++
	return rec, nil
}
