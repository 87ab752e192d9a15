package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// FieldSeparator separates columns within a row.
const FieldSeparator = ", "

// PersonColumns is the number of columns in a people row: name, age, company.
const PersonColumns = 3

// ErrMalformedRow is returned for rows with the wrong number of columns.
var ErrMalformedRow = errors.New("malformed row")

// Record is one parsed row, columns in input order.
type Record []string

// PersonRow is a people CSV row.
type PersonRow struct {
	Name    string
	Age     string
	Company string
}

// line is one non-blank input line with its 1-based line number.
type line struct {
	number int
	record Record
}

// splitLines splits data on "\n", drops a trailing "\r" from each line,
// skips blank lines and splits the rest on FieldSeparator.
func splitLines(data string) []line {
	var lines []line
	for i, text := range strings.Split(data, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, line{number: i + 1, record: strings.Split(text, FieldSeparator)})
	}
	return lines
}

// ParseCSV splits data into records. Lines are separated by "\n" (a
// trailing "\r" is dropped) and blank lines are skipped.
func ParseCSV(data string) []Record {
	var records []Record
	for _, l := range splitLines(data) {
		records = append(records, l.record)
	}
	return records
}

// ParsePeopleCSV parses rows of "name, age, company". A row with any other
// column count fails the whole parse.
func ParsePeopleCSV(data string) ([]PersonRow, error) {
	var rows []PersonRow
	for _, l := range splitLines(data) {
		if len(l.record) != PersonColumns {
			return nil, fmt.Errorf("line %d: %w: want %d columns, got %d", l.number, ErrMalformedRow, PersonColumns, len(l.record))
		}
		rows = append(rows, PersonRow{
			Name:    strings.TrimSpace(l.record[0]),
			Age:     strings.TrimSpace(l.record[1]),
			Company: strings.TrimSpace(l.record[2]),
		})
	}
	return rows, nil
}
