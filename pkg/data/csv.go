package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrNoHeader = errors.New("data: csv has no header row")

var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "null": {}, "NULL": {}, "None": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses a raw cell. ok is false for missing or non-numeric cells.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

// CleanHeader applies NFKC normalization and strips whitespace and a UTF-8 BOM.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(norm.NFKC.String(h))
}

// LoadCSV reads a delimited file from disk.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses a CSV stream with a header row. Short rows are padded with
// missing cells. A column is numeric when every non-missing cell parses as a
// number, otherwise it is text.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = CleanHeader(h)
		if names[i] == "" {
			names[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	cells := make([][]string, len(names))
	rows := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rows+2, err)
		}
		for j := range names {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cells[j] = append(cells[j], v)
		}
		rows++
	}

	t := NewTable(rows)
	seen := map[string]int{}
	for j, name := range names {
		col := columnFromRaw(name, cells[j], rows)
		if n := seen[name]; n > 0 {
			col.Name = fmt.Sprintf("%s.%d", name, n)
			col.Source = col.Name
		}
		seen[name]++
		if err := t.Set(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// columnFromRaw infers the column kind from raw cells.
func columnFromRaw(name string, raw []string, rows int) *Column {
	if raw == nil {
		raw = make([]string, rows)
	}
	nums := make([]float64, len(raw))
	numeric := true
	for i, s := range raw {
		v, ok := ParseNumber(s)
		if !ok && !IsMissing(s) {
			numeric = false
			break
		}
		nums[i] = v
	}
	if numeric {
		return &Column{Name: name, Source: name, Kind: Numeric, Nums: nums, raw: raw}
	}
	strs := make([]string, len(raw))
	for i, s := range raw {
		strs[i] = strings.TrimSpace(s)
	}
	return &Column{Name: name, Source: name, Kind: Text, Strs: strs, raw: raw}
}

// WriteCSV writes the table with its current column names.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	rec := make([]string, len(t.cols))
	for i := 0; i < t.rows; i++ {
		for j, c := range t.cols {
			if c.Kind == Text {
				rec[j] = c.Strs[i]
			} else {
				rec[j] = FormatFloat(c.Nums[i])
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
