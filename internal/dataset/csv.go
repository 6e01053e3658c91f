package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseOptions controls how delimited text becomes a Table.
type ParseOptions struct {
	// Delimiter for CSV. If 0, ',' is used.
	Delimiter rune
	// NAValues are cell contents treated as missing after trimming.
	// Present cells keep their original text.
	NAValues []string
	// Numeric parsing locale. If DecimalSeparator is 0, '.' is used.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; stripped before parsing when set
}

// DefaultNAValues mirrors the tokens pandas reads as NaN.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// DefaultParseOptions returns comma-delimited, dot-decimal parsing with pandas NA tokens.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Delimiter:        ',',
		NAValues:         append([]string(nil), DefaultNAValues...),
		DecimalSeparator: '.',
	}
}

// ParseCSV reads a header row plus records and infers each column's Kind.
// Short records are padded with missing cells; long records are an error.
func ParseCSV(r io.Reader, name string, opt ParseOptions) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	ncol := len(header)

	na := make(map[string]struct{}, len(opt.NAValues))
	for _, v := range opt.NAValues {
		na[v] = struct{}{}
	}

	raw := make([][]string, ncol)
	valid := make([][]bool, ncol)
	rows := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		rows++
		if len(rec) > ncol {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", rows, ncol, len(rec))
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			_, missing := na[strings.TrimSpace(v)]
			raw[j] = append(raw[j], v)
			valid[j] = append(valid[j], !missing)
		}
	}

	cols := make([]*Column, ncol)
	for j := range header {
		cols[j] = inferColumn(strings.TrimSpace(header[j]), raw[j], valid[j], opt)
	}
	return New(name, cols...)
}

// inferColumn keeps a column numeric only if every present cell parses as a number.
// A column with no present cells is numeric, as pandas reads it as float64.
// Infinite or NaN numbers in a numeric column are read as missing.
func inferColumn(name string, raw []string, valid []bool, opt ParseOptions) *Column {
	if valid == nil {
		return NewNumeric(name, []float64{}, []bool{})
	}
	nums := make([]float64, len(raw))
	present := append([]bool(nil), valid...)
	for i, v := range raw {
		if !valid[i] {
			continue
		}
		x, ok := parseNumeric(v, opt)
		if !ok {
			return NewCategorical(name, raw, valid)
		}
		if math.IsInf(x, 0) || math.IsNaN(x) {
			present[i] = false
			continue
		}
		nums[i] = x
	}
	return NewNumeric(name, nums, present)
}

func parseNumeric(s string, opt ParseOptions) (float64, bool) {
	raw := strings.TrimSpace(s)
	dec := opt.DecimalSeparator
	if dec == 0 {
		dec = '.'
	}
	if thou := opt.ThousandsSeparator; thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	// strconv accepts hex floats and digit separators; CSV readers do not.
	if strings.ContainsAny(raw, "xX_pP") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
