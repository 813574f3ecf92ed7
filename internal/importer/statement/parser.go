package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Parser reads bank statement CSV exports and produces import params.
// The format is auto-detected by matching column headers against known
// profiles. Unlike the record store, unparseable rows are skipped: foreign
// exports carry footers, balance lines and blank separators, and the file
// is never written back.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.ImportParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	// Buffer the whole statement: each profile re-reads it with its own
	// separator. Statements are small.
	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for i := range profiles {
		params, ok := tryProfile(&profiles[i], raw)
		if ok {
			return params, nil
		}
	}

	return nil, fmt.Errorf("no matching statement format: expected columns for %s", profileNames())
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

// tryProfile parses raw with the profile's separator and scans for a header
// row containing all required columns. Reports ok=false when none matches.
func tryProfile(p *Profile, raw []byte) ([]transaction.ImportParams, bool) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = p.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, false
	}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		if !hasAll(cols, p.requiredCols()) {
			continue
		}

		return parseRows(p, cols, rows[rowIdx+1:]), true
	}

	return nil, false
}

func hasAll(cols colIndex, names []string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []transaction.ImportParams {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]
	amountIdx := cols[p.AmountCol]

	var params []transaction.ImportParams

	for _, row := range rows {
		date, err := time.Parse(p.DateLayout, cellValue(row, dateIdx))
		if err != nil {
			// Footer or separator row.
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			continue
		}

		cents, err := parseCents(p.Decimals, cellValue(row, amountIdx))
		if err != nil || cents == 0 {
			continue
		}

		params = append(params, transaction.ImportParams{
			Type:     desc,
			Amount:   cents,
			Date:     date,
			Category: transaction.CategoryGeneral,
		})
	}

	return params
}

// parseCents converts an amount string in the profile's decimal style into
// signed cents.
func parseCents(style decimalStyle, s string) (int64, error) {
	switch style {
	case decimalComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case decimalDot:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func profileNames() string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return strings.Join(names, ", ")
}
