package statement

// decimalStyle determines how amount strings are written in a statement.
type decimalStyle int

const (
	// decimalDot means "1234.56" with an optional "," thousands separator.
	decimalDot decimalStyle = iota
	// decimalComma means "1.234,56": dot thousands, comma decimals.
	decimalComma
)

// Profile describes the column layout of a known statement export format.
// Adding a new bank format is just adding a new Profile to the profiles
// slice.
type Profile struct {
	Name       string
	Comma      rune
	DateCol    string
	DescCol    string
	AmountCol  string
	DateLayout string
	Decimals   decimalStyle
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.DescCol, p.AmountCol}
}

// profiles is the ordered list of formats tried during auto-detection.
var profiles = []Profile{
	{
		Name:       "standard",
		Comma:      ',',
		DateCol:    "Date",
		DescCol:    "Description",
		AmountCol:  "Amount",
		DateLayout: "2006-01-02",
		Decimals:   decimalDot,
	},
	{
		Name:       "european",
		Comma:      ';',
		DateCol:    "Data",
		DescCol:    "Descrizione",
		AmountCol:  "Importo",
		DateLayout: "02-01-2006",
		Decimals:   decimalComma,
	},
}
