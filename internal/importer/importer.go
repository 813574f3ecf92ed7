package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Parser turns a raw bank statement into import params.
type Parser interface {
	Parse(r io.Reader) ([]transaction.ImportParams, error)
}
