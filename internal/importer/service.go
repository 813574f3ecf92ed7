package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/importer/statement"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Service struct {
	parser Parser
}

func NewService() *Service {
	return &Service{parser: statement.NewParser()}
}

// Import parses a bank statement CSV into import params. The statement
// layout is auto-detected; see the statement package for supported formats.
func (s *Service) Import(r io.Reader) ([]transaction.ImportParams, error) {
	return s.parser.Parse(r)
}
