package importer

import (
	"fmt"
	"io"

	"github.com/phillipyBr/Meu-Bolso/internal/importer/statement"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatStatement: statement.NewParser(),
		},
	}
}

// Import parses r as format. An empty format selects FormatStatement.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	if format == "" {
		format = FormatStatement
	}

	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
