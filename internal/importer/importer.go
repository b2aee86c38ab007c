package importer

import (
	"io"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Format identifies the layout of an uploaded file.
type Format string

const (
	// FormatStatement is the CSV statement written by the export package.
	FormatStatement Format = "statement"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
