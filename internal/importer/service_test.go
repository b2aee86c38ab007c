package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipyBr/Meu-Bolso/internal/importer"
)

func TestService_Import(t *testing.T) {
	csv := "Data,Descrição,Categoria,Tipo,Valor\n01/04/2024,\"Uber\",Transporte,Despesa,\"23,90\""

	tests := []struct {
		name    string
		format  importer.Format
		wantLen int
		wantErr bool
	}{
		{name: "DefaultFormat", format: "", wantLen: 1},
		{name: "Statement", format: importer.FormatStatement, wantLen: 1},
		{name: "Unknown", format: importer.Format("ofx"), wantErr: true},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Import(tt.format, strings.NewReader(csv))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
