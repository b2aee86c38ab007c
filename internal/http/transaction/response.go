package transaction

import (
	"encoding/json"
	"time"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Response is the JSON form of a transaction shared by every handler.
type Response struct {
	ID          string           `json:"id"`
	Type        transaction.Type `json:"type"`
	Amount      json.Number      `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

func NewResponse(tx *transaction.Transaction) Response {
	return Response{
		ID:          tx.ID,
		Type:        tx.Type,
		Amount:      json.Number(tx.Amount.StringFixed(2)),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format(time.DateOnly),
	}
}

func NewResponseList(txs []transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i := range txs {
		resp[i] = NewResponse(&txs[i])
	}

	return resp
}
