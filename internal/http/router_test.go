package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/config"
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	bolsoHttp "github.com/phillipyBr/Meu-Bolso/internal/http"
	adviceHandler "github.com/phillipyBr/Meu-Bolso/internal/http/advice"
	categoryHandler "github.com/phillipyBr/Meu-Bolso/internal/http/category"
	dashboardHandler "github.com/phillipyBr/Meu-Bolso/internal/http/dashboard"
	exportHandler "github.com/phillipyBr/Meu-Bolso/internal/http/export"
	importHandler "github.com/phillipyBr/Meu-Bolso/internal/http/importcsv"
	txHandler "github.com/phillipyBr/Meu-Bolso/internal/http/transaction"
	"github.com/phillipyBr/Meu-Bolso/internal/storage"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

func newServer(t *testing.T, adv advisor.Advisor) (*httptest.Server, *app.App) {
	t.Helper()

	t.Setenv("STORAGE_BACKEND", config.BackendMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.NewWithStorage(context.Background(), cfg, storage.NewMemory(), adv)
	require.NoError(t, err)

	router := bolsoHttp.New(
		bolsoHttp.Options{AllowedOrigins: []string{"*"}},
		txHandler.NewHandler(a.Transactions),
		categoryHandler.NewHandler(a.Categories),
		dashboardHandler.NewHandler(a),
		exportHandler.NewHandler(a),
		importHandler.NewHandler(a),
		adviceHandler.NewHandler(a),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, a
}

func okAdvisor() advisor.Advisor {
	return advisor.Func(func(context.Context, []transaction.Transaction) (string, error) {
		return "Gaste menos com lazer.", nil
	})
}

func do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestTransactions(t *testing.T) {
	srv, a := newServer(t, okAdvisor())
	base := srv.URL + "/api/v1/transactions"

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "Valid",
			body:       `{"type":"expense","amount":"42.5","category":"Lazer","description":"Show","date":"2024-06-10"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "NumericAmount",
			body:       `{"type":"income","amount":100,"category":"Outros","description":"Pix"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingDescription",
			body:       `{"type":"expense","amount":"1","category":"Lazer"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeAmount",
			body:       `{"type":"expense","amount":"-1","category":"Lazer","description":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownType",
			body:       `{"type":"transfer","amount":"1","category":"Lazer","description":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadDate",
			body:       `{"type":"expense","amount":"1","category":"Lazer","description":"x","date":"10/06/2024"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, base+"/", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	assert.Len(t, a.Transactions.All(), 6)

	resp := do(t, http.MethodGet, base+"/?type=income", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var incomes []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&incomes))
	require.Len(t, incomes, 2)
	assert.Equal(t, "Pix", incomes[0]["description"])

	resp = do(t, http.MethodGet, base+"/?type=savings", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/does-not-exist", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, a.Transactions.All(), 5)
}

func TestCategories(t *testing.T) {
	srv, a := newServer(t, okAdvisor())
	base := srv.URL + "/api/v1/categories"

	resp := do(t, http.MethodPost, base+"/expense", `{"name":"  Pets "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/expense", `{"name":"Pets"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, "Pets", list[len(list)-1])
	assert.Len(t, list, 8)

	resp = do(t, http.MethodPost, base+"/expense", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/transfer", `{"name":"Pix"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/expense/Sa%C3%BAde", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, a.Categories.List(transaction.TypeExpense), "Saúde")

	resp = do(t, http.MethodGet, base+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all struct {
		Income  []string `json:"income"`
		Expense []string `json:"expense"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Equal(t, []string{"Salário", "Investimentos", "Outros"}, all.Income)
}

func TestDashboard(t *testing.T) {
	srv, _ := newServer(t, okAdvisor())

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/dashboard/?ref="+time.Now().Format(time.DateOnly), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Totals struct {
			Income  json.Number `json:"income"`
			Expense json.Number `json:"expense"`
			Balance json.Number `json:"balance"`
		} `json:"totals"`
		Categories []struct {
			Category string `json:"category"`
		} `json:"categories"`
		Months []struct {
			Label   string      `json:"label"`
			Expense json.Number `json:"expense"`
		} `json:"months"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "5000.00", got.Totals.Income.String())
	assert.Equal(t, "1320.50", got.Totals.Expense.String())
	assert.Equal(t, "3679.50", got.Totals.Balance.String())
	assert.Equal(t, "Moradia", got.Categories[0].Category)
	assert.Len(t, got.Months, 6)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/dashboard/?ref=junho", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport(t *testing.T) {
	srv, a := newServer(t, okAdvisor())

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/export/?filter=income", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "meu-bolso-extrato-income-")

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), export.BOM+"Data,Descrição,Categoria,Tipo,Valor\n"))

	require.NoError(t, a.Transactions.Delete(context.Background(), "1"))

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/export/?filter=income", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/export/?filter=nope", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategories_RemoveEscapedNames(t *testing.T) {
	names := []string{
		"Taxa%20Banco",
		"50%",
		"a/b",
		"Café & Bar",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			srv, a := newServer(t, okAdvisor())
			base := srv.URL + "/api/v1/categories/expense"

			payload, err := json.Marshal(map[string]string{"name": name})
			require.NoError(t, err)

			resp := do(t, http.MethodPost, base, string(payload))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Contains(t, a.Categories.List(transaction.TypeExpense), name)

			resp = do(t, http.MethodDelete, base+"/"+url.PathEscape(name), "")
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			assert.NotContains(t, a.Categories.List(transaction.TypeExpense), name)
		})
	}
}

func TestImport(t *testing.T) {
	srv, a := newServer(t, okAdvisor())

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("file", "extrato.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte("Data,Descrição,Categoria,Tipo,Valor\n01/06/2024,\"Uber\",Transporte,Despesa,\"23,90\""))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/import/", mw.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, "Uber", a.Transactions.All()[0].Description)
}

func TestImport_UnknownFormat(t *testing.T) {
	srv, a := newServer(t, okAdvisor())

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("format", "ofx"))

	fw, err := mw.CreateFormFile("file", "extrato.ofx")
	require.NoError(t, err)

	_, err = fw.Write([]byte("<OFX></OFX>"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/import/", mw.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, a.Transactions.All(), 4)
}

func TestAdvice(t *testing.T) {
	release := make(chan struct{})

	srv, a := newServer(t, advisor.Func(func(context.Context, []transaction.Transaction) (string, error) {
		<-release
		return "Economize.", nil
	}))
	base := srv.URL + "/api/v1/advice/"

	resp := do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, base, "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = do(t, http.MethodPost, base, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	close(release)
	<-a.Advice.Done()

	resp = do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		State string `json:"state"`
		Text  string `json:"text"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "succeeded", got.State)
	assert.Equal(t, "Economize.", got.Text)

	for _, tx := range a.Transactions.All() {
		require.NoError(t, a.Transactions.Delete(context.Background(), tx.ID))
	}

	resp = do(t, http.MethodPost, base, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
