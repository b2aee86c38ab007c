package view

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/category"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

const dateLayout = "02/01/2006"

// thousandsOnly matches amounts grouped with dots and no decimal part,
// e.g. 1.500 or 12.345.678.
var thousandsOnly = regexp.MustCompile(`^[1-9]\d{0,2}(\.\d{3})+$`)

// txFields holds the form bindings shared by every copy of the model.
type txFields struct {
	kind        transaction.Type
	amount      string
	category    string
	description string
	date        string
}

type TransactionFormModel struct {
	CommonModel
	txService  *transaction.Service
	catService *category.Service

	form   *huh.Form
	fields *txFields
	saving bool
	status string
	err    error
}

func NewTransactionFormModel(txSvc *transaction.Service, catSvc *category.Service) TransactionFormModel {
	m := TransactionFormModel{
		txService:  txSvc,
		catService: catSvc,
	}
	m.reset()

	return m
}

func (m TransactionFormModel) Title() string { return "Nova Transação" }

func (m TransactionFormModel) ShortHelp() string {
	return "Esc: voltar | Tab: próximo campo | Enter: confirmar"
}

func (m TransactionFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m TransactionFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createResultMsg:
		m.saving = false
		m.err = msg.err
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro ao salvar: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Transação %q adicionada.", msg.description)
		}
		m.reset()
		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true
	return m, m.createCmd()
}

func (m TransactionFormModel) View() string {
	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(56).
		Render(m.form.View())

	if m.status == "" {
		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	style := successStyle
	if m.err != nil {
		style = errorStyle
	}

	return lipgloss.NewStyle().Padding(1).Render(style.Render(m.status) + "\n\n" + panel)
}

func (m *TransactionFormModel) reset() {
	m.fields = &txFields{
		kind: transaction.TypeExpense,
		date: time.Now().Format(dateLayout),
	}
	m.form = m.buildForm(m.fields)
}

func (m TransactionFormModel) buildForm(f *txFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Title("Tipo").
				Options(
					huh.NewOption("Despesa", transaction.TypeExpense),
					huh.NewOption("Receita", transaction.TypeIncome),
				).
				Value(&f.kind),

			huh.NewInput().
				Title("Valor (R$)").
				Placeholder("0,00").
				Value(&f.amount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewSelect[string]().
				Title("Categoria").
				OptionsFunc(func() []huh.Option[string] {
					return huh.NewOptions(m.catService.List(f.kind)...)
				}, &f.kind).
				Value(&f.category).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("selecione uma categoria")
					}
					return nil
				}),

			huh.NewInput().
				Title("Descrição").
				Value(&f.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("descrição obrigatória")
					}
					return nil
				}),

			huh.NewInput().
				Title("Data").
				Placeholder("DD/MM/AAAA").
				Value(&f.date).
				Validate(func(s string) error {
					if _, err := time.Parse(dateLayout, s); err != nil {
						return errors.New("data inválida (DD/MM/AAAA)")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

// ParseAmount reads a non-negative amount typed either as 1234.56 or in the
// Brazilian form 1.234,56. Dots followed by groups of three digits and no
// comma are thousands separators, so 1.500 is 1500.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") || thousandsOnly.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("valor inválido")
	}

	if d.IsNegative() {
		return decimal.Zero, errors.New("o valor não pode ser negativo")
	}

	return d, nil
}

type createResultMsg struct {
	description string
	err         error
}

func (m TransactionFormModel) createCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		amount, err := ParseAmount(f.amount)
		if err != nil {
			return createResultMsg{err: err}
		}

		date, err := time.Parse(dateLayout, f.date)
		if err != nil {
			return createResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		_, err = m.txService.Create(ctx, transaction.CreateParams{
			Type:        f.kind,
			Amount:      amount,
			Category:    f.category,
			Description: strings.TrimSpace(f.description),
			Date:        transaction.DateOf(date),
		})

		return createResultMsg{description: f.description, err: err}
	}
}
