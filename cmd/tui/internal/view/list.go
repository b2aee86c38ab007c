package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

var listFilters = []transaction.Filter{
	transaction.FilterAll,
	transaction.FilterIncome,
	transaction.FilterExpense,
}

var filterLabels = map[transaction.Filter]string{
	transaction.FilterAll:     "Todas",
	transaction.FilterIncome:  "Receitas",
	transaction.FilterExpense: "Despesas",
}

type ListModel struct {
	CommonModel
	txService *transaction.Service

	table table.Model
	txs   []transaction.Transaction

	filterIdx  int
	confirming bool
	status     string
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Tipo", Width: 9},
		{Title: "Valor", Width: 16},
		{Title: "Categoria", Width: 14},
		{Title: "Descrição", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ListModel{
		txService: txSvc,
		table:     t,
	}
	m.refresh()

	return m
}

func (m ListModel) Title() string { return "Extrato" }

func (m ListModel) ShortHelp() string {
	if m.confirming {
		return "y: confirmar exclusão | n: cancelar"
	}

	return "Esc: voltar | f: filtro | x: excluir"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Filter() transaction.Filter {
	return listFilters[m.filterIdx]
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deleteResultMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro ao excluir: %v", msg.err)
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.Resize(msg)
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				return m, m.deleteCmd()
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(listFilters)
			m.refresh()
			return m, nil
		case "x":
			if len(m.txs) > 0 {
				m.confirming = true
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) View() string {
	header := fmt.Sprintf("Filtro: [f] %s", activeStyle(filterLabels[m.Filter()]))

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(m.txs) == 0 {
		body = faintStyle.Render("Nenhuma transação encontrada.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	if m.confirming {
		tx := m.txs[m.table.Cursor()]
		content += "\n\n" + errorStyle.Render(fmt.Sprintf("Excluir %q? (y/n)", tx.Description))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) refresh() {
	m.txs = m.txService.List(m.Filter())

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			KindLabel(tx.Type),
			FormatAmount(tx.Amount),
			tx.Category,
			tx.Description,
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

type deleteResultMsg struct {
	err error
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return deleteResultMsg{err: m.txService.Delete(ctx, id)}
	}
}
