package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/report"
)

const barWidth = 30

type dashboardState int

const (
	dashboardStatePick dashboardState = iota
	dashboardStateShow
)

type DashboardModel struct {
	CommonModel
	app *app.App

	state           dashboardState
	timeframePicker TimeframePicker
	dashboard       report.Dashboard
}

func NewDashboardModel(a *app.App) DashboardModel {
	return DashboardModel{
		app:             a,
		timeframePicker: NewTimeframePicker(),
	}
}

func (m DashboardModel) Title() string { return "Painel" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateShow {
		return "Esc: voltar | m: trocar mês"
	}

	return "Esc: voltar | Enter: selecionar"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.dashboard = m.app.Dashboard(tfMsg.Ref)
		m.state = dashboardStateShow
		return m, nil
	}

	if m.state == dashboardStateShow {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "m":
				m.timeframePicker.Reset()
				m.state = dashboardStatePick
			}
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	if m.state == dashboardStatePick {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderTotals(m.dashboard.Totals),
			"",
			renderCategories(m.dashboard.Categories),
			"",
			renderMonths(m.dashboard.Months),
		),
	)
}

func renderTotals(s report.Summary) string {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Width(24)

	balance := incomeStyle
	if s.Balance.IsNegative() {
		balance = expenseStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render("Receitas\n"+incomeStyle.Render(FormatAmount(s.Income))),
		card.Render("Despesas\n"+expenseStyle.Render(FormatAmount(s.Expense))),
		card.Render("Saldo\n"+balance.Render(FormatAmount(s.Balance))),
	)
}

func renderCategories(totals []report.CategoryTotal) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Despesas por categoria"))
	b.WriteString("\n\n")

	if len(totals) == 0 {
		b.WriteString(faintStyle.Render("Nenhuma despesa registrada."))
		return b.String()
	}

	peak := totals[0].Total
	for _, c := range totals {
		fmt.Fprintf(&b, "%-14s %s %s\n", c.Category, bar(c.Total, peak, expenseStyle), FormatAmount(c.Total))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderMonths(months []report.MonthTotal) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Últimos meses"))
	b.WriteString("\n\n")

	peak := decimal.Zero
	for _, mt := range months {
		peak = decimal.Max(peak, mt.Income, mt.Expense)
	}

	for _, mt := range months {
		fmt.Fprintf(&b, "%s/%d  %s %s\n", mt.Label, mt.Year%100, bar(mt.Income, peak, incomeStyle), FormatAmount(mt.Income))
		fmt.Fprintf(&b, "         %s %s\n", bar(mt.Expense, peak, expenseStyle), FormatAmount(mt.Expense))
	}

	return strings.TrimRight(b.String(), "\n")
}

func bar(v, peak decimal.Decimal, style lipgloss.Style) string {
	n := 0
	if peak.IsPositive() {
		n = int(v.Div(peak).Mul(decimal.NewFromInt(barWidth)).IntPart())
	}

	return style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}
