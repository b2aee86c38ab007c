package view

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
	"github.com/phillipyBr/Meu-Bolso/internal/app"
)

type AdvisorModel struct {
	CommonModel
	app *app.App

	spinner spinner.Model
	result  advisor.Result
	notice  string
}

func NewAdvisorModel(a *app.App) AdvisorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AdvisorModel{
		app:     a,
		spinner: s,
		result:  a.Advice.Result(),
	}
}

func (m AdvisorModel) Title() string { return "Consultor IA" }

func (m AdvisorModel) ShortHelp() string {
	if m.result.State == advisor.StatePending {
		return "Esc: voltar (a análise continua em segundo plano)"
	}

	return "Esc: voltar | Enter: gerar análise"
}

// Init resumes waiting on a request started before the view was opened.
func (m AdvisorModel) Init() tea.Cmd {
	if m.result.State == advisor.StatePending {
		return tea.Batch(m.spinner.Tick, m.waitCmd())
	}

	return nil
}

func (m AdvisorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg)
		return m, nil

	case adviceDoneMsg:
		m.result = m.app.Advice.Result()
		return m, nil

	case spinner.TickMsg:
		if m.result.State != advisor.StatePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			return m.request()
		}
	}

	return m, nil
}

func (m AdvisorModel) request() (tea.Model, tea.Cmd) {
	m.notice = ""

	err := m.app.RequestAdvice()
	switch {
	case errors.Is(err, advisor.ErrPending):
		m.notice = "Uma análise já está em andamento."
		return m, nil
	case errors.Is(err, advisor.ErrNoTransactions):
		m.notice = "Adicione transações antes de pedir uma análise."
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.result = m.app.Advice.Result()
	return m, tea.Batch(m.spinner.Tick, m.waitCmd())
}

type adviceDoneMsg struct{}

func (m AdvisorModel) waitCmd() tea.Cmd {
	done := m.app.Advice.Done()

	return func() tea.Msg {
		<-done
		return adviceDoneMsg{}
	}
}

func (m AdvisorModel) View() string {
	width := 72
	if m.Width > 0 {
		width = min(width, m.Width-4)
	}

	body := faintStyle.Render("Pressione Enter para que o consultor analise suas finanças.")

	switch m.result.State {
	case advisor.StatePending:
		body = m.spinner.View() + " Analisando suas finanças..."
	case advisor.StateSucceeded:
		body = lipgloss.NewStyle().Width(width).Render(m.result.Text)
	case advisor.StateFailed:
		body = errorStyle.Width(width).Render(m.result.Text)
	}

	if m.notice != "" {
		body = activeStyle(m.notice) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("Consultor IA"),
			"",
			body,
		),
	)
}
