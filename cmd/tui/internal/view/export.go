package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateResult
)

type exportFields struct {
	filter transaction.Filter
	path   string
}

type ExportModel struct {
	CommonModel
	app *app.App

	state  exportState
	form   *huh.Form
	fields *exportFields
	file   string
	err    error
}

func NewExportModel(a *app.App) ExportModel {
	m := ExportModel{
		app:    a,
		fields: &exportFields{filter: transaction.FilterAll, path: "./exports"},
	}
	m.form = m.buildForm(m.fields)

	return m
}

func (m ExportModel) Title() string { return "Exportar CSV" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: voltar ao menu"
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.file = result.file
		m.err = result.err
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.state == exportStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateResult
	return m, m.runExportCmd(*m.fields)
}

func (m ExportModel) buildForm(f *exportFields) *huh.Form {
	options := make([]huh.Option[transaction.Filter], 0, len(listFilters))
	for _, filter := range listFilters {
		options = append(options, huh.NewOption(filterLabels[filter], filter))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Filter]().
				Title("Transações").
				Options(options...).
				Value(&f.filter),

			huh.NewInput().
				Title("Pasta de destino").
				Description("A pasta será criada se não existir").
				Placeholder("./exports").
				Value(&f.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	if m.state == exportStateForm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	switch {
	case errors.Is(m.err, export.ErrNothingToExport):
		return lipgloss.NewStyle().Padding(1).Render(activeStyle("Nenhuma transação para exportar."))
	case m.err != nil:
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	case m.file == "":
		return lipgloss.NewStyle().Padding(1).Render("Exportando...")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Bold(true).Render("Exportação concluída!"),
			"",
			m.file,
		),
	)
}

type exportResultMsg struct {
	file string
	err  error
}

func (m ExportModel) runExportCmd(f exportFields) tea.Cmd {
	return func() tea.Msg {
		name, body, err := m.app.Export(f.filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if err := os.MkdirAll(f.path, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating directory: %w", err)}
		}

		file := filepath.Join(f.path, name)
		if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
			return exportResultMsg{err: fmt.Errorf("writing export: %w", err)}
		}

		return exportResultMsg{file: file}
	}
}
