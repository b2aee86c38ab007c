package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/phillipyBr/Meu-Bolso/cmd/tui/internal/view"
	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/config"
	"github.com/phillipyBr/Meu-Bolso/internal/report"
)

type menuEntry struct {
	key   string
	label string
	open  func(*app.App) view.View
}

var menu = []menuEntry{
	{"1", "Painel", func(a *app.App) view.View { return view.NewDashboardModel(a) }},
	{"2", "Extrato", func(a *app.App) view.View { return view.NewListModel(a.Transactions) }},
	{"3", "Nova Transação", func(a *app.App) view.View {
		return view.NewTransactionFormModel(a.Transactions, a.Categories)
	}},
	{"4", "Categorias", func(a *app.App) view.View { return view.NewCategoriesModel(a.Categories) }},
	{"5", "Consultor IA", func(a *app.App) view.View { return view.NewAdvisorModel(a) }},
	{"6", "Exportar CSV", func(a *app.App) view.View { return view.NewExportModel(a) }},
	{"7", "Importar Extrato", func(a *app.App) view.View { return view.NewImportModel(a) }},
}

type model struct {
	app     *app.App
	appName string

	// current is nil while the menu is shown.
	current view.View
	width   int
	height  int
}

func initialModel(a *app.App, name string) model {
	return model{app: a, appName: name}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	newModel, cmd := m.current.Update(msg)
	if v, ok := newModel.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, entry := range menu {
		if msg.String() != entry.key {
			continue
		}

		m.current = entry.open(m.app)
		cmd := m.current.Init()
		if m.width > 0 {
			size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
			return m, tea.Batch(cmd, func() tea.Msg { return size })
		}

		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.current != nil {
		help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.current.ShortHelp())
		title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.current.Title())

		return lipgloss.JoinVertical(lipgloss.Left, title, m.current.View(), help)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.appName))
	b.WriteString("\n")
	b.WriteString(m.balanceLine())
	b.WriteString("\n\n")

	for _, entry := range menu {
		fmt.Fprintf(&b, "%s. %s\n", entry.key, entry.label)
	}

	b.WriteString("\nq. Sair")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func (m model) balanceLine() string {
	totals := report.Totals(m.app.Transactions.All())

	return lipgloss.NewStyle().Faint(true).Render("Saldo atual: " + view.FormatAmount(totals.Balance))
}

func setupLogging() (io.Closer, error) {
	if os.Getenv("DEBUG") == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return io.NopCloser(nil), nil
	}

	f, err := tea.LogToFile("debug.log", "meu-bolso")
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))

	return f, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logs, err := setupLogging()
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	defer logs.Close()

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("initialising application: %w", err)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg.App.Name), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
