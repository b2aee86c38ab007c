package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phillipyBr/Meu-Bolso/internal/category"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

var categoryKinds = []transaction.Type{transaction.TypeExpense, transaction.TypeIncome}

type CategoriesModel struct {
	CommonModel
	catService *category.Service

	kindIdx int
	cursor  int
	adding  bool
	input   textinput.Model
	status  string
	err     error
}

func NewCategoriesModel(catSvc *category.Service) CategoriesModel {
	ti := textinput.New()
	ti.Placeholder = "Nome da categoria"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Prompt = "Nova: "

	return CategoriesModel{
		catService: catSvc,
		input:      ti,
	}
}

func (m CategoriesModel) Title() string { return "Categorias" }

func (m CategoriesModel) ShortHelp() string {
	if m.adding {
		return "Enter: salvar | Esc: cancelar"
	}

	return "Esc: voltar | Tab: receitas/despesas | a: adicionar | x: remover"
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) kind() transaction.Type {
	return categoryKinds[m.kindIdx]
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(categoryResultMsg); ok {
		m.err = res.err
		m.status = res.status
		if res.err != nil {
			m.status = fmt.Sprintf("Erro: %v", res.err)
		}

		if n := len(m.catService.List(m.kind())); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}

		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	names := m.catService.List(m.kind())

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "tab":
		m.kindIdx = (m.kindIdx + 1) % len(categoryKinds)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(names)-1 {
			m.cursor++
		}
	case "a":
		m.adding = true
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "x":
		if m.cursor < len(names) {
			return m, m.removeCmd(m.kind(), names[m.cursor])
		}
	}

	return m, nil
}

func (m CategoriesModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.adding = false
			m.input.Blur()
			return m, nil
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			m.adding = false
			m.input.Blur()
			if name == "" {
				return m, nil
			}
			return m, m.addCmd(m.kind(), name)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CategoriesModel) View() string {
	tabs := make([]string, len(categoryKinds))
	for i, k := range categoryKinds {
		label := KindLabel(k)
		if i == m.kindIdx {
			label = activeStyle("[" + label + "]")
		}
		tabs[i] = label
	}

	var b strings.Builder
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	names := m.catService.List(m.kind())
	if len(names) == 0 {
		b.WriteString(faintStyle.Render("Nenhuma categoria cadastrada."))
		b.WriteString("\n")
	}

	for i, name := range names {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s\n", cursor, name)
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	if m.status != "" {
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

type categoryResultMsg struct {
	status string
	err    error
}

func (m CategoriesModel) addCmd(kind transaction.Type, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.catService.Add(ctx, kind, name); err != nil {
			return categoryResultMsg{err: err}
		}

		return categoryResultMsg{status: fmt.Sprintf("Categoria %q adicionada.", name)}
	}
}

func (m CategoriesModel) removeCmd(kind transaction.Type, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.catService.Remove(ctx, kind, name); err != nil {
			return categoryResultMsg{err: err}
		}

		return categoryResultMsg{status: fmt.Sprintf("Categoria %q removida.", name)}
	}
}
