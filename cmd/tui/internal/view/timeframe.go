package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Timeframe selects the reference month of the dashboard.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = 0
	TimeframeLastMonth Timeframe = 1
	TimeframeCustom    Timeframe = 2
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "Este mês"
	case TimeframeLastMonth:
		return "Mês passado"
	case TimeframeCustom:
		return "Outro mês"
	}

	return "Desconhecido"
}

func timeframeToMonth(tf Timeframe, now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if tf == TimeframeLastMonth {
		return first.AddDate(0, -1, 0)
	}

	return first
}

// TimeframeSelectedMsg is emitted once a reference month is chosen. Ref is
// the first day of that month.
type TimeframeSelectedMsg struct {
	Ref time.Time
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a month.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	monthInput textinput.Model

	err error
}

func NewTimeframePicker() TimeframePicker {
	mi := textinput.New()
	mi.Placeholder = "MM/AAAA"
	mi.CharLimit = 7
	mi.Width = 9
	mi.Prompt = "Mês: "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		now:        time.Now,
		monthInput: mi,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == timeframeStateCustom {
		var cmd tea.Cmd
		m.monthInput, cmd = m.monthInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.monthInput.Focus()
			return m, textinput.Blink
		}

		ref := timeframeToMonth(m.selected, m.now())
		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Ref: ref}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "enter":
		ref, err := time.Parse("01/2006", m.monthInput.Value())
		if err != nil {
			m.err = fmt.Errorf("mês inválido (MM/AAAA)")
			return m, nil
		}

		m.err = nil
		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Ref: ref}
		}

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.monthInput, cmd = m.monthInput.Update(msg)
	return m, cmd
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nErro: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Informe o mês:\n\n%s\n\n(Enter para confirmar, Esc para voltar)%s",
			m.monthInput.View(),
			errStr,
		)
	}

	s := "Selecione o mês de referência:\n\n"
	for i := TimeframeThisMonth; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}
	s += "\n(Enter para selecionar, Esc para voltar)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeThisMonth
	m.err = nil
	m.monthInput.SetValue("")
}
