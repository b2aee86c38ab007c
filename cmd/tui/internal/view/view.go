package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen reachable from the main menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views and tracks the terminal size.
type CommonModel struct {
	Width  int
	Height int
}

// Resize records the terminal size carried by msg.
func (c *CommonModel) Resize(msg tea.WindowSizeMsg) {
	c.Width, c.Height = msg.Width, msg.Height
}

// BackMsg returns the program to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
