package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateEnded
	stateError
)

type model struct {
	state    sessionState
	engine   *engine.Engine
	game     *models.GameState
	view     engine.NodeView
	savePath string

	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	status    string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFFF"))
)

// NewModel builds the UI for game, saving to savePath on /save when set.
func NewModel(eng *engine.Engine, game *models.GameState, savePath string) model {
	ti := textinput.New()
	ti.Placeholder = "Enter a choice number..."
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 40

	m := model{
		state:     statePlaying,
		engine:    eng,
		game:      game,
		savePath:  savePath,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		width:     106,
		height:    26,
	}
	m.refresh()
	if m.state != stateError {
		m.gameLog = m.renderNode()
		m.viewport.SetContent(m.renderLog())
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleInput(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-12, 5)
		m.viewport.SetContent(m.renderLog())
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleInput(input string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch input {
	case "/quit":
		return m, tea.Quit
	case "/restart":
		m.game = m.engine.NewGame()
		m.refresh()
		m.gameLog = m.renderNode()
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoTop()
		return m, nil
	case "/save":
		m.status = m.save()
		return m, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(m.view.Choices) {
		m.status = "Invalid selection."
		return m, nil
	}
	picked := m.view.Choices[n-1]

	styledAction := userStyle.Width(m.logWidth()).Render("> " + picked.Text)
	m.gameLog += "\n\n" + styledAction + "\n\n"
	if _, err := m.engine.Choose(m.game, picked.Index); err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	m.refresh()
	if m.state != stateError {
		m.gameLog += m.renderNode()
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	return m, nil
}

// refresh recomputes the view and derives the UI state from it.
func (m *model) refresh() {
	view, err := m.engine.View(m.game)
	if err != nil {
		m.err = err
		m.state = stateError
		return
	}
	m.view = view
	m.state = statePlaying
	if view.Node.End {
		m.state = stateEnded
		m.textInput.Blur()
	} else {
		m.textInput.Focus()
	}
}

func (m model) save() string {
	if m.savePath == "" {
		return "No save file configured."
	}
	if err := models.SaveSnapshot(m.savePath, m.game.Snapshot()); err != nil {
		return "Save failed: " + err.Error()
	}
	return "Saved to " + m.savePath
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateEnded:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		var bottom string
		if m.state == stateEnded {
			bottom = titleStyle.Render("THE JOURNEY PAUSES HERE") + "\n\n" +
				helpStyle.Render("Press Esc to quit.")
		} else {
			bottom = m.renderChoices() + "\n" + m.textInput.View() + "\n\n" +
				helpStyle.Render("Commands: /save, /restart, /quit, or type a choice number.")
		}
		if m.status != "" {
			bottom += "\n" + helpStyle.Render(m.status)
		}

		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+bottom)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderNode() string {
	node := m.view.Node
	heading := node.Title
	if heading == "" {
		heading = node.ID
	}
	header := gameStyle.Bold(true).Render(heading)
	if node.Body == "" {
		return header
	}
	return header + "\n\n" + gameStyle.Width(m.logWidth()).Render(node.Body)
}

func (m model) renderChoices() string {
	if len(m.view.Choices) == 0 {
		return helpStyle.Render("No available choices. The world refuses to respond.")
	}
	var b strings.Builder
	for i, c := range m.view.Choices {
		b.WriteString(choiceStyle.Render(fmt.Sprintf("  %d) %s", i+1, c.Text)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderState() string {
	view := m.view

	location := titleStyle.Render("NODE") + "\n" + view.Node.ID + "\n\n"

	statsTitle := titleStyle.Render("STATS") + "\n"
	stats := ""
	for _, k := range models.StatKeys {
		stats += fmt.Sprintf("%s: %+d\n", k, view.Stats[k])
	}
	stats += "\n"

	flagsTitle := titleStyle.Render("FLAGS") + "\n"
	flags := ""
	if len(view.Flags) == 0 {
		flags = "(none)\n"
	} else {
		names := make([]string, 0, len(view.Flags))
		for k := range view.Flags {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, name := range names {
			flags += "- " + name + "\n"
		}
	}
	flags += "\n"

	journalTitle := titleStyle.Render("JOURNAL") + "\n"
	journal := ""
	if len(view.Journal) == 0 {
		journal = "(empty)"
	} else {
		for i, line := range view.Journal {
			journal += fmt.Sprintf("%02d. %s\n", i+1, line)
		}
	}

	content := location + statsTitle + stats + flagsTitle + flags + journalTitle + journal

	stateWidth := int(float64(m.width) * 0.23) // Leave some room for padding
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m model) renderLog() string {
	return m.gameLog
}

// Run starts the full-screen UI and blocks until the player quits. It
// returns the game as it stood on exit, which differs from game after a
// /restart.
func Run(eng *engine.Engine, game *models.GameState, savePath string) (*models.GameState, error) {
	p := tea.NewProgram(NewModel(eng, game, savePath), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return game, err
	}
	if m, ok := final.(model); ok {
		return m.game, nil
	}
	return game, nil
}
