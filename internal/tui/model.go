// Package tui is a terminal front end driving the same controller as the
// web server.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
	"github.com/jaminalder/codex-binoxxo/internal/storage"
)

type styles struct {
	title  lipgloss.Style
	given  lipgloss.Style
	guess  lipgloss.Style
	error  lipgloss.Style
	cursor lipgloss.Style
	status lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	help   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		given:  lipgloss.NewStyle().Bold(true),
		guess:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		error:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
		cursor: lipgloss.NewStyle().Reverse(true),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		good:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		bad:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		help:   lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model. The game state lives behind a pointer, so
// copies of Model share it.
type Model struct {
	ctx      context.Context
	engine   game.Engine
	reducer  *game.Reducer
	state    *game.State
	settings *storage.Settings
	log      zerolog.Logger
	col, row int
	styles   styles
}

// New restores the stored settings and generates the first puzzle.
func New(ctx context.Context, engine game.Engine, resources *i18n.ResourceManager, settings *storage.Settings, log zerolog.Logger) Model {
	return Model{
		ctx:      ctx,
		engine:   engine,
		reducer:  game.NewReducer(engine, log),
		state:    game.NewState(engine, settings.Load(ctx), resources),
		settings: settings,
		log:      log,
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := m.state.Board.Size()
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		m.row = max(m.row-1, 0)
	case "down":
		m.row = min(m.row+1, n-1)
	case "left":
		m.col = max(m.col-1, 0)
	case "right":
		m.col = min(m.col+1, n-1)
	case " ", "enter":
		m.dispatch(game.Toggle{Col: m.col, Row: m.row})
	case "1", "2", "3":
		d := domain.Difficulties()[key.String()[0]-'1']
		m.dispatch(game.NewGame{Difficulty: d})
	case "c":
		m.dispatch(game.Clear{})
	case "t":
		m.dispatch(game.ToggleLanguage{})
	case "h":
		m.dispatch(game.ToggleHelper{})
	}
	return m, nil
}

func (m *Model) dispatch(in game.Intent) {
	m.settings.Apply(m.ctx, m.reducer.Update(m.state, in))
	// a new game may have shrunk the board under the cursor
	n := m.state.Board.Size()
	m.col, m.row = min(m.col, n-1), min(m.row, n-1)
}

func (m Model) tr(key string, args map[string]any) string {
	b := m.state.Bundle()
	s, err := b.Translate(key, args)
	if err != nil {
		m.log.Warn().Err(err).Str("locale", b.Locale()).Str("key", key).Msg("translation failed")
		return key
	}
	return s
}

func (m Model) View() string {
	snap := m.state.Snapshot(m.engine)
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(m.tr("title", nil)))
	sb.WriteString("\n\n")

	for _, row := range snap.Rows {
		for _, c := range row {
			sym := c.Field.String()
			if sym == "" {
				sym = "·"
			}
			cell := " " + sym + " "
			switch {
			case c.Error:
				cell = m.styles.error.Render(cell)
			case c.Editable:
				cell = m.styles.guess.Render(cell)
			default:
				cell = m.styles.given.Render(cell)
			}
			if c.Col == m.col && c.Row == m.row {
				cell = m.styles.cursor.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	status := []string{
		m.tr("difficulty-display", map[string]any{"difficulty": m.tr("difficulty-"+snap.Difficulty.String(), nil)}),
		m.tr("language-display", map[string]any{"language": m.tr("language-"+snap.Language.String(), nil)}),
		m.tr("helper-"+snap.Helper.String(), nil),
	}
	sb.WriteString(m.styles.status.Render(strings.Join(status, " | ")))
	sb.WriteString("\n")

	switch {
	case snap.Solved:
		sb.WriteString(m.styles.good.Render(m.tr("success", nil)))
		sb.WriteString("\n")
	case snap.Full:
		sb.WriteString(m.styles.bad.Render(m.tr("failure", nil)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.help.Render(m.tr("keys", nil)))
	sb.WriteString("\n")
	return sb.String()
}

// Run starts the terminal UI and blocks until the player quits or ctx ends.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
