// Package tui is a terminal front end for a single two player clock
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/pkg/clock"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

// lowTimeMs is where a clock is drawn as running low
const lowTimeMs = 10_000

type frameMsg time.Time

// Model drives a clock controller from the bubbletea frame loop.
type Model struct {
	Title string

	ctrl   *clock.Controller
	sched  *clock.HostScheduler
	frame  time.Duration
	paused bool // Stopped by the user, as opposed to never started
}

// NewModel creates a model for control. A nil source uses the system clock.
func NewModel(title string, control timecontrol.TimeControl, source clock.Source, logger *zap.Logger) Model {
	if source == nil {
		source = clock.RealSource{}
	}
	sched := &clock.HostScheduler{}

	return Model{
		Title: title,
		ctrl: clock.NewController(control,
			clock.WithSource(source),
			clock.WithScheduler(sched),
			clock.WithLogger(logger),
		),
		sched: sched,
		frame: clock.DefaultFrameInterval,
	}
}

// Controller exposes the underlying clock.
func (m Model) Controller() *clock.Controller {
	return m.ctrl
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.sched.Tick()
		return m, m.nextFrame()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Pause()
			return m, tea.Quit

		case " ", "space", "enter":
			if m.ctrl.IsRunning() {
				m.ctrl.SwitchPlayer()
			} else if !m.paused {
				m.ctrl.Start()
			}

		case "p":
			if m.ctrl.IsRunning() {
				m.ctrl.Pause()
				m.paused = true
			} else if m.paused {
				m.ctrl.Start()
				m.paused = false
			}

		case "r":
			m.ctrl.Reset()
			m.paused = false
		}
	}

	return m, nil
}

func (m Model) View() string {
	state := m.ctrl.State()

	cards := make([]string, 0, 2)
	for _, p := range []timecontrol.Player{timecontrol.PlayerOne, timecontrol.PlayerTwo} {
		cards = append(cards, m.card(state, p))
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	switch {
	case state.GameOver:
		b.WriteString("\n")
		b.WriteString(StyleBanner.Render(fmt.Sprintf("%s ran out of time", title(state.Loser))))
	case m.paused:
		b.WriteString("\n")
		b.WriteString(StyleBanner.Render("Paused"))
	}

	b.WriteString("\n")
	b.WriteString(StyleHelp.Render(m.help(state)))

	return StyleApp.Render(b.String())
}

func (m Model) card(state clock.State, p timecontrol.Player) string {
	t := state.Times[p]

	timeStyle := StyleTime
	switch {
	case t.IsGaining:
		timeStyle = StyleGain
	case t.RemainingMs <= lowTimeMs:
		timeStyle = StyleLow
	}

	clockText := clock.FormatClockTime(t.RemainingMs)
	if t.IsGaining {
		clockText += " +"
	}

	lines := []string{
		StylePlayer.Render(title(p)),
		timeStyle.Render(clockText),
		StylePlayer.Render(fmt.Sprintf("moves: %d", state.MoveCount[p])),
	}
	if status := state.Status[p]; status != "" {
		lines = append(lines, StyleStatus.Render(status))
	}

	style := StyleCard
	switch {
	case state.GameOver && state.Loser == p:
		style = StyleFlaggedCard
	case state.Running && state.ActivePlayer == p:
		style = StyleActiveCard
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) help(state clock.State) string {
	switch {
	case state.GameOver:
		return "r reset • q quit"
	case state.Running:
		return "space switch • p pause • r reset • q quit"
	case m.paused:
		return "p resume • r reset • q quit"
	default:
		return "space start • r reset • q quit"
	}
}

func title(p timecontrol.Player) string {
	return strings.ToUpper(p.String()[:1]) + p.String()[1:]
}
