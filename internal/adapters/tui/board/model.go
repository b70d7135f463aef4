package board

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/classwindow"
	"gymdesk/internal/domain/clock"
)

const (
	defaultInterval = time.Second
	minBarWidth     = 10
	maxBarWidth     = 40
)

// LoadFunc evaluates the board at an instant.
type LoadFunc func(ctx context.Context, now time.Time) (projections.ClassBoard, error)

// Options configures a board Model.
type Options struct {
	GymName  string
	Clock    clock.Clock
	Interval time.Duration
	Load     LoadFunc
}

type tickMsg time.Time

type boardMsg struct {
	board  projections.ClassBoard
	err    error
	manual bool
}

// Model renders today's classes and re-evaluates them on every tick.
type Model struct {
	ctx      context.Context
	opts     Options
	keys     KeyMap
	bar      progress.Model
	board    projections.ClassBoard
	loaded   bool
	err      error
	quitting bool
}

// New builds a board Model. A nil Clock reads the system clock.
func New(ctx context.Context, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.GymName == "" {
		opts.GymName = "GymDesk"
	}
	return Model{
		ctx:  ctx,
		opts: opts,
		keys: DefaultKeyMap(),
		bar: progress.New(
			progress.WithSolidFill(string(Green)),
			progress.WithoutPercentage(),
			progress.WithWidth(maxBarWidth/2),
		),
	}
}

// Board returns the most recently loaded board.
func (m Model) Board() projections.ClassBoard {
	return m.board
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) load(manual bool) tea.Cmd {
	ctx, loadFn, now := m.ctx, m.opts.Load, m.opts.Clock.Now()
	return func() tea.Msg {
		b, err := loadFn(ctx, now)
		return boardMsg{board: b, err: err, manual: manual}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.load(false)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(true)
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(minBarWidth, min(maxBarWidth, msg.Width/3))
	case tickMsg:
		return m, m.load(false)
	case boardMsg:
		m.err = msg.err
		if msg.err == nil {
			m.board = msg.board
			m.loaded = true
		}
		if msg.manual {
			return m, nil
		}
		// Ticks are only scheduled from loads so a refresh keypress never doubles the cadence.
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	header := Title.Render(m.opts.GymName)
	if m.loaded {
		header += Muted.Render(fmt.Sprintf("  %s  %s", capitalize(m.board.Day), m.board.At.Format("15:04:05")))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case !m.loaded && m.err == nil:
		b.WriteString(Muted.Render("Loading classes..."))
	case m.loaded && m.board.ClosedFor != "":
		b.WriteString(Hot.Render("Closed today: " + m.board.ClosedFor))
	case m.loaded && len(m.board.Entries) == 0:
		b.WriteString(Muted.Render("No classes today."))
	default:
		rows := make([]string, 0, len(m.board.Entries))
		for _, e := range m.board.Entries {
			rows = append(rows, m.renderEntry(e))
		}
		b.WriteString(Pane.Render(strings.Join(rows, "\n")))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(Alert.Render("error: " + m.err.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(Muted.Render(m.summary() + "  " + helpLine(m.keys)))
	return b.String()
}

func (m Model) renderEntry(e projections.BoardEntry) string {
	style := phaseStyle(e.Phase)
	label := lipgloss.NewStyle().Width(9).Render(phaseLabels[e.Phase])
	span := e.StartTime + "-" + e.EndTime
	name := e.ModuleName
	if e.TrainerName != "" {
		name += Muted.Render(" with " + e.TrainerName)
	}
	if e.Room != "" {
		name += Muted.Render(" @ " + e.Room)
	}
	line := style.Render(label) + " " + span + "  " + name

	switch e.Phase {
	case classwindow.PhaseOngoing:
		if e.ProgressPercent != nil {
			line += "\n          " + m.bar.ViewAs(*e.ProgressPercent/100) + Muted.Render(fmt.Sprintf(" %3.0f%%", *e.ProgressPercent))
		}
	case classwindow.PhaseStartingSoon, classwindow.PhaseUpcoming:
		if e.MinutesToStart != nil {
			line += Muted.Render(" " + startsIn(*e.MinutesToStart))
		}
	}
	return line
}

func (m Model) summary() string {
	c := m.board.Counts
	return fmt.Sprintf("%d live, %d soon, %d upcoming, %d done",
		c[classwindow.PhaseOngoing], c[classwindow.PhaseStartingSoon], c[classwindow.PhaseUpcoming], c[classwindow.PhaseCompleted])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func startsIn(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("in %d min", minutes)
	}
	return fmt.Sprintf("in %dh%02d", minutes/60, minutes%60)
}

func helpLine(k KeyMap) string {
	parts := make([]string, 0, 2)
	for _, b := range []key.Binding{k.Refresh, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// Run shows the board until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run board: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// Snapshot renders b once without starting a program.
func Snapshot(opts Options, b projections.ClassBoard) string {
	m := New(context.Background(), opts)
	m.board = b
	m.loaded = true
	return m.View()
}
