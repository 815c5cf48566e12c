package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"tasktimer/internal/modules/timer/domain"
	"tasktimer/internal/modules/timer/dto"
	apperrors "tasktimer/internal/platform/errors"
	"tasktimer/internal/ui/components"
	"tasktimer/internal/ui/theme"
)

const (
	refreshInterval = 250 * time.Millisecond
	historyRows     = 8
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	Start(ctx context.Context, name, notes string) (dto.SnapshotOutput, error)
	TogglePause(ctx context.Context) (dto.SnapshotOutput, error)
	Stop(ctx context.Context) (dto.FinishOutput, error)
	Continue(ctx context.Context) (dto.SnapshotOutput, error)
	Next(ctx context.Context) (dto.FinishOutput, error)
	Snapshot(ctx context.Context) dto.SnapshotOutput
	History(ctx context.Context, limit int) ([]dto.TaskOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context) error
	Export(ctx context.Context, format, path string) (dto.ExportOutput, error)
}

// ─── async messages ──────────────────────────────────────────────────────────

type refreshMsg time.Time

type snapshotMsg struct {
	snap dto.SnapshotOutput
	err  error
}

type finishedMsg struct {
	out dto.FinishOutput
	err error
}

type historyMsg struct {
	tasks []dto.TaskOutput
	err   error
}

type statusMsg struct {
	text string
	err  error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Start    key.Binding
	Field    key.Binding
	Pause    key.Binding
	Stop     key.Binding
	Continue key.Binding
	Next     key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Field:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "name/notes")),
		Pause:    key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause/resume")),
		Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Continue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next task")),
		Palette:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// forPhase enables only the bindings that are valid in phase.
func (k keyMap) forPhase(phase string) keyMap {
	idle := phase == string(domain.PhaseIdle)
	active := phase == string(domain.PhaseRunning) || phase == string(domain.PhasePaused)
	done := phase == string(domain.PhaseCompleted)
	k.Start.SetEnabled(idle)
	k.Field.SetEnabled(idle)
	k.Pause.SetEnabled(active)
	k.Stop.SetEnabled(active)
	k.Continue.SetEnabled(done)
	k.Next.SetEnabled(done)
	// q and ? would be typed into the form while idle.
	k.Help.SetEnabled(!idle)
	if idle {
		k.Quit.SetKeys("ctrl+c")
		k.Quit.SetHelp("ctrl+c", "quit")
	} else {
		k.Quit.SetKeys("ctrl+c", "q")
		k.Quit.SetHelp("q", "quit")
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Field, k.Pause, k.Stop, k.Continue, k.Next, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Field},
		{k.Pause, k.Stop, k.Continue, k.Next},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Timer state lives behind timerPort; the
// model only mirrors the latest snapshot for rendering.
type Model struct {
	timer  timerPort
	locale domain.Locale
	text   messages
	now    func() time.Time

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	form     components.TaskForm
	bar      progress.Model

	snap    dto.SnapshotOutput
	history []dto.TaskOutput
	status  string
	warn    bool
	width   int
	height  int
}

func NewModel(timer timerPort, locale domain.Locale) Model {
	text := messagesFor(locale)
	snap := timer.Snapshot(context.Background())
	form := components.NewTaskForm(text.namePlaceholder, text.notesPlaceholder)
	if snap.Phase == string(domain.PhaseIdle) {
		form.Focus()
	}
	return Model{
		timer:   timer,
		locale:  locale,
		text:    text,
		now:     time.Now,
		keys:    defaultKeys().forPhase(snap.Phase),
		help:    help.New(),
		palette: components.NewPalette(),
		form:    form,
		bar:     progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage()),
		snap:    snap,
		status:  text.ready,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistoryCmd(), refreshCmd(), textinput.Blink)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(refreshMsg); ok {
		m.applySnapshot(m.timer.Snapshot(context.Background()))
		return m, refreshCmd()
	}
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 80))
		m.form.SetWidth(m.leftWidth() - 8)
		m.bar.Width = max(m.leftWidth()-8, 10)
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.applySnapshot(msg.snap)
		if msg.snap.Phase == string(domain.PhaseRunning) {
			m.setStatus(fmt.Sprintf(m.text.running, msg.snap.Task.Name, msg.snap.EndLabel))
		}
		return m, nil

	case finishedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else if msg.out.Saved {
			m.setStatus(fmt.Sprintf(m.text.saved, msg.out.Task.Name, domain.FormatDuration(msg.out.Task.TotalTime, m.locale)))
		} else {
			m.setStatus(m.text.discarded)
		}
		m.applySnapshot(m.timer.Snapshot(context.Background()))
		m.form.Reset()
		focus := m.form.Focus()
		return m, tea.Batch(focus, m.loadHistoryCmd())

	case historyMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.history = msg.tasks
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.text)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus(m.text.ready)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.form.Focused() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quitCmd()
	case key.Matches(msg, m.keys.Palette):
		cmd := m.palette.Open()
		return m, cmd
	case key.Matches(msg, m.keys.Start):
		name, notes := m.form.Values()
		if strings.TrimSpace(name) == "" {
			m.setWarning(m.text.emptyName)
			return m, nil
		}
		return m, m.actionCmd(func(ctx context.Context) (dto.SnapshotOutput, error) {
			return m.timer.Start(ctx, name, notes)
		})
	case key.Matches(msg, m.keys.Field):
		cmd := m.form.NextField()
		return m, cmd
	case key.Matches(msg, m.keys.Pause):
		return m, m.actionCmd(m.timer.TogglePause)
	case key.Matches(msg, m.keys.Stop):
		return m, m.finishCmd(m.timer.Stop)
	case key.Matches(msg, m.keys.Continue):
		return m, m.actionCmd(m.timer.Continue)
	case key.Matches(msg, m.keys.Next):
		return m, m.finishCmd(m.timer.Next)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	}
	if m.form.Focused() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshot mirrors snap and reports a countdown that reached zero since
// the previous refresh.
func (m *Model) applySnapshot(snap dto.SnapshotOutput) {
	prev := m.snap.Phase
	m.snap = snap
	m.keys = m.keys.forPhase(snap.Phase)
	if snap.Phase == string(domain.PhaseCompleted) && prev != snap.Phase {
		title, body := domain.CompletionNotice(snap.Task.Name, m.locale)
		m.setStatus(title + " " + body)
	}
	if snap.Phase != string(domain.PhaseIdle) {
		m.form.Blur()
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.warn = false
}

func (m *Model) setWarning(text string) {
	m.status = text
	m.warn = true
}

func (m *Model) setError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyTaskName):
		m.setWarning(m.text.emptyName)
	default:
		m.setWarning(err.Error())
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(status), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderTimerPane(), m.renderHistoryPane())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.help.ShortHelpView(m.keys.ShortHelp()), status)
}

func (m Model) leftWidth() int {
	if m.width <= 0 {
		return 48
	}
	return max(m.width*3/5, 30)
}

func (m Model) renderHeader() string {
	bar := theme.Title.Render("tasktimer") + "  " + theme.Muted.Render(m.text.subtitle)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderTimerPane() string {
	var sb strings.Builder
	phase := m.snap.Phase
	if phase == string(domain.PhaseIdle) {
		sb.WriteString(theme.Title.Render(m.text.newTask) + "\n\n")
		sb.WriteString(m.form.View(m.text.nameLabel, m.text.notesLabel) + "\n\n")
		sb.WriteString(theme.Counter.Render(m.snap.Remaining))
		return theme.PaneActive.Width(m.leftWidth()).Render(sb.String())
	}

	sb.WriteString(theme.Title.Render(m.snap.Task.Name) + "  " + theme.PhaseStyle(phase).Render("● "+m.text.phase(phase)) + "\n")
	if m.snap.Task.Notes != "" {
		sb.WriteString(theme.Muted.Render(m.snap.Task.Notes) + "\n")
	}
	sb.WriteString("\n" + theme.PhaseStyle(phase).Render(theme.Counter.Render(m.snap.Remaining)) + "\n\n")
	elapsed := float64(domain.SessionSeconds-m.snap.TimeLeft) / float64(domain.SessionSeconds)
	sb.WriteString(m.bar.ViewAs(elapsed) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s %s – %s", m.text.window, m.snap.StartLabel, m.snap.EndLabel)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf(m.text.sessions, len(m.snap.Task.Sessions), m.snap.Task.CompletedSessions,
		domain.FormatDuration(m.snap.Task.TotalTime, m.locale))))
	return theme.PaneActive.Width(m.leftWidth()).Render(sb.String())
}

func (m Model) renderHistoryPane() string {
	width := max(m.width-m.leftWidth()-4, 24)
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.text.history) + "\n\n")
	if len(m.history) == 0 {
		sb.WriteString(theme.Muted.Render(m.text.noHistory))
	}
	for i, task := range m.history {
		if i == historyRows {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("… +%d", len(m.history)-historyRows)))
			break
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", task.Name, theme.Hot.Render(domain.FormatDuration(task.TotalTime, m.locale))))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %s · %d/%d · %s", domain.FormatDate(task.StartTime, m.locale),
			task.CompletedSessions, len(task.Sessions), humanize.RelTime(task.EndTime, m.now(), "ago", "from now"))) + "\n")
	}
	return theme.Pane.Width(width).Render(sb.String())
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.warn {
		left = theme.Warn.Render(left)
	}
	right := theme.Muted.Render(m.text.phase(m.snap.Phase))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "history":
		limit := 0
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 0 {
				m.setWarning("usage: history [limit]")
				return m, nil
			}
			limit = n
		}
		return m, m.historyCmd(limit)
	case "stats":
		return m, m.statsCmd()
	case "reindex":
		return m, m.reindexCmd()
	case "export":
		if len(parts) < 3 {
			m.setWarning("usage: export <json|yaml|markdown> <path>")
			return m, nil
		}
		return m, m.exportCmd(parts[1], strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1])))
	default:
		m.setWarning("unknown command: " + parts[0])
		return m, nil
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) actionCmd(action func(context.Context) (dto.SnapshotOutput, error)) tea.Cmd {
	return func() tea.Msg {
		snap, err := action(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) finishCmd(action func(context.Context) (dto.FinishOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := action(context.Background())
		return finishedMsg{out: out, err: err}
	}
}

// quitCmd settles the active task before quitting: a completed task moves on
// with Next, a running or paused one is stopped so its elapsed time is kept.
func (m Model) quitCmd() tea.Cmd {
	timer := m.timer
	return func() tea.Msg {
		ctx := context.Background()
		switch timer.Snapshot(ctx).Phase {
		case string(domain.PhaseCompleted):
			_, _ = timer.Next(ctx)
		case string(domain.PhaseRunning), string(domain.PhasePaused):
			_, _ = timer.Stop(ctx)
		}
		return tea.Quit()
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return m.historyCmd(0)
}

func (m Model) historyCmd(limit int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.timer.History(context.Background(), limit)
		return historyMsg{tasks: tasks, err: err}
	}
}

func (m Model) statsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.timer.Stats(context.Background())
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: fmt.Sprintf(m.text.stats, stats.Tasks, stats.CompletedSessions, stats.Sessions, stats.Total, stats.Today)}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.timer.Reindex(context.Background()); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "history index rebuilt"}
	}
}

func (m Model) exportCmd(format, path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Export(context.Background(), format, path)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: fmt.Sprintf("exported %d tasks as %s (%d files)", out.Tasks, out.Format, len(out.Files))}
	}
}
