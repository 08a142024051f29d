package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gyst/internal/engine"
	"gyst/internal/storage"
	"gyst/internal/ui"
)

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	user string

	width  int
	height int

	stats  *storage.UserStats
	tasks  []engine.TaskView
	badges []engine.Badge

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	stats  *storage.UserStats
	tasks  []engine.TaskView
	badges []engine.Badge
	err    error
}

type toggledMsg struct {
	name string
	res  *engine.ToggleResult
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service, user string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		user:    user,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.RefreshStats(m.ctx, m.user)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListTasks(m.ctx, m.user)
		if err != nil {
			return loadedMsg{err: err}
		}
		badges, err := m.svc.Badges(m.ctx, m.user)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stats: st, tasks: tasks, badges: badges}
	}
}

func (m boardModel) toggleCmd(t engine.TaskView) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleComplete(m.ctx, m.user, t.ID)
		return toggledMsg{name: t.Name, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.stats = msg.stats
		m.tasks = msg.tasks
		m.badges = msg.badges
		m.selected = min(m.selected, max(len(m.tasks)-1, 0))
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		verb := "Completed"
		if msg.res.Action == engine.ActionUncompleted {
			verb = "Undid"
		}
		m.lastLog = fmt.Sprintf("%s %s: %+d XP, streak %d (%+d)", verb, msg.name, msg.res.XPDelta, msg.res.Stats.Streak, msg.res.StreakDelta)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ", "c":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %s…", t.Name)
			return m, m.toggleCmd(t)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	leftW := 26
	if m.width > 0 {
		leftW = max(min(leftW, m.width/2), 18)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.stats == nil {
		return "gyst — loading…"
	}
	p := engine.ProgressForXP(m.stats.XP)
	return fmt.Sprintf("gyst | %s | Level %d | XP %d %s | Streak %d",
		m.user, p.Level, m.stats.XP, ui.ProgressBar(p.Current, p.Needed, 30), m.stats.Streak)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Badges"}
	earned := 0
	for _, b := range m.badges {
		if b.Earned {
			earned++
			lines = append(lines, "- "+b.Icon+" "+b.Name)
		}
	}
	if earned == 0 {
		lines = append(lines, "(none yet)")
	}
	lines = append(lines,
		"",
		"Keys",
		"- ↑/↓ or j/k: move",
		"- space/enter: toggle",
		"- r: refresh",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Tasks"}
	if len(m.tasks) == 0 {
		out = append(out, "(no tasks, add one with `gyst add`)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ]"
		if t.CompletedPeriod {
			check = "[x]"
		}
		state := "due"
		switch {
		case t.CompletedPeriod:
			state = "done"
		case !t.Alive:
			state = "lapsed"
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s, streak %d, %s)", cursor, check, t.Name, t.Frequency, t.CurrentStreak, state))
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
