package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// gyst theme (CLI + TUI).

const (
	IconFire    = "🔥"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconUndo    = "↩️"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBell    = "🔔"
	IconScroll  = "📜"
	IconTrash   = "🗑️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TaskState renders a task's state for this period.
func TaskState(alive, done bool) string {
	switch {
	case done:
		return Good.Render("done")
	case !alive:
		return Bad.Render("lapsed")
	default:
		return Warn.Render("due")
	}
}

func FrequencyTag(freq string) string {
	switch freq {
	case "daily":
		return Muted.Render("[D]")
	case "weekly":
		return Muted.Render("[W]")
	case "monthly":
		return Muted.Render("[M]")
	default:
		return Muted.Render("[?]")
	}
}

// Streak renders a streak count with a flame once it is running.
func Streak(n int) string {
	if n <= 0 {
		return Muted.Render("0")
	}
	return Gold.Render(fmt.Sprintf("%d %s", n, IconFire))
}

// Delta renders a signed change, e.g. "+10" or "-1".
func Delta(n int) string {
	switch {
	case n > 0:
		return Good.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return Bad.Render(fmt.Sprintf("%d", n))
	default:
		return Muted.Render("±0")
	}
}

func ProgressBar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	width = max(width, 3)
	value = min(max(value, 0), total)
	filled := min(int(float64(value)/float64(total)*float64(width)), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
