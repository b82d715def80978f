package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pycst/internal/driver"
	"pycst/internal/metrics"
)

type fileState uint8

const (
	stateQueued fileState = iota
	stateParsing
	stateOK
	stateCached
	stateLex
	stateSyntax
	stateIO
	stateCount
)

var stateNames = [stateCount]string{
	stateQueued:  "queued",
	stateParsing: "parsing",
	stateOK:      "ok",
	stateCached:  "cached",
	stateLex:     "lex error",
	stateSyntax:  "syntax error",
	stateIO:      "io error",
}

var stateColors = [stateCount]lipgloss.Color{
	stateQueued:  "8",
	stateParsing: "6",
	stateOK:      "2",
	stateCached:  "2",
	stateLex:     "1",
	stateSyntax:  "1",
	stateIO:      "1",
}

func (s fileState) String() string { return stateNames[s] }

func (s fileState) failed() bool { return s >= stateLex }

// maxRows ограничивает список: показываются только файлы в работе и упавшие.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan driver.FileEvent
	spinner spinner.Model
	bar     progress.Model

	paths  []string
	states []fileState
	counts [stateCount]int
	width  int
	done   bool
}

type eventMsg driver.FileEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// files must be in the order ParseFiles received them; the model quits when
// events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.FileEvent) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(stateColors[stateParsing])

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		paths:   files,
		states:  make([]fileState, len(files)),
	}
	m.counts[stateQueued] = len(files)
	m.resize(80)
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(driver.FileEvent(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) resize(width int) {
	if width <= 0 {
		return
	}
	m.width = width
	m.bar.Width = max(width-4, 10)
}

// next ждёт следующее событие; закрытый канал означает конец проверки.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev driver.FileEvent) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.states) {
		return nil
	}
	next := stateParsing
	if ev.Kind == driver.FileDone {
		next = stateFor(ev)
	}
	m.counts[m.states[ev.Index]]--
	m.counts[next]++
	m.states[ev.Index] = next
	if ev.Kind != driver.FileDone {
		return nil
	}
	return m.bar.SetPercent(float64(m.finished()) / float64(len(m.states)))
}

func (m *progressModel) finished() int {
	return len(m.states) - m.counts[stateQueued] - m.counts[stateParsing]
}

func (m *progressModel) failed() int {
	return m.counts[stateLex] + m.counts[stateSyntax] + m.counts[stateIO]
}

func stateFor(ev driver.FileEvent) fileState {
	switch ev.Result {
	case metrics.ResultOK:
		if ev.Cached {
			return stateCached
		}
		return stateOK
	case metrics.ResultLexError:
		return stateLex
	case metrics.ResultSyntaxError:
		return stateSyntax
	default:
		return stateIO
	}
}

func (m *progressModel) View() string {
	if len(m.states) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s (%d/%d", m.title, m.finished(), len(m.states))
	if n := m.failed(); n > 0 {
		header += fmt.Sprintf(", %d failed", n)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n")

	var tally []string
	for s := stateQueued; s < stateCount; s++ {
		if m.counts[s] > 0 {
			tally = append(tally, paint(s, fmt.Sprintf("%s %d", s, m.counts[s])))
		}
	}
	b.WriteString("  " + strings.Join(tally, "  ") + "\n\n")

	nameWidth := max(m.width-16, 20)
	rows := 0
	for i, s := range m.states {
		if s != stateParsing && !s.failed() {
			continue
		}
		if rows == maxRows {
			b.WriteString("  ...\n")
			break
		}
		fmt.Fprintf(&b, "  %s %s\n", paint(s, fmt.Sprintf("%12s", s)), truncate(m.paths[i], nameWidth))
		rows++
	}

	if m.done {
		b.WriteString("\n" + m.bar.ViewAs(1) + "\n")
	} else {
		b.WriteString("\n" + m.bar.View() + "\n")
	}
	return b.String()
}

func paint(s fileState, text string) string {
	return lipgloss.NewStyle().Foreground(stateColors[s]).Render(text)
}

// truncate сохраняет хвост пути: имя файла важнее каталогов.
func truncate(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	if width <= 3 {
		return runewidth.Truncate(path, width, "")
	}
	runes := []rune(path)
	budget := width - 3
	keep := min(budget, len(runes))
	for runewidth.StringWidth(string(runes[len(runes)-keep:])) > budget {
		keep--
	}
	return "..." + string(runes[len(runes)-keep:])
}
