package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tanfmt/internal/driver"
)

// maxRows caps the file list; the rest is summarized in one line.
const maxRows = 12

type rowState uint8

const (
	stateQueued rowState = iota
	stateReading
	stateParsing
	stateFormatting
	stateWriting
	stateOK
	stateFormatted
	stateFailed
)

// rowInfo: подпись, цвет (ANSI 0-15) и вклад в общий прогресс.
var rowInfo = [...]struct {
	label  string
	color  string
	weight float64
}{
	stateQueued:     {"queued", "8", 0},
	stateReading:    {"reading", "6", 0.1},
	stateParsing:    {"parsing", "6", 0.3},
	stateFormatting: {"formatting", "6", 0.6},
	stateWriting:    {"writing", "6", 0.9},
	stateOK:         {"ok", "2", 1},
	stateFormatted:  {"formatted", "2", 1},
	stateFailed:     {"error", "1", 1},
}

func (s rowState) String() string { return rowInfo[s].label }

func (s rowState) final() bool { return s >= stateOK }

var workingStates = map[driver.Stage]rowState{
	driver.StageRead:   stateReading,
	driver.StageParse:  stateParsing,
	driver.StageFormat: stateFormatting,
	driver.StageWrite:  stateWriting,
}

// stateOf maps a driver event onto a row; ok is false for events the view
// ignores.
func stateOf(ev driver.Event) (rowState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusWorking:
		s, ok := workingStates[ev.Stage]
		return s, ok
	case driver.StatusDone:
		return stateOK, true
	case driver.StatusChanged:
		return stateFormatted, true
	case driver.StatusError:
		return stateFailed, true
	}
	return stateQueued, false
}

type fileRow struct {
	path    string
	state   rowState
	elapsed time.Duration
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool

	finished, changed, failed int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders formatting progress
// for files, fed from events until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one driver event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	state, ok := stateOf(ev)
	if !ok || row.state.final() {
		return nil
	}
	row.state = state
	if state.final() {
		row.elapsed = ev.Elapsed
		m.finished++
		switch state {
		case stateFormatted:
			m.changed++
		case stateFailed:
			m.failed++
		}
	}

	var sum float64
	for _, r := range m.rows {
		sum += rowInfo[r.state].weight
	}
	return m.bar.SetPercent(sum / float64(len(m.rows)))
}

// visible: файлы без изменений после завершения скрыты, чтобы список не рос.
func (m *progressModel) visible() []fileRow {
	out := make([]fileRow, 0, min(len(m.rows), maxRows))
	for _, r := range m.rows {
		if r.state != stateOK {
			out = append(out, r)
		}
	}
	return out
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.rows))
	if m.done {
		header = fmt.Sprintf("done: %s (%d changed, %d failed)", header, m.changed, m.failed)
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const labelWidth = 10
	nameWidth := max(m.width-labelWidth-14, 20)
	rows := m.visible()
	for _, r := range rows[:min(len(rows), maxRows)] {
		info := rowInfo[r.state]
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(info.color)).Render(fmt.Sprintf("%*s", labelWidth, info.label))
		fmt.Fprintf(&b, "  %s %s", label, truncate(r.path, nameWidth))
		if r.state.final() && r.elapsed > 0 {
			fmt.Fprintf(&b, " (%s)", r.elapsed.Round(time.Millisecond))
		}
		b.WriteByte('\n')
	}
	if hidden := len(rows) - maxRows; hidden > 0 {
		fmt.Fprintf(&b, "  … %d more\n", hidden)
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
