package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// stepMsg reports one finished item.
type stepMsg struct{ name string }

// finishMsg ends the program with the outcome of the work.
type finishMsg struct{ err error }

// progressModel is a spinner with an item counter.
type progressModel struct {
	spinner  spinner.Model
	label    string
	total    int
	done     int
	last     string
	finished bool
	err      error
}

func newProgressModel(label string, total int) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return progressModel{spinner: s, label: label, total: total}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.done++
		m.last = msg.name
		return m, nil
	case finishMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	line := fmt.Sprintf("%s %s %d/%d", m.spinner.View(), m.label, m.done, m.total)
	if m.last != "" {
		line += " " + MutedStyle.Render(m.last)
	}
	return line + "\n"
}

// RunWithProgress renders a spinner on w while work runs. work calls step
// once per finished item; step is safe for concurrent use. The spinner
// clears itself when work returns.
func RunWithProgress(w io.Writer, label string, total int, work func(step func(name string)) error) error {
	p := tea.NewProgram(newProgressModel(label, total), tea.WithOutput(w), tea.WithInput(nil))
	go func() {
		err := work(func(name string) { p.Send(stepMsg{name: name}) })
		p.Send(finishMsg{err: err})
	}()
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	return final.(progressModel).err
}
