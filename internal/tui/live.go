// Package tui shows a running ensemble live in the terminal: progress,
// current target ON%, and the convergence chart updating as runs complete.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/ensemble"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	keyHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
	barFilled   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	barEmptyStr = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("░")
)

type progressMsg struct {
	done      int
	onPercent float64
}

type finishedMsg struct {
	res *ensemble.Result
	err error
}

type model struct {
	target string
	total  int
	done   int
	pct    float64
	series []float64

	finished bool
	err      error
	cancel   context.CancelFunc
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			if m.finished {
				return m, tea.Quit
			}
		case "enter":
			if m.finished {
				return m, tea.Quit
			}
		}
	case progressMsg:
		m.done = msg.done
		m.pct = msg.onPercent
		m.series = append(m.series, msg.onPercent)
	case finishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("boolsim ensemble") + "\n\n")
	b.WriteString(labelStyle.Render("target  ") + valueStyle.Render(m.target) + "\n")
	b.WriteString(labelStyle.Render("runs    ") + fmt.Sprintf("%d/%d  ", m.done, m.total))
	b.WriteString(m.progressBar(30) + "\n")
	b.WriteString(labelStyle.Render("ON%     ") + valueStyle.Render(fmt.Sprintf("%.1f%%", m.pct)) + "\n\n")

	if len(m.series) >= 2 {
		graph := asciigraph.Plot(m.series,
			asciigraph.Height(8),
			asciigraph.Width(60),
		)
		b.WriteString(chartStyle.Render(graph) + "\n")
	}

	if m.finished {
		b.WriteString("\n" + doneStyle.Render("done") + "  " + keyHint.Render("enter/q to exit") + "\n")
	} else {
		b.WriteString("\n" + keyHint.Render("q to cancel (partial ensemble stays valid)") + "\n")
	}
	return b.String()
}

func (m model) progressBar(width int) string {
	if m.total == 0 {
		return ""
	}
	filled := width * m.done / m.total
	return barFilled.Render(strings.Repeat("█", filled)) + strings.Repeat(barEmptyStr, width-filled)
}

// Run executes the ensemble with a live view. Cancelling from the UI stops
// dispatching new runs; the partial result is returned like any other.
func Run(ctx context.Context, net boolnet.Network, p ensemble.Params) (*ensemble.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(model{
		target: p.Target,
		total:  p.Runs,
		cancel: cancel,
	})

	p.Progress = func(done int, onPercent float64) {
		prog.Send(progressMsg{done: done, onPercent: onPercent})
	}

	var res *ensemble.Result
	var runErr error
	go func() {
		res, runErr = ensemble.Run(ctx, net, p)
		prog.Send(finishedMsg{res: res, err: runErr})
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	return res, runErr
}
