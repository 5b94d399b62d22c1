package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/naka-gawa/devdash/internal/chart"
	"github.com/naka-gawa/devdash/internal/usecase"
)

// Loader produces one dashboard snapshot.
type Loader interface {
	Load(ctx context.Context) (*usecase.Snapshot, error)
}

type loadedMsg struct {
	snapshot *usecase.Snapshot
	err      error
}

// Model is the interactive dashboard. It starts loading immediately and
// reloads on "r".
type Model struct {
	ctx     context.Context
	loader  Loader
	spinner spinner.Model
	state   chart.State[*usecase.Snapshot]
}

func NewModel(ctx context.Context, loader Loader) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		loader:  loader,
		spinner: s,
		state:   chart.Loading[*usecase.Snapshot](),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.loader.Load(m.ctx)
		return loadedMsg{snapshot: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.state.Kind() == chart.KindLoading {
				return m, nil
			}
			m.state = chart.Loading[*usecase.Snapshot]()
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}

	case loadedMsg:
		if msg.err != nil {
			m.state = chart.Failed[*usecase.Snapshot](msg.err.Error())
		} else {
			m.state = chart.Ready(msg.snapshot)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Kind() != chart.KindLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	view := RenderDashboard(m.state)
	if m.state.Kind() == chart.KindLoading {
		view = m.spinner.View() + " Loading dashboard...\n\n" + view
	}
	return view + helpStyle.Render("r: reload • q: quit") + "\n"
}

// State exposes the current load state.
func (m Model) State() chart.State[*usecase.Snapshot] { return m.state }
