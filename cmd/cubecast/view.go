package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubecast/internal/config"
	"github.com/vovakirdan/cubecast/internal/core"
	"github.com/vovakirdan/cubecast/internal/storage"
)

var (
	flagViewZ      int
	flagViewWidth  int
	flagViewHeight int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Live terminal preview of one canvas slice",
	Long: `Show a flat x/y slice of the canvas at a fixed z, refreshed from the
archive every couple of seconds. A read-only observer: it never touches the
running bot, it just re-reads the database.

Keys:
  [ / ]   - Previous / next z slice
  q       - Quit`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagViewZ, "z", 0, "Initial z slice")
	viewCmd.Flags().IntVar(&flagViewWidth, "width", 64, "Slice window width in cubes")
	viewCmd.Flags().IntVar(&flagViewHeight, "height", 32, "Slice window height in cubes")
}

func runView(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	m := viewModel{
		store:  store,
		bound:  cfg.Canvas.CubeSize,
		z:      flagViewZ,
		width:  flagViewWidth,
		height: flagViewHeight,
		canvas: core.NewCanvas(cfg.Canvas.CubeSize),
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// refreshMsg asks the model to re-read the archive.
type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

var (
	viewTitleStyle = lipgloss.NewStyle().Bold(true)
	viewEmptyStyle = lipgloss.NewStyle().Faint(true)
	viewHelpStyle  = lipgloss.NewStyle().Faint(true)
)

type viewModel struct {
	store  *storage.Store
	bound  int
	z      int
	width  int
	height int

	canvas *core.Canvas
	total  int
	err    error
}

func (m viewModel) Init() tea.Cmd {
	return tea.Batch(m.reload, refreshCmd())
}

// reload re-reads the whole archive into a fresh canvas. The archive is the
// source of truth, so this sees exactly what the bot would restore.
func (m viewModel) reload() tea.Msg {
	events, err := m.store.ListAll()
	if err != nil {
		return errMsg{err}
	}
	canvas := core.NewCanvas(m.bound)
	canvas.LoadAll(events)
	return canvasMsg{canvas: canvas, total: len(events)}
}

type canvasMsg struct {
	canvas *core.Canvas
	total  int
}

type errMsg struct{ err error }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "]":
			if m.z < m.bound-1 {
				m.z++
			}
		case "[":
			if m.z > 0 {
				m.z--
			}
		}
	case refreshMsg:
		return m, tea.Batch(m.reload, refreshCmd())
	case canvasMsg:
		m.canvas = msg.canvas
		m.total = msg.total
		m.err = nil
	case errMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(viewTitleStyle.Render(
		fmt.Sprintf("cubecast - slice z=%d/%d - %d cubes placed, %d placements archived",
			m.z, m.bound-1, m.canvas.Len(), m.total)))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("archive error: %v\n", m.err))
	}
	b.WriteString("\n")

	for y := 0; y < m.height && y < m.bound; y++ {
		for x := 0; x < m.width && x < m.bound; x++ {
			rgb, ok := m.canvas.Get(core.Coord{X: x, Y: y, Z: m.z})
			if !ok {
				b.WriteString(viewEmptyStyle.Render("··"))
				continue
			}
			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B))
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render("██"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("[ / ] slice - q quit"))
	return b.String()
}
