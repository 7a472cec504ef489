package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/nanomix/internal/mixing"
	"github.com/san-kum/nanomix/internal/sweep"
)

const (
	minLevel = 0.001
	maxLevel = 100
	barWidth = 30
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Explorer is a bubbletea model that recomputes the chain whenever the
// loading level or species order changes.
type Explorer struct {
	base     mixing.BaseFluid
	species  []mixing.Species
	initial  []mixing.Species
	level    float64
	selected int
	result   mixing.StageResult
	err      error
}

func NewExplorer(base mixing.BaseFluid, species []mixing.Species, level float64) Explorer {
	e := Explorer{
		base:    base,
		species: append([]mixing.Species(nil), species...),
		initial: append([]mixing.Species(nil), species...),
		level:   level,
	}
	e.recompute()
	return e
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	}
	if len(e.species) == 0 {
		return e, nil
	}

	switch key.String() {
	case "up", "right", "+":
		e.setLevel(e.level * 1.25)
	case "down", "left", "-":
		e.setLevel(e.level / 1.25)
	case "tab", "j":
		e.selected = (e.selected + 1) % len(e.species)
	case "k":
		e.selected = (e.selected - 1 + len(e.species)) % len(e.species)
	case "[":
		e.move(-1)
	case "]":
		e.move(1)
	case "r":
		e.species = append([]mixing.Species(nil), e.initial...)
		e.selected = 0
		e.recompute()
	}
	return e, nil
}

func (e *Explorer) setLevel(l float64) {
	if l < minLevel {
		l = minLevel
	}
	if l > maxLevel {
		l = maxLevel
	}
	e.level = l
	e.recompute()
}

// move swaps the selected species with its neighbour in direction dir.
func (e *Explorer) move(dir int) {
	j := e.selected + dir
	if j < 0 || j >= len(e.species) {
		return
	}
	sp := append([]mixing.Species(nil), e.species...)
	sp[e.selected], sp[j] = sp[j], sp[e.selected]
	e.species = sp
	e.selected = j
	e.recompute()
}

func (e *Explorer) recompute() {
	e.result, e.err = mixing.ChainLevel(e.level, e.species, e.base.Conductivity, e.base.Density)
}

// Level reports the current loading level.
func (e Explorer) Level() float64 { return e.level }

// Order reports the current species order.
func (e Explorer) Order() []string {
	names := make([]string, len(e.species))
	for i, s := range e.species {
		names[i] = s.Name
	}
	return names
}

// Result returns the chain at the current level.
func (e Explorer) Result() (mixing.StageResult, error) { return e.result, e.err }

func (e Explorer) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("nanofluid explorer: %s base, k = %g W/mK", e.base.Name, e.base.Conductivity)))
	sb.WriteString("\n\n")
	sb.WriteString(MetricLabel.Render("solid volume "))
	sb.WriteString(MetricValue.Render(fmt.Sprintf("%.4g %%", e.level)))
	sb.WriteString("\n\n")

	if e.err != nil {
		sb.WriteString(WarnStyle.Render(e.err.Error()))
		sb.WriteString("\n")
	} else {
		ratios := e.result.Ratios(e.base.Conductivity)
		maxRatio := 1.0
		for _, r := range ratios {
			if r > maxRatio {
				maxRatio = r
			}
		}
		labels := sweep.Labels(e.species, e.base.Name)
		for i, s := range e.species {
			name := labelStyle.Render("+" + s.Name)
			if i == e.selected {
				name = activeStyle.Width(10).Render("> " + s.Name)
			}
			sb.WriteString(fmt.Sprintf("%s %s %s  %s\n",
				name,
				EnhancementBar(ratios[i], maxRatio, barWidth),
				MetricValue.Render(fmt.Sprintf("%.5f", ratios[i])),
				Subtle.Render(labels[i])))
		}
	}

	sb.WriteString(helpStyle.Render("←/→ level  tab/k select  [/] reorder  r reset  q quit"))
	return Panel.Render(sb.String())
}
